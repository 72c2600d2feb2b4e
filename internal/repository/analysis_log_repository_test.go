package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"

	"ai-trade-pro/internal/domain"
)

func TestAnalysisLogRunMigrationsExecutesSchema(t *testing.T) {
	pool := &logStubPool{}
	repo := NewAnalysisLogRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	if err := repo.RunMigrations(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execSQL) != 2 {
		t.Fatalf("expected table + index statements, got %d", len(pool.execSQL))
	}
	if !strings.Contains(pool.execSQL[0], "analysis_logs") {
		t.Fatalf("unexpected schema statement: %s", pool.execSQL[0])
	}
}

func TestAnalysisLogInsertReturnsID(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	pool := &logStubPool{queryRowData: []any{int64(7), now}}
	repo := NewAnalysisLogRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	out, err := repo.InsertLog(context.Background(), domain.AnalysisLogEntry{
		UserID:         "u-1",
		PairName:       "XAUUSD",
		Signal:         "BUY",
		AnalysisResult: "**SIGNAL**: BUY",
		ModelUsed:      "google/gemini-2.0-flash-exp:free",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 7 {
		t.Fatalf("expected id 7, got %d", out.ID)
	}
	if !out.CreatedAt.Equal(now) {
		t.Fatalf("expected returned timestamp, got %v", out.CreatedAt)
	}
	if len(pool.queryRowArgs) != 6 {
		t.Fatalf("expected 6 insert args, got %d", len(pool.queryRowArgs))
	}
	if pool.queryRowArgs[0] != "u-1" || pool.queryRowArgs[1] != "XAUUSD" {
		t.Fatalf("unexpected args: %v", pool.queryRowArgs)
	}
}

func TestAnalysisLogListByUser(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	pool := &logStubPool{rowsData: [][]any{
		{int64(2), "u-1", "EURUSD", "SELL", "**SIGNAL**: SELL", "openai/gpt-4o", now},
		{int64(1), "u-1", "XAUUSD", "BUY", "**SIGNAL**: BUY", "openai/gpt-4o", now.Add(-time.Hour)},
	}}
	repo := NewAnalysisLogRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	entries, err := repo.ListByUser(context.Background(), "u-1", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 2 || entries[0].PairName != "EURUSD" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestAnalysisLogListClampsLimit(t *testing.T) {
	pool := &logStubPool{}
	repo := NewAnalysisLogRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	if _, err := repo.ListByUser(context.Background(), "u-1", -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.queryArgs[1] != 20 {
		t.Fatalf("expected default limit 20, got %v", pool.queryArgs[1])
	}

	if _, err := repo.ListByUser(context.Background(), "u-1", 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.queryArgs[1] != 100 {
		t.Fatalf("expected ceiling 100, got %v", pool.queryArgs[1])
	}
}

func TestAnalysisLogStats(t *testing.T) {
	pool := &logStubPool{queryRowData: []any{int64(10), int64(3), int64(4), int64(6), int64(2)}}
	repo := NewAnalysisLogRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalAnalyses != 10 || stats.UniqueUsers != 3 || stats.AnalysesToday != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.BuySignals != 6 || stats.SellSignals != 2 || stats.OtherSignals != 2 {
		t.Fatalf("unexpected signal split: %+v", stats)
	}
}

type logStubPool struct {
	execSQL      []string
	queryArgs    []any
	queryRowArgs []any
	queryRowData []any
	rowsData     [][]any
}

func (s *logStubPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execSQL = append(s.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (s *logStubPool) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return &logStubBatchResults{}
}

func (s *logStubPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.queryArgs = args
	dataCopy := make([][]any, len(s.rowsData))
	for i := range s.rowsData {
		row := make([]any, len(s.rowsData[i]))
		copy(row, s.rowsData[i])
		dataCopy[i] = row
	}
	return &logStubRows{data: dataCopy}, nil
}

func (s *logStubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.queryRowArgs = args
	return &logStubRow{data: s.queryRowData}
}

type logStubBatchResults struct{}

func (logStubBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (logStubBatchResults) Query() (pgx.Rows, error)         { return &logStubRows{}, nil }
func (logStubBatchResults) QueryRow() pgx.Row                { return &logStubRow{} }
func (logStubBatchResults) Close() error                     { return nil }

type logStubRows struct {
	data [][]any
	idx  int
}

func (r *logStubRows) Close()                                       {}
func (r *logStubRows) Err() error                                   { return nil }
func (r *logStubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *logStubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *logStubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *logStubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return fmt.Errorf("invalid scan index")
	}
	return scanInto(r.data[r.idx-1], dest)
}

func (r *logStubRows) Values() ([]any, error) { return nil, nil }
func (r *logStubRows) RawValues() [][]byte    { return nil }
func (r *logStubRows) Conn() *pgx.Conn        { return nil }

type logStubRow struct {
	data []any
}

func (r *logStubRow) Scan(dest ...any) error {
	if r.data == nil {
		return nil
	}
	return scanInto(r.data, dest)
}

func scanInto(row []any, dest []any) error {
	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			*ptr = row[i].(string)
		case *int64:
			*ptr = row[i].(int64)
		case *time.Time:
			*ptr = row[i].(time.Time)
		default:
			return fmt.Errorf("unsupported dest type %T", d)
		}
	}
	return nil
}
