package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"

	"ai-trade-pro/internal/domain"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AnalysisLogRepository persists the analysis journal: one row per completed
// chart analysis, keyed by the requesting user.
type AnalysisLogRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAnalysisLogRepository(pool PgxPool, tracer trace.Tracer) *AnalysisLogRepository {
	return &AnalysisLogRepository{pool: pool, tracer: tracer}
}

func (r *AnalysisLogRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "analysis-log-repo.run-migrations")
	defer span.End()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS analysis_logs (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			pair_name TEXT NOT NULL DEFAULT '',
			signal TEXT NOT NULL DEFAULT '',
			analysis_result TEXT NOT NULL,
			model_used TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_logs_user_created
			ON analysis_logs (user_id, created_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *AnalysisLogRepository) InsertLog(ctx context.Context, entry domain.AnalysisLogEntry) (domain.AnalysisLogEntry, error) {
	_, span := r.tracer.Start(ctx, "analysis-log-repo.insert-log")
	defer span.End()

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	out := entry
	err := r.pool.QueryRow(ctx, `
INSERT INTO analysis_logs (user_id, pair_name, signal, analysis_result, model_used, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`,
		entry.UserID,
		entry.PairName,
		entry.Signal,
		entry.AnalysisResult,
		entry.ModelUsed,
		createdAt.UTC(),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return domain.AnalysisLogEntry{}, err
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return out, nil
}

func (r *AnalysisLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error) {
	_, span := r.tracer.Start(ctx, "analysis-log-repo.list-by-user")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, pair_name, signal, analysis_result, model_used, created_at
FROM analysis_logs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.AnalysisLogEntry, 0, limit)
	for rows.Next() {
		var e domain.AnalysisLogEntry
		var ts time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.PairName, &e.Signal, &e.AnalysisResult, &e.ModelUsed, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = ts.UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *AnalysisLogRepository) Stats(ctx context.Context) (domain.JournalStats, error) {
	_, span := r.tracer.Start(ctx, "analysis-log-repo.stats")
	defer span.End()

	var stats domain.JournalStats
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*),
       COUNT(DISTINCT user_id),
       COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())),
       COUNT(*) FILTER (WHERE UPPER(signal) LIKE '%BUY%'),
       COUNT(*) FILTER (WHERE UPPER(signal) NOT LIKE '%BUY%' AND UPPER(signal) LIKE '%SELL%')
FROM analysis_logs`).Scan(
		&stats.TotalAnalyses,
		&stats.UniqueUsers,
		&stats.AnalysesToday,
		&stats.BuySignals,
		&stats.SellSignals,
	)
	if err != nil {
		return domain.JournalStats{}, err
	}
	stats.OtherSignals = stats.TotalAnalyses - stats.BuySignals - stats.SellSignals
	return stats, nil
}
