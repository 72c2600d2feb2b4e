package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"ai-trade-pro/internal/domain"
)

type stubNewsReader struct {
	gotTopic   string
	gotSources []string
	text       string
}

func (s *stubNewsReader) FetchNews(_ context.Context, topic string, sources []string) string {
	s.gotTopic = topic
	s.gotSources = append([]string(nil), sources...)
	return s.text
}

type stubJournalReader struct {
	entries   []domain.AnalysisLogEntry
	gotUserID string
	gotLimit  int
}

func (s *stubJournalReader) ListByUser(_ context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error) {
	s.gotUserID = userID
	s.gotLimit = limit
	return append([]domain.AnalysisLogEntry(nil), s.entries...), nil
}

func testServer() (*sdkmcp.Server, *stubNewsReader, *stubJournalReader) {
	news := &stubNewsReader{text: "- [investing.com] Gold rallies: safe haven flows"}
	journal := &stubJournalReader{
		entries: []domain.AnalysisLogEntry{{
			ID: 1, UserID: "u-1", PairName: "XAUUSD", Signal: "BUY",
			AnalysisResult: "**SIGNAL**: BUY", ModelUsed: "openai/gpt-4o",
			CreatedAt: time.Unix(0, 0).UTC(),
		}},
	}

	srv := NewServer(nil, news, journal, ServerConfig{RequestTimeout: time.Second})
	return srv, news, journal
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}
