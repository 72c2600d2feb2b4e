package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ai-trade-pro/internal/signal"
)

func registerTools(server *mcp.Server, news NewsReader, journal JournalReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "signal_parse",
		Description: "Extract a structured trading signal (signal, pair, levels, reasoning) from raw completion text",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in signalParseInput) (*mcp.CallToolResult, signalParseOutput, error) {
		if strings.TrimSpace(in.Text) == "" {
			return nil, signalParseOutput{}, fmt.Errorf("text is required")
		}
		parsed := signal.Parse(in.Text)
		return nil, signalParseOutput{
			Parsed:    parsed,
			Valid:     parsed.Valid(),
			Direction: signal.Classify(parsed.Signal),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "news_fetch",
		Description: "Fetch recent market news headlines for an instrument or topic",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in newsFetchInput) (*mcp.CallToolResult, newsFetchOutput, error) {
		if news == nil {
			return nil, newsFetchOutput{}, fmt.Errorf("news fetcher unavailable")
		}
		topic, err := normalizeTopic(in.Topic)
		if err != nil {
			return nil, newsFetchOutput{}, err
		}
		sources, err := normalizeSources(in.Sources)
		if err != nil {
			return nil, newsFetchOutput{}, err
		}
		return nil, newsFetchOutput{
			Topic: topic,
			News:  news.FetchNews(ctx, topic, sources),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "journal_list",
		Description: "List a user's most recent analysis journal entries",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in journalListInput) (*mcp.CallToolResult, journalListOutput, error) {
		if journal == nil {
			return nil, journalListOutput{}, fmt.Errorf("journal unavailable")
		}
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return nil, journalListOutput{}, fmt.Errorf("user_id is required")
		}
		entries, err := journal.ListByUser(ctx, userID, normalizeJournalLimit(in.Limit))
		if err != nil {
			return nil, journalListOutput{}, err
		}
		return nil, journalListOutput{Entries: entries}, nil
	})
}
