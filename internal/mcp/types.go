package mcp

import (
	"fmt"
	"strings"

	"ai-trade-pro/internal/domain"
)

const (
	defaultJournalLimit = 20
	maxJournalLimit     = 100
	maxNewsSources      = 5
)

type signalParseInput struct {
	Text string `json:"text" jsonschema:"raw model completion to extract a trading signal from"`
}

type signalParseOutput struct {
	Parsed    domain.ParsedSignal    `json:"parsed"`
	Valid     bool                   `json:"valid"`
	Direction domain.SignalDirection `json:"direction"`
}

type newsFetchInput struct {
	Topic   string   `json:"topic" jsonschema:"instrument or topic to search news for (e.g. XAUUSD)"`
	Sources []string `json:"sources,omitempty" jsonschema:"optional source domains (e.g. investing.com), max 5"`
}

type newsFetchOutput struct {
	Topic string `json:"topic"`
	News  string `json:"news"`
}

type journalListInput struct {
	UserID string `json:"user_id" jsonschema:"user whose journal to list"`
	Limit  int    `json:"limit,omitempty" jsonschema:"number of entries to return, max 100"`
}

type journalListOutput struct {
	Entries []domain.AnalysisLogEntry `json:"entries"`
}

func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("topic is required")
	}
	return topic, nil
}

func normalizeSources(sources []string) ([]string, error) {
	if len(sources) > maxNewsSources {
		return nil, fmt.Errorf("at most %d sources allowed", maxNewsSources)
	}
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func normalizeJournalLimit(limit int) int {
	if limit <= 0 {
		return defaultJournalLimit
	}
	if limit > maxJournalLimit {
		return maxJournalLimit
	}
	return limit
}
