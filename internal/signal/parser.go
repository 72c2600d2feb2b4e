package signal

import (
	"regexp"
	"strings"

	"ai-trade-pro/internal/domain"
)

// The completion contract is a sequence of `**LABEL**: value` lines followed
// by an optional `**REASONING**:` block. Labels are matched case-insensitively
// and the first occurrence wins; a missing label yields an empty field, never
// an error. This rule must stay in lockstep with the output template in
// internal/prompt.
const reasoningMarker = "**REASONING**:"

var (
	signalPattern     = fieldPattern("SIGNAL")
	pairPattern       = fieldPattern("PAIR")
	timeframePattern  = fieldPattern("TIMEFRAME")
	entryPattern      = fieldPattern("ENTRY")
	takeProfitPattern = fieldPattern("TAKE PROFIT")
	stopLossPattern   = fieldPattern("STOP LOSS")
	confidencePattern = fieldPattern("CONFIDENCE")
)

func fieldPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\*\*` + regexp.QuoteMeta(label) + `\*\*:\s*(.*)`)
}

func extract(raw string, pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Parse extracts the labeled signal fields from a raw completion. Parsing is
// tolerant: absent fields stay empty and the caller decides validity via
// ParsedSignal.Valid.
func Parse(raw string) domain.ParsedSignal {
	parsed := domain.ParsedSignal{
		Signal:     extract(raw, signalPattern),
		Pair:       extract(raw, pairPattern),
		Timeframe:  extract(raw, timeframePattern),
		Entry:      extract(raw, entryPattern),
		TakeProfit: extract(raw, takeProfitPattern),
		StopLoss:   extract(raw, stopLossPattern),
		Confidence: extract(raw, confidencePattern),
	}
	if _, rest, found := strings.Cut(raw, reasoningMarker); found {
		parsed.Reasoning = strings.TrimSpace(rest)
	}
	return parsed
}

// Classify maps a SIGNAL field value onto a direction using a case-insensitive
// substring test, BUY before SELL. A value like "I would NOT BUY" classifies
// as BUY; callers depending on stricter semantics must replace this function,
// not the call sites.
func Classify(signalField string) domain.SignalDirection {
	upper := strings.ToUpper(signalField)
	switch {
	case strings.Contains(upper, "BUY"):
		return domain.DirectionBuy
	case strings.Contains(upper, "SELL"):
		return domain.DirectionSell
	default:
		return domain.DirectionNeutral
	}
}
