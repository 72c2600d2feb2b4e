package prompt

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ai-trade-pro/internal/domain"
)

const defaultPersona = "You are a world-class Quantitative Technical & Fundamental Analyst for forex, crypto, and commodities. Analyze charts with precision and never hedge on levels."

// imageOnlyPrompt stands in for chat text when a request carries a chart
// image and no messages.
const imageOnlyPrompt = "Analyze the attached chart."

const scalpingBlock = `TRADING MODE: SCALPING.
Focus on short timeframes (M1-M15), momentum, and liquidity sweeps. Entries must be precise, stop losses tight, and targets within the session.`

const swingBlock = `TRADING MODE: SWING.
Focus on higher timeframes (H4-W1), macro trend structure, and fundamental drivers. Use wider stops and multi-day targets.`

const technicalBlock = `TECHNICAL ANALYSIS REQUIRED:
Reference RSI, MACD, Bollinger Bands, and Elliott Wave structure explicitly in your reasoning.`

// outputTemplate is the format contract the signal parser extracts against.
// Field names and the **label**: punctuation must stay in lockstep with
// internal/signal.
const outputTemplate = `When you issue a trade setup, structure your response EXACTLY like this:

**SIGNAL**: [BUY / SELL / WAIT]
**PAIR**: [Instrument, e.g. EUR/USD or XAUUSD]
**TIMEFRAME**: [e.g. M15, H1, H4]
**ENTRY**: [Specific price or zone]
**TAKE PROFIT**: [Specific price]
**STOP LOSS**: [Specific price]
**CONFIDENCE**: [0-100%]

**REASONING**:
[Synthesize the chart, the technicals, and the news context into a final verdict]`

// fallbackNewsTopic is used when no instrument pair can be extracted from the
// latest user message.
const fallbackNewsTopic = "Global Market Sentiment"

// pairCandidatePattern matches instrument identifiers such as EURUSD, XAUUSD,
// or EUR/USD in free text: three to six uppercase letters, optionally followed
// by a slash and another three-to-six letter leg.
var pairCandidatePattern = regexp.MustCompile(`[A-Z]{3,6}(?:/[A-Z]{3,6})?`)

// NewsFetcher supplies scraped market context. Implementations never fail;
// they degrade to sentinel text (see internal/news).
type NewsFetcher interface {
	FetchNews(ctx context.Context, topic string, sources []string) string
}

type Assembler struct {
	news NewsFetcher
}

func NewAssembler(news NewsFetcher) *Assembler {
	return &Assembler{news: news}
}

// Build produces the system message and outgoing message list for one
// analysis request. The output is deterministic for identical inputs and
// identical news-fetch results; the news fetch is the only I/O in this stage.
func (a *Assembler) Build(ctx context.Context, req domain.AnalysisRequest) (string, []domain.ConversationMessage) {
	persona := strings.TrimSpace(req.SystemPrompt)
	if persona == "" {
		persona = defaultPersona
	}

	var sb strings.Builder
	sb.WriteString(persona)

	switch req.TradingMode {
	case domain.ModeScalping:
		sb.WriteString("\n\n")
		sb.WriteString(scalpingBlock)
	case domain.ModeSwing:
		sb.WriteString("\n\n")
		sb.WriteString(swingBlock)
	}

	if req.TechnicalAnalysis {
		sb.WriteString("\n\n")
		sb.WriteString(technicalBlock)
	}

	sb.WriteString("\n\n")
	sb.WriteString(outputTemplate)

	if req.EnableNews && a.news != nil {
		topic := PairCandidate(req.Messages)
		newsText := a.news.FetchNews(ctx, topic, req.NewsSources)
		label := "General"
		if len(req.NewsSources) > 0 {
			label = strings.Join(req.NewsSources, ", ")
		}
		sb.WriteString(fmt.Sprintf("\n\nLATEST MARKET NEWS (sources: %s):\n%s", label, newsText))
	}

	// History is re-sent as role+text only; any previously attached image is
	// stripped to bound payload size. The current turn's image rides on the
	// most recent user message, or on a synthesized user turn when the
	// request has no user text at all.
	messages := make([]domain.ConversationMessage, 0, len(req.Messages)+1)
	for _, m := range req.Messages {
		messages = append(messages, domain.ConversationMessage{Role: m.Role, Content: m.Content})
	}
	if req.Image != "" {
		attached := false
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == domain.RoleUser {
				messages[i].Image = req.Image
				attached = true
				break
			}
		}
		if !attached {
			messages = append(messages, domain.ConversationMessage{
				Role:    domain.RoleUser,
				Content: imageOnlyPrompt,
				Image:   req.Image,
			})
		}
	}

	return sb.String(), messages
}

// PairCandidate extracts an instrument identifier from the most recent user
// message, falling back to a generic market-sentiment topic.
func PairCandidate(messages []domain.ConversationMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != domain.RoleUser {
			continue
		}
		if match := pairCandidatePattern.FindString(messages[i].Content); match != "" {
			return match
		}
		break
	}
	return fallbackNewsTopic
}
