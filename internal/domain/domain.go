package domain

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationMessage is one turn of the dashboard chat. Image holds a data
// URL (or plain URL) attached to the turn; history messages are re-sent with
// Image stripped to bound payload size.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

type TradingMode string

const (
	ModeUnspecified TradingMode = ""
	ModeScalping    TradingMode = "scalping"
	ModeSwing       TradingMode = "swing"
)

// ParseTradingMode maps a raw request value onto a known mode. Anything
// unrecognized becomes ModeUnspecified, which appends no mode instruction.
func ParseTradingMode(raw string) TradingMode {
	switch TradingMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeScalping:
		return ModeScalping
	case ModeSwing, "long":
		return ModeSwing
	default:
		return ModeUnspecified
	}
}

// AnalysisRequest carries one user action through the pipeline. It is built
// per request and never persisted.
type AnalysisRequest struct {
	Messages          []ConversationMessage
	UserID            string
	APIKey            string
	Model             string
	EnableNews        bool
	NewsSources       []string
	TradingMode       TradingMode
	TechnicalAnalysis bool
	SystemPrompt      string
	Image             string
}

// ParsedSignal holds the labeled fields extracted from a model completion.
// All fields are free text; price levels are expressions, not numbers.
type ParsedSignal struct {
	Signal     string `json:"signal,omitempty"`
	Pair       string `json:"pair,omitempty"`
	Timeframe  string `json:"timeframe,omitempty"`
	Entry      string `json:"entry,omitempty"`
	TakeProfit string `json:"takeProfit,omitempty"`
	StopLoss   string `json:"stopLoss,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// Valid reports whether the extraction qualifies as a structured signal.
// Without both signal and pair the raw text stays the source of truth.
func (p ParsedSignal) Valid() bool {
	return p.Signal != "" && p.Pair != ""
}

type SignalDirection string

const (
	DirectionBuy     SignalDirection = "BUY"
	DirectionSell    SignalDirection = "SELL"
	DirectionNeutral SignalDirection = "NEUTRAL"
)

// AnalysisLogEntry is one append-only journal row.
type AnalysisLogEntry struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	PairName       string    `json:"pair_name"`
	Signal         string    `json:"signal"`
	AnalysisResult string    `json:"analysis_result"`
	ModelUsed      string    `json:"model_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// JournalStats backs the admin dashboard.
type JournalStats struct {
	TotalAnalyses int64 `json:"total_analyses"`
	UniqueUsers   int64 `json:"unique_users"`
	AnalysesToday int64 `json:"analyses_today"`
	BuySignals    int64 `json:"buy_signals"`
	SellSignals   int64 `json:"sell_signals"`
	OtherSignals  int64 `json:"other_signals"`
}
