package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ai-trade-pro/internal/domain"
)

const (
	// Discord rejects embed descriptions over 4096 characters.
	maxDescriptionLen = 4096

	colorBuy     = 0x2ECC71
	colorSell    = 0xE74C3C
	colorNeutral = 0x95A5A6
)

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Color       int         `json:"color"`
	Footer      embedFooter `json:"footer"`
	Timestamp   string      `json:"timestamp"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// WebhookNotifier posts completed analyses to a Discord-compatible webhook.
// Delivery is best effort; failures are logged and never propagate to the
// analysis response.
type WebhookNotifier struct {
	client *resty.Client
	url    string
	now    func() time.Time
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    url,
		now:    time.Now,
	}
}

// Enabled reports whether a webhook URL was configured.
func (n *WebhookNotifier) Enabled() bool { return n.url != "" }

// NotifySignal posts one analysis result. The embed title carries the parsed
// direction and pair when the completion parsed into a valid signal.
func (n *WebhookNotifier) NotifySignal(ctx context.Context, parsed domain.ParsedSignal, raw string, mode domain.TradingMode) {
	if !n.Enabled() {
		return
	}

	title := "Market Analysis"
	if parsed.Valid() {
		title = fmt.Sprintf("%s Signal: %s", strings.ToUpper(parsed.Signal), parsed.Pair)
	}

	description := raw
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}

	footer := "Mode: default"
	if mode != domain.ModeUnspecified {
		footer = "Mode: " + string(mode)
	}

	payload := webhookPayload{Embeds: []embed{{
		Title:       title,
		Description: description,
		Color:       colorFor(raw),
		Footer:      embedFooter{Text: footer},
		Timestamp:   n.now().UTC().Format(time.RFC3339),
	}}}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.url)
	if err != nil {
		log.Printf("notify: webhook delivery failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("notify: webhook returned status %d", resp.StatusCode())
	}
}

func colorFor(raw string) int {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "BUY"):
		return colorBuy
	case strings.Contains(upper, "SELL"):
		return colorSell
	default:
		return colorNeutral
	}
}
