package bot

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v3"

	"ai-trade-pro/internal/domain"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// AlertDispatcher broadcasts parsed trading signals to subscribed chats.
type AlertDispatcher struct {
	sender messageSender

	mu          sync.RWMutex
	subscribers map[int64]struct{}
}

func NewAlertDispatcher(sender messageSender) *AlertDispatcher {
	return &AlertDispatcher{
		sender:      sender,
		subscribers: make(map[int64]struct{}),
	}
}

func (d *AlertDispatcher) Subscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; exists {
		return false
	}
	d.subscribers[chatID] = struct{}{}
	return true
}

func (d *AlertDispatcher) Unsubscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; !exists {
		return false
	}
	delete(d.subscribers, chatID)
	return true
}

func (d *AlertDispatcher) IsSubscribed(chatID int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.subscribers[chatID]
	return exists
}

func (d *AlertDispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers)
}

// NotifyParsed fans one parsed signal out to every subscribed chat. Delivery
// failures are logged per chat and never propagate; a nil dispatcher is a
// no-op so callers can hold one unconditionally.
func (d *AlertDispatcher) NotifyParsed(parsed domain.ParsedSignal) {
	if d == nil || d.sender == nil || !parsed.Valid() {
		return
	}

	chatIDs := d.snapshotSubscribers()
	if len(chatIDs) == 0 {
		return
	}

	msg := formatParsedAlert(parsed)
	for _, chatID := range chatIDs {
		if _, err := d.sender.Send(&tele.Chat{ID: chatID}, msg); err != nil {
			log.Printf("alerts: delivery to chat %d failed: %v", chatID, err)
		}
	}
}

func (d *AlertDispatcher) snapshotSubscribers() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	chatIDs := make([]int64, 0, len(d.subscribers))
	for chatID := range d.subscribers {
		chatIDs = append(chatIDs, chatID)
	}
	sort.Slice(chatIDs, func(i, j int) bool { return chatIDs[i] < chatIDs[j] })
	return chatIDs
}

func parseAlertMode(args []string) (string, error) {
	if len(args) == 0 {
		return "status", nil
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "on":
		return "on", nil
	case "off":
		return "off", nil
	case "status":
		return "status", nil
	default:
		return "", fmt.Errorf("invalid mode")
	}
}

func formatParsedAlert(parsed domain.ParsedSignal) string {
	lines := []string{
		"New trading signal:",
		fmt.Sprintf("%s %s", strings.ToUpper(parsed.Signal), parsed.Pair),
	}
	if parsed.Timeframe != "" {
		lines = append(lines, "Timeframe: "+parsed.Timeframe)
	}
	if parsed.Entry != "" {
		lines = append(lines, "Entry: "+parsed.Entry)
	}
	if parsed.TakeProfit != "" {
		lines = append(lines, "TP: "+parsed.TakeProfit)
	}
	if parsed.StopLoss != "" {
		lines = append(lines, "SL: "+parsed.StopLoss)
	}
	if parsed.Confidence != "" {
		lines = append(lines, "Confidence: "+parsed.Confidence)
	}
	return strings.Join(lines, "\n")
}
