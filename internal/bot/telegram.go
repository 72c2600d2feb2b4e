package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"ai-trade-pro/internal/domain"
)

type JournalLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error)
}

// StartTelegramBot wires the chat commands and returns the alert dispatcher
// for the analysis pipeline to push into. With no token configured the bot is
// skipped and a nil dispatcher (safe to call) is returned.
func StartTelegramBot(token string, journal JournalLister) *AlertDispatcher {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	alerts := NewAlertDispatcher(b)

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/journal", func(c tele.Context) error {
		if journal == nil {
			return c.Send("Journal unavailable")
		}

		userID, limit, err := parseJournalArgs(c.Args())
		if err != nil {
			return c.Send("Usage: /journal <user_id> [limit]")
		}

		entries, err := journal.ListByUser(context.Background(), userID, limit)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching journal: %v", err))
		}
		if len(entries) == 0 {
			return c.Send("No journal entries for " + userID)
		}
		return c.Send(formatJournal(entries))
	})

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("Signal alerts enabled for this chat.")
			}
			return c.Send("Signal alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Signal alerts disabled for this chat.")
			}
			return c.Send("Signal alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

func parseJournalArgs(args []string) (string, int, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", 0, fmt.Errorf("missing user id")
	}
	userID := strings.TrimSpace(args[0])

	limit := 5
	if len(args) > 1 {
		n, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil || n <= 0 || n > 20 {
			return "", 0, fmt.Errorf("invalid limit")
		}
		limit = n
	}
	return userID, limit, nil
}

func formatJournal(entries []domain.AnalysisLogEntry) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Latest analyses:")
	for _, e := range entries {
		signal := e.Signal
		if signal == "" {
			signal = "N/A"
		}
		pair := e.PairName
		if pair == "" {
			pair = "?"
		}
		lines = append(lines, fmt.Sprintf(
			"#%d %s %s via %s at %s",
			e.ID, strings.ToUpper(signal), pair, e.ModelUsed, e.CreatedAt.UTC().Format(time.RFC822),
		))
	}
	return strings.Join(lines, "\n")
}
