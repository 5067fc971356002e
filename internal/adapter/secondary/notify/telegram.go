package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

const telegramTimeout = 10 * time.Second

// sender is the part of *tgbotapi.BotAPI the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier forwards notifications to a Telegram chat so a remote
// user learns that the machine is about to go down.
// The bot is authorized on the first notification, not at construction,
// so an unreachable Bot API never stops the launcher from working.
type TelegramNotifier struct {
	connect func() (sender, error)
	chatID  int64
	log     zerolog.Logger

	mu  sync.Mutex
	bot sender
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
// No network call is made until Notify.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	n := newTelegramNotifier(nil, chatID)
	n.connect = func() (sender, error) {
		client := &http.Client{Timeout: telegramTimeout}
		bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
		if err != nil {
			return nil, fmt.Errorf("telegram bot: %w", err)
		}
		n.log.Debug().Str("bot", bot.Self.UserName).Msg("telegram notifier ready")
		return bot, nil
	}
	return n
}

func newTelegramNotifier(bot sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, log: logging.Component("notify")}
}

// client returns the authorized bot. A failed authorization is retried on
// the next call.
func (t *TelegramNotifier) client() (sender, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	bot, err := t.connect()
	if err != nil {
		return nil, err
	}
	t.bot = bot
	return bot, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, n domain.Notification) {
	bot, err := t.client()
	if err != nil {
		t.log.Warn().Err(err).Msg("telegram notification skipped")
		return
	}
	icon := "✅"
	if n.Severity == domain.SeverityError {
		icon = "❌"
	}
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s %s\n%s", icon, n.Title, n.Message))
	if _, err := bot.Send(msg); err != nil {
		t.log.Warn().Err(err).Int64("chat", t.chatID).Msg("telegram notification failed")
	}
}
