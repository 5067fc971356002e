package notify

import (
	"shutdown-timer/internal/config"
	"shutdown-timer/internal/domain"
)

// New assembles the notifiers enabled in cfg. The log notifier is always
// present so every outcome leaves a trace. Nothing here touches the network.
func New(cfg config.NotifyConfig, osName string) domain.Notifier {
	notifiers := Multi{NewLogNotifier()}
	if cfg.Desktop {
		notifiers = append(notifiers, NewDesktopNotifier(osName))
	}
	if cfg.Telegram.Enabled {
		notifiers = append(notifiers, NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	return notifiers
}
