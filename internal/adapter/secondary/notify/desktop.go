package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

// DesktopNotifier shows a native desktop notification using the tool each
// OS ships with.
type DesktopNotifier struct {
	os  string
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
	log zerolog.Logger
}

// NewDesktopNotifier creates a desktop notifier for the given OS name
// ("linux", "darwin" or "windows").
func NewDesktopNotifier(osName string) *DesktopNotifier {
	return &DesktopNotifier{
		os: osName,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
		log: logging.Component("notify"),
	}
}

func (d *DesktopNotifier) Notify(ctx context.Context, n domain.Notification) {
	argv, err := desktopCommand(d.os, n)
	if err != nil {
		d.log.Warn().Err(err).Msg("desktop notification skipped")
		return
	}
	if output, err := d.run(ctx, argv[0], argv[1:]...); err != nil {
		d.log.Warn().Err(err).Str("output", strings.TrimSpace(string(output))).
			Str("tool", argv[0]).Msg("desktop notification failed")
	}
}

func desktopCommand(osName string, n domain.Notification) ([]string, error) {
	switch osName {
	case "linux":
		urgency := "normal"
		if n.Severity == domain.SeverityError {
			urgency = "critical"
		}
		return []string{"notify-send", "--urgency=" + urgency, n.Title, n.Message}, nil
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleQuote(n.Message), appleQuote(n.Title))
		return []string{"osascript", "-e", script}, nil
	case "windows":
		return []string{"msg", "*", n.Title + ": " + n.Message}, nil
	default:
		return nil, fmt.Errorf("no desktop notifier for %q", osName)
	}
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
