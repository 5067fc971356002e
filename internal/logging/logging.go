package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents logging severity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	currentLevel     = LevelWarn
	currentVerbosity = 0
	base             = newConsole(os.Stderr)
)

func init() {
	zerolog.SetGlobalLevel(toZerolog(currentLevel))
}

func newConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// Configure selects the output encoding ("console" or "json") and writer.
func Configure(format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	if strings.ToLower(format) == "json" {
		base = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	base = newConsole(w)
}

// Component returns a logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// SetLevel applies a Level directly and keeps the -v count in sync.
func SetLevel(l Level) {
	switch l {
	case LevelError, LevelWarn:
		currentVerbosity = 0
	case LevelInfo:
		currentVerbosity = 1
	case LevelDebug:
		currentVerbosity = 2
	default:
		currentVerbosity = 4
	}
	currentLevel = l
	zerolog.SetGlobalLevel(toZerolog(l))
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > 4 {
		count = 4
	}
	currentVerbosity = count
	switch count {
	case 0:
		currentLevel = LevelWarn
	case 1:
		currentLevel = LevelInfo
	case 2:
		currentLevel = LevelDebug
	default:
		currentLevel = LevelTrace
	}
	zerolog.SetGlobalLevel(toZerolog(currentLevel))
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	return currentVerbosity
}

// LevelName returns current level label.
func LevelName() string {
	return LevelToString(currentLevel)
}

// LevelToString converts a Level to human readable text.
func LevelToString(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, 0, nil
	case "warn", "warning":
		return LevelWarn, 0, nil
	case "info":
		return LevelInfo, 1, nil
	case "debug":
		return LevelDebug, 2, nil
	case "trace":
		return LevelTrace, 4, nil
	default:
		return LevelWarn, currentVerbosity, fmt.Errorf("unknown level %s", s)
	}
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelError:
		return zerolog.ErrorLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	base.Error().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	base.Warn().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	base.Info().Msgf(format, args...)
}

func Debugf(format string, args ...any) {
	base.Debug().Msgf(format, args...)
}

func Tracef(format string, args ...any) {
	base.Trace().Msgf(format, args...)
}
