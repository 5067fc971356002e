package domain

import (
	"fmt"
	"strings"
)

const (
	titlePrompt    = "Shutdown Computer"
	subtitlePrompt = "Type time (e.g., '10s', '5m', '2h', '1d') to schedule a shutdown."
	titleCancel    = "Cancel Scheduled Shutdown"
	subtitleCancel = "Cancels any pending timed shutdown."
	titleInvalid   = "Invalid time format or value"
)

// CommandService provides pure domain logic for turning queries into intents.
// This service has no side effects and holds no state, so it is safe to call
// from concurrent query evaluations.
type CommandService struct{}

// NewCommandService creates a new command service.
func NewCommandService() *CommandService {
	return &CommandService{}
}

// Evaluate resolves a raw query into exactly one Intent.
func (s *CommandService) Evaluate(query string) Intent {
	if strings.TrimSpace(query) == "" {
		return ShowSuggestions()
	}
	seconds, err := ParseDuration(query)
	if err != nil {
		return ReportInvalidInput(query)
	}
	return ScheduleShutdown(seconds)
}

// Results builds the records offered to the host for a query.
// Blank queries get the prompt and the cancel entry; anything else gets a
// single record for the evaluated intent.
func (s *CommandService) Results(query string) []Result {
	intent := s.Evaluate(query)
	switch intent.Kind {
	case IntentShowSuggestions:
		return []Result{
			{Title: titlePrompt, Subtitle: subtitlePrompt, Intent: intent},
			{Title: titleCancel, Subtitle: subtitleCancel, Intent: CancelShutdown()},
		}
	case IntentScheduleShutdown:
		display := FormatDuration(intent.Seconds)
		return []Result{{
			Title:    "Schedule shutdown in " + display,
			Subtitle: fmt.Sprintf("Click to shut down after %s.", display),
			Intent:   intent,
		}}
	default:
		return []Result{{
			Title:    titleInvalid,
			Subtitle: InvalidInputMessage(intent.Input),
			Intent:   intent,
		}}
	}
}

// PromptMessage is shown when there is nothing to execute yet.
func PromptMessage() string {
	return subtitlePrompt
}

// InvalidInputMessage echoes the rejected input together with the grammar.
func InvalidInputMessage(input string) string {
	return fmt.Sprintf("Could not parse '%s'. Please use %s, e.g. '10s', '5m', '2h', '1d' or just '10' for minutes.", input, Grammar)
}
