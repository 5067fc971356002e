package domain

// IntentKind identifies the single action resolved from one query.
type IntentKind int

const (
	IntentShowSuggestions IntentKind = iota
	IntentScheduleShutdown
	IntentCancelShutdown
	IntentReportInvalidInput
)

func (k IntentKind) String() string {
	switch k {
	case IntentShowSuggestions:
		return "suggest"
	case IntentScheduleShutdown:
		return "schedule"
	case IntentCancelShutdown:
		return "cancel"
	case IntentReportInvalidInput:
		return "invalid"
	default:
		return "unknown"
	}
}

// Intent is the action derived from one query evaluation.
// Seconds is set only for IntentScheduleShutdown and Input only for
// IntentReportInvalidInput.
type Intent struct {
	Kind    IntentKind
	Seconds int64
	Input   string
}

// ShowSuggestions is produced for blank queries.
func ShowSuggestions() Intent {
	return Intent{Kind: IntentShowSuggestions}
}

// ScheduleShutdown requests a shutdown after seconds.
func ScheduleShutdown(seconds int64) Intent {
	return Intent{Kind: IntentScheduleShutdown, Seconds: seconds}
}

// CancelShutdown aborts a pending shutdown.
func CancelShutdown() Intent {
	return Intent{Kind: IntentCancelShutdown}
}

// ReportInvalidInput carries a query that failed to parse.
func ReportInvalidInput(input string) Intent {
	return Intent{Kind: IntentReportInvalidInput, Input: input}
}

// Actionable reports whether executing the intent touches the shutdown facility.
func (i Intent) Actionable() bool {
	return i.Kind == IntentScheduleShutdown || i.Kind == IntentCancelShutdown
}

// Result is one record offered to the host for presentation.
type Result struct {
	Title    string
	Subtitle string
	Intent   Intent
}

// OutcomeStatus represents the status of an executed intent.
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeFailure
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "ok"
	case OutcomeFailure:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the reported result of executing an Intent.
type Outcome struct {
	ID      string
	Status  OutcomeStatus
	Title   string
	Message string
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess
}

// Severity classifies a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notification is a user-facing message sent through a Notifier.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}
