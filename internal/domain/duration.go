package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Grammar describes the accepted duration expressions.
const Grammar = "<int><s|sec|m|min|h|hour|d|day> or a bare integer for minutes"

// unitSuffix maps a trailing unit token to its length in seconds.
type unitSuffix struct {
	token   string
	seconds int64
}

// Longest tokens come first so that "sec" is never read as "se" + "c".
var unitSuffixes = []unitSuffix{
	{"hour", 3600},
	{"day", 86400},
	{"sec", 1},
	{"min", 60},
	{"h", 3600},
	{"d", 86400},
	{"s", 1},
	{"m", 60},
}

// ParseDuration converts a raw query such as "10s", "5 min" or "2" into a
// number of seconds. A bare integer is read as minutes. Every failure is a
// *ParseError; a nil error always comes with a strictly positive result.
func ParseDuration(raw string) (int64, error) {
	normalized := normalize(raw)
	if normalized == "" {
		return 0, &ParseError{Input: raw, Err: ErrEmptyDuration}
	}

	number, multiplier := splitUnit(normalized)

	// Numbers are limited to 32 bits so the int64 product cannot overflow.
	value, err := strconv.ParseInt(number, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Input: raw, Err: ErrDurationOutOfRange}
		}
		return 0, &ParseError{Input: raw, Err: ErrMalformedDuration}
	}

	seconds := value * multiplier
	if seconds <= 0 {
		return 0, &ParseError{Input: raw, Err: ErrNonPositiveDuration}
	}
	return seconds, nil
}

// FormatDuration renders seconds in the largest whole unit that fits,
// truncating the remainder: 90 is "1 minute", 3599 is "59 minutes".
func FormatDuration(seconds int64) string {
	switch {
	case seconds < 60:
		return plural(seconds, "second")
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(raw))
}

// splitUnit strips a single trailing unit token. Without one the whole
// string is the number and the unit defaults to minutes.
func splitUnit(s string) (string, int64) {
	for _, u := range unitSuffixes {
		if strings.HasSuffix(s, u.token) {
			return strings.TrimSuffix(s, u.token), u.seconds
		}
	}
	return s, 60
}
