package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationUnits(t *testing.T) {
	units := map[string]int64{
		"s": 1, "sec": 1,
		"m": 60, "min": 60,
		"h": 3600, "hour": 3600,
		"d": 86400, "day": 86400,
	}
	for unit, mult := range units {
		for _, n := range []int64{1, 2, 10, 59, 90, 1000} {
			input := fmt.Sprintf("%d%s", n, unit)
			t.Run(input, func(t *testing.T) {
				got, err := ParseDuration(input)
				require.NoError(t, err)
				assert.Equal(t, n*mult, got)
			})
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"10", 600},
		{"90s", 90},
		{"2h", 7200},
		{"1d", 86400},
		{"  5 M ", 300},
		{"5\tmin", 300},
		{"1 HOUR", 3600},
		{"+3m", 180},
		{"2147483647d", 185542587100800},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDuration(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDurationInvalid(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyDuration},
		{"   ", ErrEmptyDuration},
		{"abc", ErrMalformedDuration},
		{"m", ErrMalformedDuration},
		{"5ms", ErrMalformedDuration},
		{"2hours", ErrMalformedDuration},
		{"1.5h", ErrMalformedDuration},
		{"5m5", ErrMalformedDuration},
		{"-5m", ErrNonPositiveDuration},
		{"0", ErrNonPositiveDuration},
		{"0m", ErrNonPositiveDuration},
		{"-0s", ErrNonPositiveDuration},
		{"999999999999d", ErrDurationOutOfRange},
		{"2147483648", ErrDurationOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDuration(tc.input)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.input, perr.Input)
		})
	}
}

func TestParseDurationStripsOnlyTrailingUnit(t *testing.T) {
	// A global replace of "m" would turn "5min" into "5in".
	got, err := ParseDuration("5min")
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)

	// A global replace of "s" and "sec" would accept this.
	_, err = ParseDuration("1s0s")
	assert.ErrorIs(t, err, ErrMalformedDuration)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{1, "1 second"},
		{2, "2 seconds"},
		{59, "59 seconds"},
		{60, "1 minute"},
		{90, "1 minute"},
		{119, "1 minute"},
		{120, "2 minutes"},
		{3599, "59 minutes"},
		{3600, "1 hour"},
		{7200, "2 hours"},
		{86399, "23 hours"},
		{86400, "1 day"},
		{172800, "2 days"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.seconds))
		})
	}
}
