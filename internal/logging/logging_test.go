package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVerbosity(t *testing.T) {
	defer SetVerbosity(0)

	tests := []struct {
		count int
		want  string
		v     int
	}{
		{-3, "warn", 0},
		{0, "warn", 0},
		{1, "info", 1},
		{2, "debug", 2},
		{3, "trace", 3},
		{9, "trace", 4},
	}
	for _, tc := range tests {
		SetVerbosity(tc.count)
		assert.Equal(t, tc.want, LevelName())
		assert.Equal(t, tc.v, Verbosity())
	}
}

func TestParseLevel(t *testing.T) {
	lvl, count, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)
	assert.Equal(t, 2, count)

	lvl, _, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lvl)

	_, _, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestJSONOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure("json", &buf)
	defer Configure("console", nil)
	defer SetVerbosity(0)

	SetLevel(LevelInfo)
	Debugf("hidden %d", 1)
	comp := Component("dispatcher")
	comp.Info().Str("intent", "schedule").Msg("executed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "dispatcher", entry["component"])
	assert.Equal(t, "schedule", entry["intent"])
	assert.Equal(t, "executed", entry["message"])
	assert.Equal(t, 1, Verbosity())
}
