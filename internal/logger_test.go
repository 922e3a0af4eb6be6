package internal

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		logged bool
	}{
		{name: "Debug messages are written at debug level", level: "debug", logged: true},
		{name: "Debug messages are dropped at info level", level: "info", logged: false},
		{name: "An unknown level falls back to info", level: "loud", logged: false},
		{name: "An empty level falls back to info", level: "", logged: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.Buffer{}
			logger := newLogger(&buf, tt.level, false)
			logger.Debug().Str("flight_id", "1").Msg("passenger boarded")
			require.Equal(t, tt.logged, buf.Len() > 0)
		})
	}
}

func TestNewLogger_Fields(t *testing.T) {
	buf := bytes.Buffer{}
	logger := newLogger(&buf, "info", false)
	logger.Info().Str("flight_id", "1").Msg("passenger boarded")

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "1", entry["flight_id"])
	require.Equal(t, "passenger boarded", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.Contains(t, entry, "time")
}
