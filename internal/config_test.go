package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ExecutionContextRegular, cfg.Execution.Context)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Database.DSN)
	require.True(t, errors.Is(cfg.Require("database.dsn"), ErrMissingConfig))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`
dynamodb:
  flights: flights-from-file
execution:
  context: low
queue:
  boarding: boarding-from-file
`), 0o600)
	require.NoError(t, err)

	t.Setenv("QUEUE_BOARDING", "boarding-from-env")

	cfg, err := LoadConfig(path, filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "flights-from-file", cfg.DynamoDB.Flights)
	require.Equal(t, ExecutionContextLow, cfg.Execution.Context)
	require.Equal(t, "boarding-from-env", cfg.Queue.Boarding)
}

func TestConfig_Require(t *testing.T) {
	t.Setenv("DYNAMODB_FLIGHTS", "flights")
	t.Setenv("SENDER_EMAIL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NoError(t, cfg.Require("dynamodb.flights"))

	err = cfg.Require("dynamodb.flights", "sender.email")
	require.True(t, errors.Is(err, ErrMissingConfig))
	require.EqualError(t, err, "missing_config: sender.email")
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DYNAMODB_FLIGHTS":  "dynamodb.flights",
		"EXECUTION_CONTEXT": "execution.context",
		"LOG_LEVEL":         "log.level",
		"HOME":              "",
		"GO_FLAGS":          "",
	}
	for name, want := range tests {
		require.Equal(t, want, envKey(name), name)
	}
}
