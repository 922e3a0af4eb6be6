package fixture

import (
	"testing"

	"github.com/meetupaws/airport_boarding/internal"
)

// ExecutionContext reports the configured execution context, "regular" unless
// EXECUTION_CONTEXT or config.yaml says otherwise.
func ExecutionContext(t testing.TB) string {
	t.Helper()
	cfg, err := internal.LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("Could not load config: %s\n", err)
	}
	return cfg.Execution.Context
}

// RequireRegular skips the test unless it runs in the regular execution
// context.
func RequireRegular(t testing.TB) {
	t.Helper()
	requireContext(t, ExecutionContext(t))
}

func requireContext(t testing.TB, context string) {
	t.Helper()
	if context == internal.ExecutionContextLow {
		t.Skipf("skipped in the %q execution context", context)
	}
}

// SetupTeardown runs setup and registers teardown only when the test runs in
// the regular execution context. Otherwise the test is skipped and neither
// runs.
func SetupTeardown(t testing.TB, setup func(), teardown func()) {
	t.Helper()
	RequireRegular(t)
	setup()
	t.Cleanup(teardown)
}
