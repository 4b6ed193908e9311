package testutil

import (
	"context"
	"testing"
	"time"
)

const defaultTimeout = 30 * time.Second

// Context is bounded by both the test's lifetime and a 30 second timeout.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), defaultTimeout)
	t.Cleanup(cancel)

	return ctx
}
