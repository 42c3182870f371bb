package testutil

import (
	"testing"

	"github.com/GustavoCaso/expensetrace/internal/logger"
)

// TestLogger returns a debug level logger that doesn't output anything, so
// debug-only code paths still run under test.
func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	return logger.New(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatText,
		Output: "discard",
	})
}
