package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteLedger writes content to a fresh ledger file and returns its path.
func WriteLedger(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "expenses.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write ledger file: %v", err)
	}

	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}

	return string(content)
}
