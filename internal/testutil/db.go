package testutil

import (
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/expensetrace/internal/storage/sqlite"
)

// SetupTestStorage opens a snapshot database inside the test temp dir and
// closes it when the test ends.
func SetupTestStorage(t *testing.T) (*sqlite.Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "expensetrace.db")
	s, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return s, path
}
