package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns a unique path for a throwaway SQLite database. The
// directory is cleaned up when the test finishes.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String())
}
