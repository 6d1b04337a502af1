// Package testutil provides shared test fixtures: spreadsheet
// builders for FAIRe workbook tests and small file helpers.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFile writes content to a file named name inside a fresh test
// temp directory and returns its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
