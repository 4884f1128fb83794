package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteBlueprint writes content to name inside a temporary directory and
// returns the absolute path. The extension of name selects the format when
// the file is loaded. It fails the test immediately on error.
func WriteBlueprint(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write blueprint")
	return absPath
}
