package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// ChTempDir changes the working directory to a new temporary directory for the
// duration of a test, returning its path.
func ChTempDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
	return dir
}
