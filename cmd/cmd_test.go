package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateThenRemeshRoundTrips(t *testing.T) {
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "fixture.mesh")
	outPath := filepath.Join(dir, "result.mesh")

	rootCmd.SetArgs([]string{"generate", "--out", meshPath})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{
		"remesh",
		"--in", meshPath,
		"--out", outPath,
		"--target-size", "0.5",
		"--max-iterations", "2",
	})
	require.NoError(t, rootCmd.Execute())
}
