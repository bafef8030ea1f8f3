package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nroldan/tailship/internal/flutter"
)

func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		flagDebug = false
		flagRelease = false
		rootCmd.Flags().Lookup("debug").Changed = false
		rootCmd.Flags().Lookup("release").Changed = false
		rootCmd.SetArgs(nil)
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestBothVariantFlagsIsUsageError(t *testing.T) {
	err := executeRoot(t, "--debug", "--release")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestNoVariantFlagIsUsageError(t *testing.T) {
	err := executeRoot(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags")
}

func TestSelectedVariant(t *testing.T) {
	flagDebug = true
	flagRelease = false
	assert.Equal(t, flutter.Debug, selectedVariant())

	flagDebug = false
	flagRelease = true
	assert.Equal(t, flutter.Release, selectedVariant())
}
