package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nroldan/tailship/internal/config"
)

func runValidateIn(t *testing.T, root string) (string, error) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var buf bytes.Buffer
	validateCmd.SetOut(&buf)
	validateCmd.SetErr(&buf)
	err = runValidate(validateCmd, nil)
	return buf.String(), err
}

func TestValidateMissingConfigUsesDefaults(t *testing.T) {
	out, err := runValidateIn(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "defaults apply")
	assert.Contains(t, out, config.DefaultDevice)
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(`
device: pixel-7
target_platform: android-arm64
confirm_send: true
timeouts:
  build: 20m
`), 0o644))

	out, err := runValidateIn(t, root)
	require.NoError(t, err)
	assert.Contains(t, out, "✅")
	assert.Contains(t, out, `device "pixel-7"`)
}

func TestValidateRejectsEmptyDevice(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("device: \"\"\n"), 0o644))

	out, err := runValidateIn(t, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "❌")
	assert.Contains(t, out, "device")
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("devcie: asus\n"), 0o644))

	_, err := runValidateIn(t, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("timeouts:\n  build: soon\n"), 0o644))

	_, err := runValidateIn(t, root)
	require.Error(t, err)
}

func TestValidateRejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("device: [\n"), 0o644))

	_, err := runValidateIn(t, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
