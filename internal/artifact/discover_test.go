package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nroldan/tailship/internal/flutter"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("apk"), 0o644))
}

func TestDiscoverPrefersExactPath(t *testing.T) {
	root := t.TempDir()
	exact := filepath.Join(root, "build", "app", "outputs", "flutter-apk", "app-release.apk")
	touch(t, exact)
	touch(t, filepath.Join(root, "build", "app", "outputs", "flutter-apk", "other-release-v2.apk"))
	touch(t, filepath.Join(root, "build", "app", "outputs", "apk", "release", "app.apk"))

	got, err := Discover(root, flutter.Release)
	require.NoError(t, err)
	assert.Equal(t, exact, got)
}

func TestDiscoverFallsBackInOrder(t *testing.T) {
	root := t.TempDir()
	tagged := filepath.Join(root, "build", "app", "outputs", "flutter-apk", "app-debug-arm64.apk")
	touch(t, tagged)
	touch(t, filepath.Join(root, "build", "app", "outputs", "apk", "debug", "app.apk"))

	got, err := Discover(root, flutter.Debug)
	require.NoError(t, err)
	assert.Equal(t, tagged, got, "second candidate wins when the first does not exist")
}

func TestDiscoverLegacyOutputDirectory(t *testing.T) {
	root := t.TempDir()
	legacy := filepath.Join(root, "build", "app", "outputs", "apk", "debug", "app.apk")
	touch(t, legacy)

	got, err := Discover(root, flutter.Debug)
	require.NoError(t, err)
	assert.Equal(t, legacy, got)
}

func TestDiscoverExactPathWithGlobMetacharsInRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "app[1]")
	exact := filepath.Join(root, "build", "app", "outputs", "flutter-apk", "app-release.apk")
	touch(t, exact)

	got, err := Discover(root, flutter.Release)
	require.NoError(t, err)
	assert.Equal(t, exact, got)
}

func TestDiscoverIgnoresOtherVariant(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "build", "app", "outputs", "flutter-apk", "app-debug.apk"))

	_, err := Discover(root, flutter.Release)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDiscoverNotFound(t *testing.T) {
	_, err := Discover(t.TempDir(), flutter.Release)
	assert.True(t, errors.Is(err, ErrNotFound))
}
