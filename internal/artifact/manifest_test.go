package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestWriteAndLoad(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{
		Variant:   "release",
		Artifact:  "build/app/outputs/flutter-apk/app-release_20260826_140309.apk",
		SizeBytes: 42 << 20,
		Device:    "asus",
		BuiltAt:   time.Date(2026, 8, 26, 14, 3, 9, 0, time.UTC),
	}

	require.NoError(t, m.Write(root))
	assert.FileExists(t, filepath.Join(root, ".tailship", "last-build.json"))

	got, err := LoadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadManifestCorrupt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".tailship"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tailship", "last-build.json"), []byte("{"), 0o644))

	_, err := LoadManifest(root)
	assert.ErrorContains(t, err, "corrupt build manifest")
}
