package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
)

const (
	manifestDir  = ".tailship"
	manifestName = "last-build.json"
)

// Manifest records the outcome of the most recent successful run.
type Manifest struct {
	Variant   string    `json:"variant"`
	Artifact  string    `json:"artifact"`
	SizeBytes int64     `json:"size_bytes"`
	Device    string    `json:"device"`
	BuiltAt   time.Time `json:"built_at"`
}

// Write persists the manifest atomically under the project root, so a
// crashed writer never leaves a truncated file behind.
func (m *Manifest) Write(root string) error {
	dir := filepath.Join(root, manifestDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	return renameio.WriteFile(filepath.Join(dir, manifestName), append(data, '\n'), 0o644)
}

// LoadManifest reads the last-build manifest, if any.
func LoadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, manifestDir, manifestName))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("corrupt build manifest: %w", err)
	}
	return &m, nil
}
