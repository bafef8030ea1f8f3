package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout yields sortable names, collision-resistant at one-second
// granularity. Same-second reruns silently overwrite the prior artifact.
const timestampLayout = "20060102_150405"

// WithTimestamp renames the file in place, inserting a timestamp between
// the base name and the extension, and returns the new path.
func WithTimestamp(path string, now time.Time) (string, error) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)

	newPath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, now.Format(timestampLayout), ext))
	if err := os.Rename(path, newPath); err != nil {
		return "", fmt.Errorf("failed to version artifact: %w", err)
	}
	return newPath, nil
}
