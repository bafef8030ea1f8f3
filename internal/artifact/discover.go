// Package artifact locates, versions, and records the APK produced by a build.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nroldan/tailship/internal/flutter"
)

// ErrNotFound signals that no candidate output path matched. The caller
// decides how to report it; discovery never terminates the process.
var ErrNotFound = errors.New("no apk found under known output paths")

// Discover returns the first existing APK for the variant, probing an
// ordered list of candidates: the exact conventional path first, then
// variant-tagged globs in the fixed output directories.
func Discover(root string, variant flutter.Variant) (string, error) {
	flutterAPKDir := filepath.Join(root, "build", "app", "outputs", "flutter-apk")

	// The exact candidate is a plain path, not a pattern; Stat keeps it
	// working when the project path itself contains glob metacharacters.
	exact := filepath.Join(flutterAPKDir, fmt.Sprintf("app-%s.apk", variant))
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	patterns := []string{
		filepath.Join(flutterAPKDir, fmt.Sprintf("*%s*.apk", variant)),
		filepath.Join(root, "build", "app", "outputs", "apk", variant.String(), "*.apk"),
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", ErrNotFound
}
