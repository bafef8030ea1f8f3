// Package flutter drives the Flutter toolchain as an external subprocess.
package flutter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/nroldan/tailship/internal/runner"
)

// ProjectMarker is the file that identifies a Flutter project root.
const ProjectMarker = "pubspec.yaml"

// Executor handles Flutter command execution.
type Executor struct {
	run            runner.Runner
	flutterPath    string
	targetPlatform string
}

// NewExecutor creates a Flutter executor. binOverride, when non-empty,
// bypasses PATH lookup (config `flutter_bin`).
func NewExecutor(run runner.Runner, binOverride, targetPlatform string) (*Executor, error) {
	flutterPath, err := findFlutter(binOverride)
	if err != nil {
		return nil, fmt.Errorf("flutter not found: %w", err)
	}

	return &Executor{
		run:            run,
		flutterPath:    flutterPath,
		targetPlatform: targetPlatform,
	}, nil
}

// Clean removes previous build outputs.
func (e *Executor) Clean(ctx context.Context) error {
	_, err := e.run.Run(ctx, "Cleaning previous builds", e.flutterPath, "clean")
	return err
}

// PubGet fetches package dependencies.
func (e *Executor) PubGet(ctx context.Context) error {
	_, err := e.run.Run(ctx, "Getting dependencies", e.flutterPath, "pub", "get")
	return err
}

// BuildAPK builds an APK for the given variant, restricted to the
// configured target platform.
func (e *Executor) BuildAPK(ctx context.Context, variant Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	desc := fmt.Sprintf("Building %s APK", variant)
	_, err := e.run.Run(ctx, desc,
		e.flutterPath, "build", "apk", variant.Flag(), "--target-platform", e.targetPlatform)
	return err
}

// IsProjectRoot reports whether dir looks like a Flutter project root.
func IsProjectRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ProjectMarker))
	return err == nil
}

// findFlutter locates the flutter binary.
func findFlutter(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if path, err := exec.LookPath("flutter"); err == nil {
		return path, nil
	}

	// Common manual-install location
	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, "flutter", "bin", "flutter")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("flutter not found in PATH or ~/flutter/bin")
}
