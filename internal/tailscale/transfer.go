// Package tailscale sends files to peers with the tailscale CLI.
// The tailnet is assumed to be configured and authenticated already;
// this package only shells out to `tailscale file cp`.
package tailscale

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/nroldan/tailship/internal/runner"
)

// macAppBinary is where the Tailscale macOS app hides its CLI.
const macAppBinary = "/Applications/Tailscale.app/Contents/MacOS/Tailscale"

// Transferer delivers files to a named peer's default inbound location.
type Transferer struct {
	run           runner.Runner
	tailscalePath string
}

// NewTransferer creates a Transferer. binOverride, when non-empty, bypasses
// PATH lookup (config `tailscale_bin`).
func NewTransferer(run runner.Runner, binOverride string) (*Transferer, error) {
	tailscalePath, err := findTailscale(binOverride)
	if err != nil {
		return nil, fmt.Errorf("tailscale not found: %w", err)
	}

	return &Transferer{
		run:           run,
		tailscalePath: tailscalePath,
	}, nil
}

// SendFile copies path to the device's default inbound-file location.
// The bare "<device>:" destination is the tailscale convention for it.
func (t *Transferer) SendFile(ctx context.Context, path, device string) error {
	desc := fmt.Sprintf("Sending %s to %s via Tailscale", filepath.Base(path), device)
	_, err := t.run.Run(ctx, desc, t.tailscalePath, "file", "cp", path, device+":")
	return err
}

// findTailscale locates the tailscale binary.
func findTailscale(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if path, err := exec.LookPath("tailscale"); err == nil {
		return path, nil
	}

	if runtime.GOOS == "darwin" {
		if _, err := os.Stat(macAppBinary); err == nil {
			return macAppBinary, nil
		}
	}

	return "", fmt.Errorf("tailscale not found in PATH")
}
