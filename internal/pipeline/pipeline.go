// Package pipeline runs the build-version-transfer sequence. Stages run
// strictly in order and the first failure aborts the run; nothing already
// done is rolled back, so a renamed-but-untransferred APK stays on disk
// for a manual retry of just the transfer.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nroldan/tailship/internal/artifact"
	"github.com/nroldan/tailship/internal/config"
	"github.com/nroldan/tailship/internal/flutter"
	"github.com/nroldan/tailship/internal/runner"
	"github.com/nroldan/tailship/internal/tailscale"
	"github.com/nroldan/tailship/internal/ui"
)

// Options configures a single pipeline run.
type Options struct {
	// Root is the Flutter project directory.
	Root string

	// Variant selects the build configuration.
	Variant flutter.Variant

	// Device is the resolved target Tailscale peer.
	Device string

	// Config carries toolchain overrides and timeouts.
	Config *config.Config

	// Runner executes all external commands.
	Runner runner.Runner

	// Verbose disables the build spinner (output streams instead).
	Verbose bool

	// AssumeYes suppresses the confirm_send prompt.
	AssumeYes bool

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer

	// ErrOut receives the build spinner. Defaults to os.Stderr.
	ErrOut io.Writer

	// Confirm asks before transferring. Defaults to the terminal prompt.
	Confirm func(label string) (bool, error)

	// Now stamps the versioned filename. Defaults to time.Now.
	Now func() time.Time
}

// Pipeline executes the build-version-transfer sequence.
type Pipeline struct {
	opts      Options
	flutter   *flutter.Executor
	transfers *tailscale.Transferer
}

// New wires the pipeline's collaborators. It fails if either external
// binary cannot be located.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Variant.Validate(); err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Confirm == nil {
		opts.Confirm = ui.Confirm
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	fl, err := flutter.NewExecutor(opts.Runner, opts.Config.FlutterBin, opts.Config.TargetPlatform)
	if err != nil {
		return nil, err
	}

	ts, err := tailscale.NewTransferer(opts.Runner, opts.Config.TailscaleBin)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		opts:      opts,
		flutter:   fl,
		transfers: ts,
	}, nil
}

// Run executes the whole pipeline. Any error means the run stopped at
// that stage with no downstream side effects.
func (p *Pipeline) Run(ctx context.Context) error {
	out := p.opts.Out
	fmt.Fprintf(out, "🚀 Starting %s build process...\n", p.opts.Variant)

	if !flutter.IsProjectRoot(p.opts.Root) {
		return fmt.Errorf("not in a Flutter project directory (%s not found)", flutter.ProjectMarker)
	}

	if err := p.build(ctx); err != nil {
		return err
	}

	apkPath, err := p.discover(out)
	if err != nil {
		return err
	}

	versionedPath, err := artifact.WithTimestamp(apkPath, p.opts.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "🏷️  APK renamed: %s -> %s\n", filepath.Base(apkPath), filepath.Base(versionedPath))

	sent, err := p.transfer(ctx, out, versionedPath)
	if err != nil {
		return err
	}
	if !sent {
		return nil
	}

	p.writeManifest(out, versionedPath)

	fmt.Fprintf(out, "\n🎉 Build and transfer complete!\n")
	fmt.Fprintf(out, "📱 On your %s device, install %s from the Downloads folder.\n",
		p.opts.Device, filepath.Base(versionedPath))
	return nil
}

// build runs clean, pub get, and the variant build, in that order. The
// clean and fetch always run regardless of variant.
func (p *Pipeline) build(ctx context.Context) error {
	if err := p.flutter.Clean(ctx); err != nil {
		return err
	}
	if err := p.flutter.PubGet(ctx); err != nil {
		return err
	}

	buildCtx := ctx
	if timeout := p.opts.Config.Timeouts.Build.Std(); timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	doBuild := func() error { return p.flutter.BuildAPK(buildCtx, p.opts.Variant) }
	if p.opts.Verbose {
		return doBuild()
	}
	return ui.Spin(p.opts.ErrOut, fmt.Sprintf("Building %s APK", p.opts.Variant), doBuild)
}

func (p *Pipeline) discover(out io.Writer) (string, error) {
	apkPath, err := artifact.Discover(p.opts.Root, p.opts.Variant)
	if err != nil {
		return "", fmt.Errorf("could not find %s APK file: %w", p.opts.Variant, err)
	}

	fmt.Fprintf(out, "✅ APK built successfully: %s\n", apkPath)
	if info, err := os.Stat(apkPath); err == nil {
		fmt.Fprintf(out, "📦 APK size: %.1f MB\n", float64(info.Size())/(1024*1024))
	}
	return apkPath, nil
}

// transfer sends the versioned APK. sent is false when the operator
// declined at the prompt; the artifact stays on disk either way.
func (p *Pipeline) transfer(ctx context.Context, out io.Writer, versionedPath string) (sent bool, err error) {
	if p.opts.Config.ConfirmSend && !p.opts.AssumeYes {
		label := fmt.Sprintf("Send %s to %s", filepath.Base(versionedPath), p.opts.Device)
		ok, err := p.opts.Confirm(label)
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Fprintf(out, "Cancelled. APK kept at %s\n", versionedPath)
			return false, nil
		}
	}

	fmt.Fprintf(out, "📡 Preparing to send APK to '%s' via Tailscale...\n", p.opts.Device)

	transferCtx := ctx
	if timeout := p.opts.Config.Timeouts.Transfer.Std(); timeout > 0 {
		var cancel context.CancelFunc
		transferCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := p.transfers.SendFile(transferCtx, versionedPath, p.opts.Device); err != nil {
		return false, err
	}

	fmt.Fprintf(out, "✅ APK sent successfully!\n")
	fmt.Fprintf(out, "📱 Check the Downloads folder on %s for %s\n", p.opts.Device, filepath.Base(versionedPath))
	return true, nil
}

// writeManifest records the run; failure here is only a warning because
// the APK has already been delivered.
func (p *Pipeline) writeManifest(out io.Writer, versionedPath string) {
	var size int64
	if info, err := os.Stat(versionedPath); err == nil {
		size = info.Size()
	}

	m := &artifact.Manifest{
		Variant:   p.opts.Variant.String(),
		Artifact:  versionedPath,
		SizeBytes: size,
		Device:    p.opts.Device,
		BuiltAt:   p.opts.Now(),
	}
	if err := m.Write(p.opts.Root); err != nil {
		fmt.Fprintf(out, "⚠️  Failed to record build manifest: %v\n", err)
	}
}
