package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nroldan/tailship/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild and ship whenever Dart sources change",
	Long: `Watch the project for Dart source and pubspec changes and re-run the
build-and-ship pipeline on each settled change. A failed run is reported
and watching continues. Stop with ctrl-c.`,
	RunE: runWatch,
}

func init() {
	addVariantFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadEnvironment(root)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.DefaultConfig(root))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	runOnce := func() {
		p, err := newPipeline(root, cfg)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			return
		}
		if err := p.Run(ctx); err != nil {
			fmt.Printf("❌ Build failed: %v\n", err)
		}
	}

	runOnce()
	fmt.Println("\n👀 Watching for changes... (ctrl-c to stop)")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n👋 Stopped watching")
			return nil
		case path := <-w.Triggers():
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			fmt.Printf("\n📝 %s changed, rebuilding...\n", rel)
			runOnce()
			fmt.Println("\n👀 Watching for changes... (ctrl-c to stop)")
		case err := <-w.Errors():
			fmt.Printf("⚠️  Watch error: %v\n", err)
		}
	}
}
