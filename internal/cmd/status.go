package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nroldan/tailship/internal/artifact"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last build shipped from this project",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	m, err := artifact.LoadManifest(root)
	if os.IsNotExist(err) {
		fmt.Fprintln(out, "No build has been shipped from this project yet.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📦 Last build: %s (%s)\n", m.Artifact, m.Variant)
	fmt.Fprintf(out, "   Size:    %.1f MB\n", float64(m.SizeBytes)/(1024*1024))
	fmt.Fprintf(out, "   Device:  %s\n", m.Device)
	fmt.Fprintf(out, "   Shipped: %s\n", m.BuiltAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
