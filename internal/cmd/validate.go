package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/nroldan/tailship/internal/config"
)

//go:embed schemas/tailship-config.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the .tailship.yaml configuration",
	Long: `Validates the .tailship.yaml configuration file against its JSON Schema,
catching typos and bad values before a run fails halfway through.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, config.FileName)
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(out, "No %s found — defaults apply (device %q, platform %q).\n",
			config.FileName, config.DefaultDevice, config.DefaultTargetPlatform)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.FileName, err)
	}

	fmt.Fprintf(out, "🔍 Validating %s...\n", config.FileName)

	// YAML decodes to the generic document shape the schema validator expects.
	var document interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.FileName, err)
	}

	schemaBytes, err := schemaFS.ReadFile("schemas/tailship-config.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		fmt.Fprintln(out, "\n❌ Validation failed with the following errors:")
		fmt.Fprintln(out)
		for i, desc := range result.Errors() {
			fmt.Fprintf(out, "%d. %s\n", i+1, desc.String())
		}
		return fmt.Errorf("validation failed with %d errors", len(result.Errors()))
	}

	// The typed loader catches what the schema cannot (duration syntax).
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ %s is valid! (device %q, platform %q)\n", config.FileName, cfg.Device, cfg.TargetPlatform)
	return nil
}
