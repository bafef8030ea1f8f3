// Package config loads the optional .tailship.yaml project configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project-root configuration file.
const FileName = ".tailship.yaml"

const (
	// DefaultDevice is the built-in transfer target.
	DefaultDevice = "asus"

	// DefaultTargetPlatform restricts the APK to one ABI to keep it small.
	DefaultTargetPlatform = "android-arm64"
)

// Config represents the .tailship.yaml configuration file.
type Config struct {
	// Device is the target Tailscale peer name.
	Device string `yaml:"device"`

	// TargetPlatform is passed to flutter build --target-platform.
	TargetPlatform string `yaml:"target_platform"`

	// FlutterBin and TailscaleBin override PATH lookup when set.
	FlutterBin   string `yaml:"flutter_bin,omitempty"`
	TailscaleBin string `yaml:"tailscale_bin,omitempty"`

	// ConfirmSend asks before transferring (suppressed by --yes).
	ConfirmSend bool `yaml:"confirm_send,omitempty"`

	// Timeouts bound individual stages. Zero means no timeout.
	Timeouts TimeoutConfig `yaml:"timeouts,omitempty"`
}

// TimeoutConfig holds per-stage deadlines.
type TimeoutConfig struct {
	Build    Duration `yaml:"build,omitempty"`
	Transfer Duration `yaml:"transfer,omitempty"`
}

// Duration parses YAML strings like "90s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" || s == "0" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns a config with the built-in defaults applied.
func Default() *Config {
	return &Config{
		Device:         DefaultDevice,
		TargetPlatform: DefaultTargetPlatform,
	}
}

// Load reads .tailship.yaml from root. A missing file is not an error:
// defaults apply. Unknown keys are rejected so typos fail early.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.TargetPlatform == "" {
		cfg.TargetPlatform = DefaultTargetPlatform
	}

	return cfg, nil
}
