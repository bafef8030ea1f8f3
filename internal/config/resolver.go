package config

import "os"

// DeviceEnvVar overrides the configured device; a .env file in the project
// root is honored (loaded by the command layer) before this is read.
const DeviceEnvVar = "TAILSHIP_DEVICE"

// ResolveDevice applies the precedence flag > env > config file > default.
func ResolveDevice(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(DeviceEnvVar); env != "" {
		return env
	}
	if cfg != nil && cfg.Device != "" {
		return cfg.Device
	}
	return DefaultDevice
}
