package config

import "strings"

// Environment variables that override config values.
const (
	EnvServerPath = "OMNISHARP"
	EnvRuntimeDir = "OMNISHARP_RUNTIME_DIR"
	EnvVersion    = "OMNISHARP_VERSION"
)

// ApplyEnv overrides config values with non-blank environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvServerPath)); v != "" {
		c.Runtime.ServerPath = v
	}
	if v := strings.TrimSpace(getenv(EnvRuntimeDir)); v != "" {
		c.Runtime.InstallRoot = v
	}
	if v := strings.TrimSpace(getenv(EnvVersion)); v != "" {
		c.Runtime.Version = v
	}
}
