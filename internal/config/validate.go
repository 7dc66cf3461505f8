package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// Validate ensures the config values are usable. Empty fields are valid and
// fall back to defaults.
func (c *Config) Validate(path string) error {
	if _, err := identity.ParseKind(c.Runtime.Kind); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, "runtime.kind", c.Runtime.Kind, strings.Join(FieldOptionValues("runtime.kind"), ", "))
	}
	if err := validateEnum(path, "runtime.arch", c.Runtime.Arch); err != nil {
		return err
	}
	if err := validateEnum(path, "runtime.platform", c.Runtime.Platform); err != nil {
		return err
	}
	if c.Runtime.Version != "" && strings.TrimSpace(c.Runtime.Version) != c.Runtime.Version {
		return fmt.Errorf(messages.ConfigVersionWhitespaceFmt, path, c.Runtime.Version)
	}
	if raw := c.Download.ReleaseBaseURL; raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf(messages.ConfigReleaseURLInvalidFmt, path, raw)
		}
	}
	for i, dir := range c.Probe.FallbackDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf(messages.ConfigFallbackDirEmptyFmt, path, i)
		}
	}
	return nil
}

// validateEnum checks value against the catalog options for key.
// Empty values and fields that allow custom input always pass.
func validateEnum(path, key, value string) error {
	if value == "" {
		return nil
	}
	field, ok := LookupField(key)
	if !ok || field.AllowCustom {
		return nil
	}
	options := FieldOptionValues(key)
	if slices.Contains(options, value) {
		return nil
	}
	return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, key, value, strings.Join(options, ", "))
}
