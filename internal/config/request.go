package config

import (
	"github.com/conn-castle/omnisharp-client/internal/identity"
)

// Request converts the runtime settings into an identity request.
// Paths are expanded; unset fields stay empty so identity defaults apply.
func (c *Config) Request() (identity.Request, error) {
	kind, err := identity.ParseKind(c.Runtime.Kind)
	if err != nil {
		return identity.Request{}, err
	}
	root, err := ExpandPath(c.Runtime.InstallRoot)
	if err != nil {
		return identity.Request{}, err
	}
	serverPath, err := ExpandPath(c.Runtime.ServerPath)
	if err != nil {
		return identity.Request{}, err
	}
	return identity.Request{
		Kind:            kind,
		Platform:        c.Runtime.Platform,
		Arch:            c.Runtime.Arch,
		Version:         c.Runtime.Version,
		Bootstrap:       c.Runtime.Bootstrap,
		DestinationRoot: root,
		ServerPath:      serverPath,
	}, nil
}

// FallbackDirs returns the expanded probe fallback directories, or nil when
// the config does not set them.
func (c *Config) FallbackDirs() ([]string, error) {
	if c.Probe.FallbackDirs == nil {
		return nil, nil
	}
	dirs := make([]string, 0, len(c.Probe.FallbackDirs))
	for _, dir := range c.Probe.FallbackDirs {
		expanded, err := ExpandPath(dir)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, expanded)
	}
	return dirs, nil
}
