// Package config loads omnisharp-client settings from a TOML file and the
// environment and turns them into an identity request.
package config

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Runtime  RuntimeConfig  `toml:"runtime"`
	Download DownloadConfig `toml:"download"`
	Probe    ProbeConfig    `toml:"probe"`
}

// RuntimeConfig selects the server build.
type RuntimeConfig struct {
	Kind        string `toml:"kind,omitempty"`
	Version     string `toml:"version,omitempty"`
	Platform    string `toml:"platform,omitempty"`
	Arch        string `toml:"arch,omitempty"`
	InstallRoot string `toml:"install_root,omitempty"`
	ServerPath  string `toml:"server_path,omitempty"`
	Bootstrap   bool   `toml:"bootstrap,omitempty"`
}

// DownloadConfig controls where release archives come from.
type DownloadConfig struct {
	ReleaseBaseURL string `toml:"release_base_url,omitempty"`
}

// ProbeConfig tunes the runtime probe. A nil FallbackDirs keeps the defaults;
// an empty list disables them.
type ProbeConfig struct {
	FallbackDirs []string `toml:"fallback_dirs,omitempty"`
}
