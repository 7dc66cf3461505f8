package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// AppDirName is the directory used under the user config and cache dirs.
const AppDirName = "omnisharp-client"

// FileName is the config file name.
const FileName = "config.toml"

var (
	userConfigDir = os.UserConfigDir
	expandHome    = homedir.Expand
)

// DefaultPath returns <user config dir>/omnisharp-client/config.toml.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigUserConfigDirFmt, err)
	}
	return filepath.Join(dir, AppDirName, FileName), nil
}

// ExpandPath expands a leading ~ and cleans path. Empty stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := expandHome(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return filepath.Clean(expanded), nil
}
