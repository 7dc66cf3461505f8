// Package identity derives the stable id, install path and launch command of
// an OmniSharp server build from the requested runtime kind, platform and
// architecture.
package identity

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultServerVersion is the server release used when a request names none.
const DefaultServerVersion = "v1.39.11"

const (
	// PlatformWindows is the platform string for Windows hosts.
	PlatformWindows = "win32"
	// PlatformDarwin is the platform string for macOS hosts.
	PlatformDarwin = "darwin"

	// ArchX86 and ArchX64 are the only architectures a build is published for.
	ArchX86 = "x86"
	ArchX64 = "x64"

	// ExecutableWindows and ExecutableUnix are the server entry point names.
	ExecutableWindows = "OmniSharp.exe"
	ExecutableUnix    = "OmniSharp"

	// Interpreter runs the Mono-compatible build on non-Windows hosts.
	Interpreter = "mono"

	idPrefix = "omnisharp-"
	monoKey  = "linux-mono"
)

var (
	goos                   = runtime.GOOS
	goarch                 = runtime.GOARCH
	userCacheDir           = os.UserCacheDir
	defaultDestinationName = "omnisharp-client"
)

// Request describes which server build the host wants.
type Request struct {
	Kind            Kind
	Platform        string
	Arch            string
	Version         string
	Bootstrap       bool
	DestinationRoot string
	// ServerPath overrides the computed executable path (OMNISHARP).
	ServerPath string
}

// WithDefaults returns a copy of r with host platform, host arch, the default
// version and the default destination root filled in, and Arch normalized.
func (r Request) WithDefaults() Request {
	out := r
	if strings.TrimSpace(out.Platform) == "" {
		out.Platform = HostPlatform()
	}
	if strings.TrimSpace(out.Arch) == "" {
		out.Arch = HostArch()
	}
	out.Arch = NormalizeArch(out.Arch)
	if strings.TrimSpace(out.Version) == "" {
		out.Version = DefaultServerVersion
	}
	if strings.TrimSpace(out.DestinationRoot) == "" {
		out.DestinationRoot = DefaultDestinationRoot()
	}
	return out
}

// HostPlatform maps runtime.GOOS to the platform vocabulary used in build ids.
func HostPlatform() string {
	if goos == "windows" {
		return PlatformWindows
	}
	return goos
}

// HostArch maps runtime.GOARCH to x86 or x64.
func HostArch() string {
	if goarch == "386" {
		return ArchX86
	}
	return ArchX64
}

// NormalizeArch keeps "x86" and turns everything else into "x64".
func NormalizeArch(arch string) string {
	if arch == ArchX86 {
		return ArchX86
	}
	return ArchX64
}

// DefaultDestinationRoot is the directory that holds downloaded builds.
func DefaultDestinationRoot() string {
	base, err := userCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, defaultDestinationName)
}
