package identity

import (
	"fmt"
	"path/filepath"
)

// LaunchCommand is the process invocation for a resolved build.
// Interpreter is empty when the executable runs directly.
type LaunchCommand struct {
	Interpreter string
	Executable  string
}

// String renders the command as a single line, e.g. "mono /path/OmniSharp.exe".
func (c LaunchCommand) String() string {
	if c.Interpreter == "" {
		return c.Executable
	}
	return c.Interpreter + " " + c.Executable
}

// Identity is the resolved, immutable description of one server build variant.
// Construct it with Resolve; the zero value is not meaningful.
type Identity struct {
	kind            Kind
	platform        string
	arch            string
	version         string
	bootstrap       bool
	destinationRoot string

	osName      string
	key         string
	id          string
	installPath string
	launch      LaunchCommand
}

// Resolve derives the Identity for req after applying defaults. It never
// fails and does no I/O. An empty DestinationRoot defaults to a directory
// under the user cache dir, which depends on the host environment; callers
// that need the same result on every host pass an explicit root.
func Resolve(req Request) Identity {
	req = req.WithDefaults()
	osName := osNameFor(req.Platform)
	key := idKey(req.Kind, req.Platform, osName, req.Arch)
	id := idPrefix + key
	installPath := filepath.Join(req.DestinationRoot, id)

	return Identity{
		kind:            req.Kind,
		platform:        req.Platform,
		arch:            req.Arch,
		version:         req.Version,
		bootstrap:       req.Bootstrap,
		destinationRoot: req.DestinationRoot,
		osName:          osName,
		key:             key,
		id:              id,
		installPath:     installPath,
		launch:          launchFor(req, installPath),
	}
}

func osNameFor(platform string) string {
	switch platform {
	case PlatformWindows:
		return "win"
	case PlatformDarwin:
		return "osx"
	default:
		return platform
	}
}

// idKey builds the build key. Non-Windows Mono builds collapse to "linux-mono"
// on every platform; existing installs depend on that directory name.
func idKey(kind Kind, platform, osName, arch string) string {
	if platform != PlatformWindows && kind == ClrOrMono {
		return monoKey
	}
	tag := "dnxcore50"
	if kind == ClrOrMono {
		tag = "dnx451"
	}
	return fmt.Sprintf("%s-%s-%s", osName, arch, tag)
}

func executableName(kind Kind, platform string) string {
	if platform == PlatformWindows || kind == ClrOrMono {
		return ExecutableWindows
	}
	return ExecutableUnix
}

func launchFor(req Request, installPath string) LaunchCommand {
	path := req.ServerPath
	if path == "" {
		path = filepath.Join(installPath, executableName(req.Kind, req.Platform))
	}
	cmd := LaunchCommand{Executable: path}
	if req.Platform != PlatformWindows && req.Kind == ClrOrMono {
		cmd.Interpreter = Interpreter
	}
	return cmd
}

// Kind returns the requested runtime kind.
func (i Identity) Kind() Kind { return i.kind }

// Platform returns the platform the build targets.
func (i Identity) Platform() string { return i.platform }

// Arch returns the normalized architecture.
func (i Identity) Arch() string { return i.arch }

// Version returns the desired server version.
func (i Identity) Version() string { return i.version }

// Bootstrap reports whether the bootstrap artifact is requested.
func (i Identity) Bootstrap() bool { return i.bootstrap }

// DestinationRoot returns the directory holding all installed builds.
func (i Identity) DestinationRoot() string { return i.destinationRoot }

// OSName returns the short OS segment of the key ("win", "osx", ...).
func (i Identity) OSName() string { return i.osName }

// Key returns the build key, e.g. "win-x64-dnx451" or "linux-mono".
func (i Identity) Key() string { return i.key }

// ID returns "omnisharp-" + Key.
func (i Identity) ID() string { return i.id }

// InstallPath returns DestinationRoot/ID.
func (i Identity) InstallPath() string { return i.installPath }

// Launch returns the command that starts the server.
func (i Identity) Launch() LaunchCommand { return i.launch }

// IsWindows reports whether the build targets Windows.
func (i Identity) IsWindows() bool { return i.platform == PlatformWindows }

// ArchiveName returns the release asset file name for artifact name.
func (i Identity) ArchiveName(name string) string {
	ext := "tar.gz"
	if i.IsWindows() {
		ext = "zip"
	}
	return fmt.Sprintf("%s-%s.%s", name, i.key, ext)
}

// ProbeKey identifies equivalent identities for runtime probing.
func (i Identity) ProbeKey() string {
	return fmt.Sprintf("%s-%s:%s:%s", i.arch, i.platform, i.kind, i.version)
}
