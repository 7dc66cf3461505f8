package messages

// Config messages.
const (
	ConfigReadFmt              = "failed to read config %s: %w"
	ConfigInvalidConfigFmt     = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt  = "config %s has unrecognized keys: %v"
	ConfigEncodeFmt            = "failed to encode config: %w"
	ConfigUserConfigDirFmt     = "failed to resolve user config directory: %w"
	ConfigExpandPathFmt        = "failed to expand path %s: %w"
	ConfigFieldInvalidFmt      = "config %s: %s = %q is invalid (options: %s)"
	ConfigVersionWhitespaceFmt = "config %s: runtime.version %q has surrounding whitespace"
	ConfigReleaseURLInvalidFmt = "config %s: download.release_base_url %q must be an absolute http or https URL"
	ConfigFallbackDirEmptyFmt  = "config %s: probe.fallback_dirs[%d] is empty"

	ConfigFieldKindDescription         = "Runtime family to install. The default picks Mono on Linux and macOS."
	ConfigKindClrOrMonoDescription     = "Full framework build (desktop CLR on Windows, Mono elsewhere)"
	ConfigKindCoreClrDescription       = "Self-contained CoreCLR build"
	ConfigFieldVersionDescription      = "Server release tag to install, e.g. v1.39.11."
	ConfigFieldPlatformDescription     = "Target platform. Defaults to the host."
	ConfigFieldArchDescription         = "Target architecture. Defaults to the host."
	ConfigFieldInstallRootDescription  = "Directory that holds installed builds. Defaults to the user cache dir."
	ConfigFieldServerPathDescription   = "Absolute path of a server executable to launch instead of the managed install."
	ConfigFieldBootstrapDescription    = "Also install the bootstrap package before the server."
	ConfigFieldReleaseURLDescription   = "Base URL of the release download page."
	ConfigFieldFallbackDirsDescription = "Extra directories searched for mono when it is not on PATH."
)
