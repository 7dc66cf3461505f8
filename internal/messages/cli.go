// Package messages holds every user-facing string and error format.
package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "omnisharp-runtime"
	// RootShort is the short description for the root command.
	RootShort       = "Install, locate and launch OmniSharp server builds"
	RootFlagConfig  = "Path to config.toml (default: user config dir)"
	RootFlagVerbose = "Log debug details to stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	EnsureUse             = "ensure"
	EnsureShort           = "Download the server build this host can run unless it is already installed"
	EnsureFlagMetricsFile = "Write acquisition metrics to this file in Prometheus text format"
	EnsurePresentFmt      = "%s is installed at %s\n"
	EnsureDownloadedFmt   = "Installed %s into %s\n"
	EnsureWriteMetricsFmt = "failed to write metrics file %s: %w"

	DownloadUse   = "download"
	DownloadShort = "Download and extract the server build this host can run, overwriting files in place"

	FindUse         = "find"
	FindShort       = "Print the path of the installed server executable"
	FindFlagRoot    = "Directory to search instead of the install root"
	FindNotFoundFmt = "%s is not installed under %s"

	ProbeUse        = "probe"
	ProbeShort      = "Report which runtime this host can use to run the server"
	ProbeRuntimeFmt = "runtime: %s\n"
	ProbeIDFmt      = "build:   %s\n"
	ProbeLaunchFmt  = "launch:  %s\n"
	ProbePathFmt    = "path:    %s\n"

	LaunchUse        = "launch <project> [-- server args...]"
	LaunchShort      = "Install the server if needed and run it over stdio for a project"
	LaunchFlagDryRun = "Print the server command line without installing or running it"

	CleanUse                  = "clean"
	CleanShort                = "Remove the installed server build"
	CleanFlagYes              = "Remove without asking for confirmation"
	CleanFlagAll              = "Remove every build under the install root"
	CleanConfirmFmt           = "Remove %s?"
	CleanRequiresConfirmation = "clean requires confirmation; run in an interactive terminal or pass --yes"
	CleanCanceled             = "Nothing removed."
	CleanNothingFmt           = "Nothing to remove at %s\n"
	CleanRemovedFmt           = "Removed %s\n"
	CleanRemoveFmt            = "failed to remove %s: %w"

	CheckUpdateUse             = "check-update"
	CheckUpdateShort           = "Compare the installed server build with the latest release"
	CheckUpdateNotInstalledFmt = "No server build installed; latest release is %s\n"
	CheckUpdateAvailableFmt    = "Update available: %s (installed %s). Set runtime.version or %s to use it.\n"
	CheckUpdateCurrentFmt      = "Installed server build %s is up to date\n"

	ConfigUse             = "config"
	ConfigShort           = "Print the effective configuration"
	ConfigFlagFields      = "List the supported config fields instead"
	ConfigFlagDiff        = "Show how environment variables change the file config"

	ConfigDiffEffectiveLabel = "effective"
	ConfigDiffNoOverrides    = "No environment overrides apply."
	ConfigFieldLineFmt    = "%s (%s)\n    %s\n"
	ConfigFieldEnvFmt     = "    env: %s\n"
	ConfigFieldOptionsFmt = "    options: %s\n"
)

// ProgressBytesFmt renders a download with no known size.
const ProgressBytesFmt = "downloaded %d bytes\n"
