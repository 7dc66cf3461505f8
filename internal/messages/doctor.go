package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the config, installed server build and host runtime"

	DoctorHealthCheckFmt = "🏥 Checking OmniSharp runtime health using %s...\n"

	DoctorCheckNameConfig     = "Config"
	DoctorCheckNameIdentity   = "Build"
	DoctorCheckNameMarker     = "Marker"
	DoctorCheckNameExecutable = "Executable"
	DoctorCheckNameOverride   = "Override"
	DoctorCheckNameRuntime    = "Runtime"

	DoctorConfigMissingFmt       = "No config file at %s; using defaults"
	DoctorConfigLoadedFmt        = "Configuration loaded from %s"
	DoctorConfigFailedFmt        = "Failed to load configuration: %v"
	DoctorConfigRequestFailedFmt = "Configuration cannot be resolved: %v"
	DoctorConfigRecommend        = "Fix config.toml (run `omnisharp-runtime config --fields` to list supported keys)."

	DoctorUnknownKeysEditFmt   = "Edit %s and remove or rename the keys below."
	DoctorUnknownKeysDetected  = "Unrecognized keys:"
	DoctorUnknownKeyAllowedFmt = "%s (allowed: %s)"
	DoctorUnknownKeySuggestFmt = "%s; did you mean %s?"

	DoctorIdentityFmt = "%s %s at %s"

	DoctorMarkerCurrentFmt    = "Version marker matches %s"
	DoctorMarkerMissingFmt    = "No version marker in %s"
	DoctorMarkerStaleFmt      = "Installed version %s differs from configured %s"
	DoctorMarkerReadFailedFmt = "Failed to read version marker: %v"
	DoctorInstallRecommend    = "Run `omnisharp-runtime ensure` to install the configured build."

	DoctorExecutableFoundFmt         = "Server executable: %s"
	DoctorExecutableMissingFmt       = "No server executable under %s"
	DoctorExecutableCorruptFmt       = "Version marker is current but %s has no server executable"
	DoctorExecutableCorruptRecommend = "Run `omnisharp-runtime clean --yes` and then `omnisharp-runtime ensure`."
	DoctorExecutableScanFailedFmt    = "Failed to scan install root: %v"

	DoctorOverrideFoundFmt   = "Using server override %s"
	DoctorOverrideMissingFmt = "Server override %s does not exist"
	DoctorOverrideRecommend  = "Point OMNISHARP or runtime.server_path at an existing server executable, or unset it."

	DoctorRuntimeOKFmt             = "Host supports %s"
	DoctorRuntimeDegradedFmt       = "%s requested but only %s is usable on this host"
	DoctorRuntimeDegradedRecommend = "Install mono or set runtime.kind = \"coreclr\"."
	DoctorRuntimeFailedFmt         = "Runtime probe failed: %v"

	DoctorFailureSummary = "❌ Some checks failed. Please address the items above."
	DoctorSuccessSummary = "✅ All checks passed."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)
