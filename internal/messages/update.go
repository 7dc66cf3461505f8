package messages

// Update check messages.
const (
	// UpdateCreateRequestErrFmt formats request creation errors.
	UpdateCreateRequestErrFmt         = "create latest release request: %w"
	UpdateFetchLatestReleaseErrFmt    = "fetch latest release: %w"
	UpdateFetchLatestReleaseStatusFmt = "fetch latest release: unexpected status %s"
	UpdateDecodeLatestReleaseErrFmt   = "decode latest release: %w"
	UpdateLatestReleaseMissingTag     = "latest release missing tag_name"
	UpdateInvalidLatestReleaseTagFmt  = "invalid latest release tag %q: %w"
	UpdateInvalidInstalledVersionFmt  = "invalid installed version %q: %w"
	UpdateRateLimitFmt                = "github api rate limit exceeded (%s, remaining=%s)"

	UpdateWarnCheckFailedFmt = "Warning: failed to check for server updates: %v\n"
	UpdateWarnAvailableFmt   = "Warning: server update available: %s (installed %s)\n"
)
