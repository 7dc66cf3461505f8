package messages

// UserAgent is sent with every outbound HTTP request.
const UserAgent = "omnisharp-client"

// Identity and probe messages.
const (
	IdentityUnknownKindFmt = "unknown runtime kind %q (want clrormono or coreclr)"

	ProbeResultLog = "runtime probe finished"
)

// Install marker messages.
const (
	MarkerOpRead       = "read version marker"
	MarkerOpRemove     = "remove stale install"
	MarkerOpCreate     = "create install directory"
	MarkerOpWrite      = "write version marker"
	MarkerResetLog     = "resetting install directory for new server version"
	MarkerMissing      = "not installed"
	MarkerInstalledFmt = "installed %s"
)

// Download and extraction messages.
const (
	FetchOpRequest           = "build request"
	FetchOpGet               = "download"
	FetchOpCreate            = "create"
	FetchOpWrite             = "write"
	FetchOpStream            = "read response from"
	FetchUnexpectedStatusFmt = "unexpected status %s"
	FetchStartLog            = "downloading"
	FetchFinishedLog         = "download finished"

	ExtractOpMkdir        = "create directory"
	ExtractOpOpen         = "open archive"
	ExtractOpRead         = "read archive"
	ExtractOpEntry        = "archive entry"
	ExtractOpCreate       = "create file"
	ExtractOpCopy         = "extract file"
	ExtractOpChmod        = "chmod"
	ExtractOpSymlink      = "create symlink"
	ExtractUnsafeEntryFmt = "entry %q escapes the destination directory"
	ExtractUnsafeLinkFmt  = "symlink target %q escapes the destination directory"
	ExtractEmptyEntry     = "archive entry has an empty name"
	ExtractStartLog       = "extracting"
	ExtractFinishedLog    = "extraction finished"
)

// Acquisition messages.
const (
	AcquireNoNetwork        = "network access disabled"
	AcquireNoNetworkFmt     = "%w: %s is not installed and %s is set"
	AcquireCreateRootFmt    = "failed to create install root %s: %w"
	AcquireOpScan           = "scan install root"
	AcquireOpenLockFmt      = "failed to open lock file %s: %w"
	AcquireLockFmt          = "failed to lock %s: %w"
	AcquireLockTimeoutFmt   = "timed out after %s waiting for another install to finish"
	AcquirePresentLog       = "server build already installed"
	AcquireMkdirIgnoredLog  = "could not create install directory; continuing"
	AcquireRemoveArchiveLog = "could not remove downloaded archive"
	AcquireDownloadLog      = "fetching release asset"
	AcquireInstalledLog     = "release asset installed"
)
