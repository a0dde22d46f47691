package messages

// Runner messages.
const (
	// RunnerUnknownCommandFmt formats unsupported runner commands.
	RunnerUnknownCommandFmt   = "unknown command %q; expected one of: %s"
	RunnerToolNotFoundFmt     = "%s is not installed; run the setup command first: %w"
	RunnerSetupSucceeded      = "GitVersion installed successfully"
	RunnerExecuteSucceeded    = "GitVersion executed successfully"
	RunnerToolPathDebugFmt    = "Tool path: %s"
	RunnerResolvedDebugFmt    = "Resolved %s version %s from spec %s"
	RunnerCachedDebugFmt      = "Using cached %s at %s"
	RunnerAddPathInfoFmt      = "Prepending %s to PATH"
	RunnerSettingsDebugFmt    = "%s settings: %+v"
	RunnerDisableTelemetryDbg = "Disabling dotnet telemetry"
)
