package messages

// Tool acquisition and execution messages.
const (
	// ExecutilNotFound is the sentinel text for missing executables.
	ExecutilNotFound       = "executable not found"
	ExecutilNotFoundFmt    = "%w: %s"
	ExecutilToolRequired   = "tool name is required"
	ExecutilResolvePathFmt = "resolve path %s: %w"

	// NugetCreateRequestErrFmt formats feed request creation errors.
	NugetCreateRequestErrFmt = "create feed request: %w"
	NugetQueryErrFmt         = "query feed for %s: %w"
	NugetQueryStatusFmt      = "query feed for %s: unexpected status %s"
	NugetDecodeErrFmt        = "decode feed response for %s: %w"
	NugetNoPackage           = "feed returned no package"

	// ResolveNoMatchFmt formats resolution failures.
	ResolveNoMatchFmt      = "unable to find %s version '%s'"
	ResolveNoMatchCauseFmt = "unable to find %s version '%s': %v"
	ResolveInvalidRangeFmt = "invalid version spec %q: %w"

	// ToolcacheMissingParameterFmt formats missing API parameters.
	ToolcacheMissingParameterFmt   = "%s is a required parameter"
	ToolcacheCacheDisabled         = "tool cache root is not set; caching disabled"
	ToolcacheRootRequired          = "tool cache root is not set"
	ToolcacheTempRootRequired      = "temp directory is not set"
	ToolcacheFoundDebugFmt         = "found tool in cache %s %s %s"
	ToolcacheNotFoundDebugFmt      = "tool %s %s %s not found in cache"
	ToolcacheCachingDebugFmt       = "caching tool %s %s %s from %s"
	ToolcacheCreateDirFmt          = "create directory %s: %w"
	ToolcacheCopyFmt               = "copy %s to %s: %w"
	ToolcacheReplaceFmt            = "replace cache entry %s: %w"
	ToolcacheInstallFailedFmt      = "failed to install %s %s: exit code %d"
	ToolcacheInstallingInfoFmt     = "Installing %s version %s"
	ToolcacheReadCacheDirDebugFmt  = "read cache dir %s: %v"
	ToolcacheOpenLockFmt           = "open lock %s: %w"
	ToolcacheLockFmt               = "lock %s: %w"
	ToolcacheLockTimeoutFmt        = "timed out waiting for lock after %s"
	ToolcacheCopyUnsupportedFmt    = "unsupported file type at %s"
	ToolcacheStaleStagingDebugFmt  = "removing stale staging directory %s"
	ToolcacheStaleStagingFailedFmt = "remove stale staging directory %s: %v"

	// GitversionDirNotFoundFmt formats missing working directories.
	GitversionDirNotFoundFmt          = "Directory not found at %s"
	GitversionConfigNotFoundFmt       = "GitVersion configuration file not found at %s"
	GitversionAssemblyInfoNotFoundFmt = "AssemblyInfoFilename file not found at %s"
	GitversionExecutionFailedFmt      = "GitVersion execution failed (exit code %d): %s"
	GitversionNonJSONOutput           = "GitVersion output is not valid JSON, see output details"
	GitversionParseFailedFmt          = "GitVersion output could not be parsed: %v"
	GitversionOutputFieldErrFmt       = "Unable to set output/variable for %s: %v"
	GitversionNullValue               = "value is null"
	GitversionStructuredValueFmt      = "value is a JSON %s"
	GitversionCommandDebugFmt         = "Command: %s %s"
	GitversionUnexpectedTokenFmt      = "unexpected token %v"
	GitversionExpectedDelimFmt        = "expected %q, got %v"
	GitversionTrailingContent         = "unexpected content after object"
)
