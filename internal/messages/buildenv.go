package messages

// Build agent messages.
const (
	// BuildenvUnknownAgentFmt formats unknown build agent names.
	BuildenvUnknownAgentFmt      = "unknown build agent %q; expected one of: %s"
	BuildenvMissingInputFmt      = "input required and not supplied: %s"
	BuildenvRemoveDirFailedFmt   = "remove %s: %w"
	BuildenvSetVariableDebugFmt  = "set variable %s"
	BuildenvSetOutputDebugFmt    = "setOutput - %s - %s"
	BuildenvAddPathDebugFmt      = "prepend path %s"
	BuildenvExecDebugFmt         = "exec %s %v"
	BuildenvSucceededFmt         = "setSucceeded - %s - %t"
	BuildenvFailedFmt            = "setFailed - %s - %t"
	BuildenvRemoveRetryFmt       = "remove %s failed (attempt %d): %v; retrying"
	BuildenvFileCommandFailedFmt = "write %s file command: %v"

	// EnvvarsSetFailedFmt formats process variable write failures.
	EnvvarsSetFailedFmt = "set %s: %w"
)
