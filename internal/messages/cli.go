package messages

// CLI messages for the gittools entry point.
const (
	// RootUse is the CLI command name.
	RootUse = "gittools"
	// RootShort is the short description for the root command.
	RootShort       = "Install and run GitVersion on CI build agents"
	RootLong        = "Install GitVersion into the agent's tool cache (setup) or run it against the source directory and publish its variables (execute)."
	RootVersionFlag = "Print version and exit"

	// FlagCommandUsage describes --command.
	FlagCommandUsage    = "Command to run (setup or execute)"
	FlagBuildAgentUsage = "Build agent that hosts the run (azure, github, or local)"
	FlagInputsUsage     = "TOML file of task inputs and environment variables applied before the run"
	FlagEnvFileUsage    = "Env file of variables applied before the run"
	FlagNoColorUsage    = "Disable coloured output for the local agent"

	CLICommandRequired = "--command is required"
	CLISeededDebugFmt  = "Applied %d variables from %s"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
)
