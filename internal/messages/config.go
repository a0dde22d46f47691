package messages

// Settings, inputs file, and env file messages.
const (
	// ConfigReadFileFmt formats inputs file read errors.
	ConfigReadFileFmt         = "read inputs file %s: %w"
	ConfigInvalidFileFmt      = "invalid inputs file %s: %w"
	ConfigUnrecognizedKeysFmt = "inputs file %s has unrecognized keys: %w"
	ConfigUnsupportedValueFmt = "inputs file %s: %s.%s has unsupported value type %T"
	ConfigSeedVariableFmt     = "seed variable %s: %w"
	ConfigReadEnvFileFmt      = "read env file %s: %w"
	ConfigInvalidEnvFileFmt   = "invalid env file %s: %w"
	ConfigInvalidOverrideFmt  = "overrideConfig entry %q must have the form key=value"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"
)
