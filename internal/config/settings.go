// Package config reads the immutable per-run settings from task inputs and
// loads optional inputs and env files that seed those inputs for local runs.
package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Task input names.
const (
	InputVersionSpec                = "versionSpec"
	InputIncludePrerelease          = "includePrerelease"
	InputIgnoreFailedSources        = "ignoreFailedSources"
	InputPreferLatestVersion        = "preferLatestVersion"
	InputTargetPath                 = "targetPath"
	InputUseConfigFile              = "useConfigFile"
	InputConfigFilePath             = "configFilePath"
	InputUpdateAssemblyInfo         = "updateAssemblyInfo"
	InputUpdateAssemblyInfoFilename = "updateAssemblyInfoFilename"
	InputAdditionalArguments        = "additionalArguments"
	InputDisableCache               = "disableCache"
	InputDisableNormalization       = "disableNormalization"
	InputDisableShallowCloneCheck   = "disableShallowCloneCheck"
	InputOverrideConfig             = "overrideConfig"
)

// Inputs is the slice of the build agent settings are read from.
type Inputs interface {
	Input(name string, required bool) (string, error)
	BoolInput(name string, required bool) (bool, error)
	ListInput(name string, required bool) ([]string, error)
	SourceDir() string
}

// SetupSettings drives tool acquisition.
type SetupSettings struct {
	VersionSpec         string
	IncludePrerelease   bool
	IgnoreFailedSources bool
	PreferLatestVersion bool
}

// ExecuteSettings drives the tool invocation.
type ExecuteSettings struct {
	SourceDir                  string
	TargetPath                 string
	UseConfigFile              bool
	ConfigFilePath             string
	UpdateAssemblyInfo         bool
	UpdateAssemblyInfoFilename string
	AdditionalArguments        string
	DisableCache               bool
	DisableNormalization       bool
	DisableShallowCloneCheck   bool
	OverrideConfig             []string
}

// ReadSetupSettings reads SetupSettings. versionSpec is required.
func ReadSetupSettings(in Inputs) (SetupSettings, error) {
	r := &reader{in: in}
	settings := SetupSettings{
		VersionSpec:         r.str(InputVersionSpec, true),
		IncludePrerelease:   r.flag(InputIncludePrerelease),
		IgnoreFailedSources: r.flag(InputIgnoreFailedSources),
		PreferLatestVersion: r.flag(InputPreferLatestVersion),
	}
	if r.err != nil {
		return SetupSettings{}, r.err
	}
	return settings, nil
}

// ReadExecuteSettings reads ExecuteSettings. Every overrideConfig entry must
// have the form key=value.
func ReadExecuteSettings(in Inputs) (ExecuteSettings, error) {
	r := &reader{in: in}
	settings := ExecuteSettings{
		SourceDir:                  in.SourceDir(),
		TargetPath:                 r.str(InputTargetPath, false),
		UseConfigFile:              r.flag(InputUseConfigFile),
		ConfigFilePath:             r.str(InputConfigFilePath, false),
		UpdateAssemblyInfo:         r.flag(InputUpdateAssemblyInfo),
		UpdateAssemblyInfoFilename: r.str(InputUpdateAssemblyInfoFilename, false),
		AdditionalArguments:        r.str(InputAdditionalArguments, false),
		DisableCache:               r.flag(InputDisableCache),
		DisableNormalization:       r.flag(InputDisableNormalization),
		DisableShallowCloneCheck:   r.flag(InputDisableShallowCloneCheck),
		OverrideConfig:             r.list(InputOverrideConfig),
	}
	if r.err != nil {
		return ExecuteSettings{}, r.err
	}
	for _, entry := range settings.OverrideConfig {
		if key, _, ok := strings.Cut(entry, "="); !ok || strings.TrimSpace(key) == "" {
			return ExecuteSettings{}, fmt.Errorf(messages.ConfigInvalidOverrideFmt, entry)
		}
	}
	return settings, nil
}

// reader keeps the first input error so settings can be read field by field.
type reader struct {
	in  Inputs
	err error
}

func (r *reader) str(name string, required bool) string {
	if r.err != nil {
		return ""
	}
	value, err := r.in.Input(name, required)
	r.err = err
	return value
}

func (r *reader) flag(name string) bool {
	if r.err != nil {
		return false
	}
	value, err := r.in.BoolInput(name, false)
	r.err = err
	return value
}

func (r *reader) list(name string) []string {
	if r.err != nil {
		return nil
	}
	value, err := r.in.ListInput(name, false)
	r.err = err
	return value
}
