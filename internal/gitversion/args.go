package gitversion

import (
	"fmt"
	"path/filepath"

	"github.com/conn-castle/gittools-runner/internal/argv"
	"github.com/conn-castle/gittools-runner/internal/config"
	"github.com/conn-castle/gittools-runner/internal/messages"
)

// FileChecker tests for files and directories.
type FileChecker interface {
	FileExists(path string) bool
	DirExists(path string) bool
}

// WorkDir returns the directory GitVersion runs against: the source
// directory, or targetPath beneath it, which must exist.
func WorkDir(fs FileChecker, settings config.ExecuteSettings) (string, error) {
	if settings.TargetPath == "" {
		return settings.SourceDir, nil
	}
	dir := filepath.Join(settings.SourceDir, settings.TargetPath)
	if !fs.DirExists(dir) {
		return "", fmt.Errorf(messages.GitversionDirNotFoundFmt, dir)
	}
	return dir, nil
}

// Args returns the GitVersion argument vector for settings:
//
//	<workDir> /output json /output buildserver [/config <file>]
//	[/updateassemblyinfo [<file>]] [/nocache] [/nonormalize] [/allowshallow]
//	[/overrideconfig <key=value>]... <additional arguments>
//
// Config and assembly info files are resolved against the work directory and
// must exist.
func Args(fs FileChecker, settings config.ExecuteSettings) ([]string, error) {
	workDir, err := WorkDir(fs, settings)
	if err != nil {
		return nil, err
	}
	args := []string{workDir, "/output", "json", "/output", "buildserver"}

	if settings.UseConfigFile {
		configFile := filepath.Join(workDir, settings.ConfigFilePath)
		if settings.ConfigFilePath == "" || !fs.FileExists(configFile) {
			return nil, fmt.Errorf(messages.GitversionConfigNotFoundFmt, configFile)
		}
		args = append(args, "/config", configFile)
	}

	if settings.UpdateAssemblyInfo {
		args = append(args, "/updateassemblyinfo")
		if settings.UpdateAssemblyInfoFilename != "" {
			file := filepath.Join(workDir, settings.UpdateAssemblyInfoFilename)
			if !fs.FileExists(file) {
				return nil, fmt.Errorf(messages.GitversionAssemblyInfoNotFoundFmt, file)
			}
			args = append(args, file)
		}
	}

	if settings.DisableCache {
		args = append(args, "/nocache")
	}
	if settings.DisableNormalization {
		args = append(args, "/nonormalize")
	}
	if settings.DisableShallowCloneCheck {
		args = append(args, "/allowshallow")
	}
	for _, entry := range settings.OverrideConfig {
		args = append(args, "/overrideconfig", entry)
	}

	return append(args, argv.Split(settings.AdditionalArguments)...), nil
}
