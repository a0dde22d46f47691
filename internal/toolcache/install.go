package toolcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// InstallError reports a failed `dotnet tool install`. Its message is the
// installer's captured output.
type InstallError struct {
	Tool    string
	Version string
	Code    int
	Output  string
}

func (e *InstallError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return fmt.Sprintf(messages.ToolcacheInstallFailedFmt, e.Tool, e.Version, e.Code)
}

// InstallArgs returns the dotnet arguments that install tool at version into dir.
func InstallArgs(tool string, version string, dir string, ignoreFailedSources bool) []string {
	args := []string{"tool", "install", tool, "--tool-path", dir, "--version", version}
	if ignoreFailedSources {
		args = append(args, "--ignore-failed-sources")
	}
	return args
}

// Install installs tool at the exact version into a fresh temporary
// directory and promotes it into the cache. It returns the cache entry path.
func Install(ctx context.Context, env Environment, tool string, version string, ignoreFailedSources bool) (string, error) {
	if tool == "" {
		return "", &MissingParameterError{Name: "toolName"}
	}
	if version == "" {
		return "", &MissingParameterError{Name: "version"}
	}
	tempRoot := env.TempDir()
	if tempRoot == "" {
		return "", errors.New(messages.ToolcacheTempRootRequired)
	}
	dir := filepath.Join(tempRoot, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ToolcacheCreateDirFmt, dir, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	env.Info(fmt.Sprintf(messages.ToolcacheInstallingInfoFmt, tool, version))
	result := env.Exec(ctx, "dotnet", InstallArgs(tool, version, dir, ignoreFailedSources))
	if result.Code != 0 || result.Err != nil {
		return "", &InstallError{Tool: tool, Version: version, Code: result.Code, Output: result.Message()}
	}
	return Cache(env, dir, tool, version, "")
}
