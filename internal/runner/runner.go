// Package runner sequences the setup and execute commands against a build
// agent.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/buildenv"
	"github.com/conn-castle/gittools-runner/internal/config"
	"github.com/conn-castle/gittools-runner/internal/gitversion"
	"github.com/conn-castle/gittools-runner/internal/messages"
	"github.com/conn-castle/gittools-runner/internal/nuget"
	"github.com/conn-castle/gittools-runner/internal/resolve"
	"github.com/conn-castle/gittools-runner/internal/toolcache"
)

// Commands accepted by Run.
const (
	CommandSetup   = "setup"
	CommandExecute = "execute"
)

// Commands returns the supported command names.
func Commands() []string {
	return []string{CommandSetup, CommandExecute}
}

// ReportedError wraps a failure that has already been reported to the build
// agent through SetFailed.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Runner drives GitVersion through a build agent.
type Runner struct {
	Agent buildenv.BuildAgent
	// Feed lists published tool versions. Defaults to the NuGet feed.
	Feed resolve.FeedFunc
}

// New returns a Runner for agent backed by the NuGet feed.
func New(agent buildenv.BuildAgent) *Runner {
	return &Runner{Agent: agent, Feed: nuget.Versions}
}

// Run executes the named command.
func (r *Runner) Run(ctx context.Context, command string) error {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case CommandSetup:
		return r.Setup(ctx)
	case CommandExecute:
		return r.Execute(ctx)
	default:
		return fmt.Errorf(messages.RunnerUnknownCommandFmt, command, strings.Join(Commands(), ", "))
	}
}

// Setup makes the requested GitVersion version available on PATH, reusing a
// cached install when possible.
func (r *Runner) Setup(ctx context.Context) error {
	r.disableTelemetry()

	settings, err := config.ReadSetupSettings(r.Agent)
	if err != nil {
		return r.fail(err)
	}
	r.Agent.Debug(fmt.Sprintf(messages.RunnerSettingsDebugFmt, CommandSetup, settings))

	toolPath, err := r.acquire(ctx, settings)
	if err != nil {
		return r.fail(err)
	}

	r.Agent.Info(fmt.Sprintf(messages.RunnerAddPathInfoFmt, toolPath))
	r.Agent.AddPath(toolPath)
	r.Agent.SetSucceeded(messages.RunnerSetupSucceeded, true)
	return nil
}

func (r *Runner) acquire(ctx context.Context, settings config.SetupSettings) (string, error) {
	if !settings.PreferLatestVersion {
		path, found, err := toolcache.FindLocal(r.Agent, gitversion.ToolName, settings.VersionSpec, "")
		if err != nil {
			return "", err
		}
		if found {
			r.Agent.Debug(fmt.Sprintf(messages.RunnerCachedDebugFmt, gitversion.ToolName, path))
			return path, nil
		}
	}

	feed := r.Feed
	if feed == nil {
		feed = nuget.Versions
	}
	version, err := resolve.Resolve(ctx, feed, gitversion.ToolName, settings.VersionSpec, settings.IncludePrerelease)
	if err != nil {
		return "", err
	}
	r.Agent.Debug(fmt.Sprintf(messages.RunnerResolvedDebugFmt, gitversion.ToolName, version, settings.VersionSpec))

	path, found, err := toolcache.FindLocal(r.Agent, gitversion.ToolName, version, "")
	if err != nil {
		return "", err
	}
	if found {
		r.Agent.Debug(fmt.Sprintf(messages.RunnerCachedDebugFmt, gitversion.ToolName, path))
		return path, nil
	}
	return toolcache.Install(ctx, r.Agent, gitversion.ToolName, version, settings.IgnoreFailedSources)
}

// Execute runs the installed GitVersion against the source directory and
// publishes its variables. A missing executable is returned without being
// reported, since setup has not run.
func (r *Runner) Execute(ctx context.Context) error {
	r.disableTelemetry()

	toolPath, err := r.Agent.Which(gitversion.Executable, true)
	if err != nil {
		return fmt.Errorf(messages.RunnerToolNotFoundFmt, gitversion.Executable, err)
	}
	r.Agent.Debug(fmt.Sprintf(messages.RunnerToolPathDebugFmt, toolPath))

	settings, err := config.ReadExecuteSettings(r.Agent)
	if err != nil {
		return r.fail(err)
	}
	r.Agent.Debug(fmt.Sprintf(messages.RunnerSettingsDebugFmt, CommandExecute, settings))

	args, err := gitversion.Args(r.Agent, settings)
	if err != nil {
		return r.fail(err)
	}
	r.Agent.Debug(fmt.Sprintf(messages.GitversionCommandDebugFmt, toolPath, strings.Join(args, " ")))

	result := r.Agent.Exec(ctx, toolPath, args)
	if out := strings.TrimRight(result.Stdout, "\r\n"); out != "" {
		r.Agent.Info(out)
	}
	if result.Code != 0 {
		return r.fail(&gitversion.ExecutionError{Code: result.Code, Message: result.Message()})
	}

	fields, err := gitversion.ParseOutput(result.Stdout)
	if err != nil {
		return r.fail(err)
	}
	gitversion.Publish(r.Agent, fields)
	r.Agent.SetSucceeded(messages.RunnerExecuteSucceeded, true)
	return nil
}

func (r *Runner) disableTelemetry() {
	r.Agent.Debug(messages.RunnerDisableTelemetryDbg)
	r.Agent.SetVariable("DOTNET_CLI_TELEMETRY_OPTOUT", "true")
	r.Agent.SetVariable("DOTNET_NOLOGO", "true")
}

// fail reports err through the agent. Missing API parameters are caller
// bugs and are returned unreported.
func (r *Runner) fail(err error) error {
	var missing *toolcache.MissingParameterError
	if errors.As(err, &missing) {
		return err
	}
	r.Agent.SetFailed(err.Error(), true)
	return &ReportedError{Err: err}
}
