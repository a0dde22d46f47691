package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/gittools-runner/internal/buildenv"
	"github.com/conn-castle/gittools-runner/internal/config"
	"github.com/conn-castle/gittools-runner/internal/envvars"
	"github.com/conn-castle/gittools-runner/internal/messages"
	"github.com/conn-castle/gittools-runner/internal/nuget"
	"github.com/conn-castle/gittools-runner/internal/runner"
	"github.com/conn-castle/gittools-runner/internal/terminal"
)

var (
	newStore = func() envvars.Store { return envvars.OS{} }
	feedFunc = nuget.Versions
	colorFor = terminal.ColorEnabled
)

type rootOptions struct {
	command    string
	buildAgent string
	inputsFile string
	envFile    string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.command, "command", "", messages.FlagCommandUsage)
	flags.StringVar(&opts.buildAgent, "buildAgent", buildenv.AgentLocal, messages.FlagBuildAgentUsage)
	flags.StringVar(&opts.inputsFile, "inputs", "", messages.FlagInputsUsage)
	flags.StringVar(&opts.envFile, "env-file", "", messages.FlagEnvFileUsage)
	flags.BoolVar(&opts.noColor, "no-color", false, messages.FlagNoColorUsage)
	flags.Bool("version", false, messages.RootVersionFlag)
	return cmd
}

type seedSource struct {
	path  string
	count int
}

// run applies the optional inputs and env files to the variable store, then
// runs the command on the selected agent. Variables already present in the
// store take precedence over both files; the inputs file wins over the env
// file.
func run(ctx context.Context, opts rootOptions, stdout io.Writer) error {
	if strings.TrimSpace(opts.command) == "" {
		return errors.New(messages.CLICommandRequired)
	}
	store := newStore()
	seeded, err := seedStore(store, opts)
	if err != nil {
		return err
	}

	agent, err := buildenv.New(opts.buildAgent, buildenv.Options{
		Vars:   store,
		Stdout: stdout,
		Color:  !opts.noColor && colorFor(stdout, store.Get),
	})
	if err != nil {
		return err
	}
	for _, source := range seeded {
		agent.Debug(fmt.Sprintf(messages.CLISeededDebugFmt, source.count, source.path))
	}

	r := runner.New(agent)
	r.Feed = feedFunc
	if err := r.Run(ctx, opts.command); err != nil {
		var reported *runner.ReportedError
		if errors.As(err, &reported) {
			return &SilentExitError{Code: 1}
		}
		return err
	}
	return nil
}

func seedStore(store envvars.Store, opts rootOptions) ([]seedSource, error) {
	var seeded []seedSource
	if opts.inputsFile != "" {
		f, err := config.LoadFile(opts.inputsFile)
		if err != nil {
			return nil, err
		}
		count, err := config.Seed(store, f.Variables())
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, seedSource{path: opts.inputsFile, count: count})
	}
	if opts.envFile != "" {
		vars, err := config.LoadEnvFile(opts.envFile)
		if err != nil {
			return nil, err
		}
		count, err := config.Seed(store, vars)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, seedSource{path: opts.envFile, count: count})
	}
	return seeded, nil
}
