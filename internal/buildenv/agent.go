// Package buildenv hides the differences between CI platforms behind a single
// BuildAgent contract: inputs, logging, outputs, variables, search path, and
// process execution.
package buildenv

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/envvars"
	"github.com/conn-castle/gittools-runner/internal/executil"
	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Agent names accepted by New.
const (
	AgentAzure  = "azure"
	AgentGitHub = "github"
	AgentLocal  = "local"
)

// BuildAgent is the capability set every CI platform adapter provides.
type BuildAgent interface {
	Name() string

	SourceDir() string
	TempDir() string
	CacheDir() string

	Input(name string, required bool) (string, error)
	BoolInput(name string, required bool) (bool, error)
	ListInput(name string, required bool) ([]string, error)

	Variable(name string) string
	SetVariable(name string, value string)
	PathVariable(name string) string

	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	AddPath(dir string)
	SetSucceeded(msg string, done bool)
	SetFailed(msg string, done bool)
	SetOutput(name string, value string)

	Exec(ctx context.Context, cmd string, args []string) executil.Result
	Which(tool string, check bool) (string, error)
	FileExists(path string) bool
	DirExists(path string) bool
	RemoveDir(path string) error
}

// MissingInputError reports a required task input that was not supplied.
type MissingInputError struct {
	Name string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf(messages.BuildenvMissingInputFmt, e.Name)
}

// Options configures a build agent.
type Options struct {
	// Vars backs variable reads and writes. Defaults to the process environment.
	Vars envvars.Store
	// Stdout receives log lines and platform commands. Defaults to os.Stdout.
	Stdout io.Writer
	// Color enables coloured level tags for the local agent.
	Color bool
}

type constructor func(opts Options) BuildAgent

var constructors = map[string]constructor{
	AgentAzure:  func(opts Options) BuildAgent { return NewAzure(opts) },
	AgentGitHub: func(opts Options) BuildAgent { return NewGitHub(opts) },
	AgentLocal:  func(opts Options) BuildAgent { return NewLocal(opts) },
}

// Names returns the supported agent names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the build agent registered under name.
func New(name string, opts Options) (BuildAgent, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf(messages.BuildenvUnknownAgentFmt, name, strings.Join(Names(), ", "))
	}
	return ctor(opts), nil
}

func (o Options) withDefaults() Options {
	if o.Vars == nil {
		o.Vars = envvars.OS{}
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	return o
}
