// Package executil runs external commands and locates executables on a search path.
package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result is the captured outcome of a command.
// Err is set when the command could not be started or exited non-zero;
// callers branch on Code.
type Result struct {
	Code   int
	Err    error
	Stdout string
	Stderr string
}

// Command describes a single invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
	// Env replaces the child environment when non-nil.
	Env []string
}

// Execute runs cmd to completion and captures stdout, stderr, and the exit code.
// It never returns an error directly: failures are reported through Result.Err.
func Execute(ctx context.Context, cmd Command) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	// #nosec G204 -- the command is chosen by the task definition.
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if cmd.Env != nil {
		c.Env = cmd.Env
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result
	}
	result.Err = err
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Code = exitErr.ExitCode()
		if result.Code == 0 {
			result.Code = -1
		}
		return result
	}
	result.Code = -1
	return result
}

// Message returns the most useful description of a failed result: stderr,
// then stdout, then the underlying error.
func (r Result) Message() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Stdout); msg != "" {
		return msg
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return ""
}
