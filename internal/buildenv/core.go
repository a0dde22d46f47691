package buildenv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/gittools-runner/internal/envvars"
	"github.com/conn-castle/gittools-runner/internal/executil"
	"github.com/conn-castle/gittools-runner/internal/messages"
)

const (
	removeRetryCount = 3
	removeRetryDelay = 500 * time.Millisecond
)

var (
	removeAllFunc = os.RemoveAll
	removeSleep   = time.Sleep
)

// platform is implemented by each adapter for the operations whose wire
// format differs between CI systems.
type platform interface {
	input(name string) string
	debug(msg string)
	info(msg string)
	warn(msg string)
	logError(msg string)
	setOutput(name string, value string)
	exportVariable(name string, value string)
	addPath(dir string)
	complete(failed bool, msg string, done bool)
}

// dirVars names the variables that carry the agent's well-known directories.
type dirVars struct {
	source string
	temp   string
	cache  string
}

// core implements the platform-neutral part of BuildAgent.
type core struct {
	name string
	vars envvars.Store
	out  io.Writer
	dirs dirVars
	p    platform
}

func newCore(name string, opts Options, dirs dirVars) core {
	opts = opts.withDefaults()
	return core{name: name, vars: opts.Vars, out: opts.Stdout, dirs: dirs}
}

func (c *core) Name() string { return c.name }

func (c *core) SourceDir() string { return c.PathVariable(c.dirs.source) }

func (c *core) TempDir() string { return c.PathVariable(c.dirs.temp) }

func (c *core) CacheDir() string { return c.PathVariable(c.dirs.cache) }

func (c *core) Input(name string, required bool) (string, error) {
	value := strings.TrimSpace(c.p.input(name))
	if value == "" && required {
		return "", &MissingInputError{Name: name}
	}
	return value, nil
}

// BoolInput is true only for a case-insensitive "true".
func (c *core) BoolInput(name string, required bool) (bool, error) {
	value, err := c.Input(name, required)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(value, "true"), nil
}

// ListInput splits a newline-delimited input and drops blank entries.
func (c *core) ListInput(name string, required bool) ([]string, error) {
	value, err := c.Input(name, required)
	if err != nil {
		return nil, err
	}
	var items []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items, nil
}

func (c *core) Variable(name string) string {
	return c.vars.Get(name)
}

func (c *core) SetVariable(name string, value string) {
	c.Debug(fmt.Sprintf(messages.BuildenvSetVariableDebugFmt, name))
	if err := c.vars.Set(name, value); err != nil {
		c.Warn(err.Error())
	}
	c.p.exportVariable(name, value)
}

// PathVariable resolves a variable to an absolute, cleaned path. It never
// fails: unset variables yield an empty string.
func (c *core) PathVariable(name string) string {
	raw := strings.TrimSpace(c.vars.Get(name))
	if raw == "" {
		return ""
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		expanded = raw
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return filepath.Clean(expanded)
	}
	return abs
}

func (c *core) Debug(msg string) { c.p.debug(msg) }

func (c *core) Info(msg string) { c.p.info(msg) }

func (c *core) Warn(msg string) { c.p.warn(msg) }

func (c *core) Error(msg string) { c.p.logError(msg) }

// AddPath asks the platform to prepend dir to the search path of later steps
// and makes it visible to lookups in this process immediately.
func (c *core) AddPath(dir string) {
	c.Debug(fmt.Sprintf(messages.BuildenvAddPathDebugFmt, dir))
	c.p.addPath(dir)

	entries := []string{dir}
	for _, entry := range filepath.SplitList(c.vars.Get("PATH")) {
		if entry == "" || filepath.Clean(entry) == filepath.Clean(dir) {
			continue
		}
		entries = append(entries, entry)
	}
	if err := c.vars.Set("PATH", strings.Join(entries, string(os.PathListSeparator))); err != nil {
		c.Warn(err.Error())
	}
}

func (c *core) SetSucceeded(msg string, done bool) {
	c.Debug(fmt.Sprintf(messages.BuildenvSucceededFmt, msg, done))
	c.p.complete(false, msg, done)
}

func (c *core) SetFailed(msg string, done bool) {
	c.Debug(fmt.Sprintf(messages.BuildenvFailedFmt, msg, done))
	c.p.complete(true, msg, done)
}

func (c *core) SetOutput(name string, value string) {
	c.p.setOutput(name, value)
}

// Exec resolves cmd against this agent's PATH and runs it with the agent's
// variables as the child environment.
func (c *core) Exec(ctx context.Context, cmd string, args []string) executil.Result {
	path := cmd
	if resolved, err := c.Which(cmd, false); err == nil && resolved != "" {
		path = resolved
	}
	c.Debug(fmt.Sprintf(messages.BuildenvExecDebugFmt, path, args))
	return executil.Execute(ctx, executil.Command{Path: path, Args: args, Env: c.vars.Environ()})
}

// Which locates tool on the agent's PATH. When check is false a miss returns
// an empty path and no error.
func (c *core) Which(tool string, check bool) (string, error) {
	path, err := executil.Which(tool, executil.WhichOptions{
		Path:    c.vars.Get("PATH"),
		PathExt: c.vars.Get("PATHEXT"),
	})
	if err != nil {
		if check {
			return "", err
		}
		return "", nil
	}
	return path, nil
}

func (c *core) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (c *core) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveDir deletes path recursively, retrying to ride out transient locks.
func (c *core) RemoveDir(path string) error {
	var err error
	for attempt := 0; attempt <= removeRetryCount; attempt++ {
		if err = removeAllFunc(path); err == nil {
			return nil
		}
		if attempt < removeRetryCount {
			c.Debug(fmt.Sprintf(messages.BuildenvRemoveRetryFmt, path, attempt+1, err))
			removeSleep(removeRetryDelay)
		}
	}
	return fmt.Errorf(messages.BuildenvRemoveDirFailedFmt, path, err)
}

// InputVariable maps a task input name to its INPUT_ variable.
func InputVariable(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}
