package buildenv

import (
	"fmt"
	"strings"

	"github.com/sethvargo/go-githubactions"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// GitHubAgent talks to GitHub Actions through the workflow toolkit.
type GitHubAgent struct {
	core
	action *githubactions.Action
}

// NewGitHub returns a GitHub Actions agent. Workflow commands and file
// commands (GITHUB_OUTPUT, GITHUB_ENV, GITHUB_PATH) are resolved through the
// agent's variable store.
func NewGitHub(opts Options) *GitHubAgent {
	a := &GitHubAgent{core: newCore(AgentGitHub, opts, dirVars{
		source: "GITHUB_WORKSPACE",
		temp:   "RUNNER_TEMP",
		cache:  "RUNNER_TOOL_CACHE",
	})}
	a.action = githubactions.New(
		githubactions.WithGetenv(a.vars.Get),
		githubactions.WithWriter(a.out),
	)
	a.p = a
	return a
}

func (a *GitHubAgent) input(name string) string {
	return a.action.GetInput(name)
}

func (a *GitHubAgent) debug(msg string) { a.action.Debugf("%s", msg) }

func (a *GitHubAgent) info(msg string) { a.action.Infof("%s", msg) }

func (a *GitHubAgent) warn(msg string) { a.action.Warningf("%s", msg) }

func (a *GitHubAgent) logError(msg string) { a.action.Errorf("%s", msg) }

func (a *GitHubAgent) setOutput(name string, value string) {
	a.fileCommand("GITHUB_OUTPUT", func() { a.action.SetOutput(name, value) }, &githubactions.Command{
		Name:       "set-output",
		Properties: githubactions.CommandProperties{"name": name},
		Message:    value,
	})
}

func (a *GitHubAgent) exportVariable(name string, value string) {
	a.fileCommand("GITHUB_ENV", func() { a.action.SetEnv(name, value) }, &githubactions.Command{
		Name:       "set-env",
		Properties: githubactions.CommandProperties{"name": name},
		Message:    value,
	})
}

func (a *GitHubAgent) addPath(dir string) {
	a.fileCommand("GITHUB_PATH", func() { a.action.AddPath(dir) }, &githubactions.Command{
		Name:    "add-path",
		Message: dir,
	})
}

// fileCommand runs write when the runner provides the file named by fileVar
// and issues the legacy workflow command otherwise. The toolkit panics when
// a file command cannot be written; that is reported as a warning.
func (a *GitHubAgent) fileCommand(fileVar string, write func(), legacy *githubactions.Command) {
	if strings.TrimSpace(a.vars.Get(fileVar)) == "" {
		a.action.IssueCommand(legacy)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.warn(fmt.Sprintf(messages.BuildenvFileCommandFailedFmt, fileVar, r))
		}
	}()
	write()
}

// complete reports the result; GitHub marks the step failed through the
// process exit code, which the caller derives from the failure report.
func (a *GitHubAgent) complete(failed bool, msg string, _ bool) {
	if failed {
		a.action.Errorf("%s", msg)
		return
	}
	a.action.Infof("%s", msg)
}
