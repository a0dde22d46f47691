package buildenv

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// LocalAgent runs directly against the process environment and writes
// human-readable log lines.
type LocalAgent struct {
	core
	debugTag *color.Color
	infoTag  *color.Color
	warnTag  *color.Color
	errorTag *color.Color
}

// NewLocal returns an agent for local or interactive runs.
func NewLocal(opts Options) *LocalAgent {
	a := &LocalAgent{
		core: newCore(AgentLocal, opts, dirVars{
			source: "AGENT_SOURCE_DIR",
			temp:   "AGENT_TEMP_DIR",
			cache:  "AGENT_TOOLS_DIR",
		}),
		debugTag: color.New(color.FgHiBlack),
		infoTag:  color.New(color.FgCyan),
		warnTag:  color.New(color.FgYellow),
		errorTag: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{a.debugTag, a.infoTag, a.warnTag, a.errorTag} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	a.p = a
	return a
}

func (a *LocalAgent) line(tag *color.Color, label string, sep string, msg string) {
	_, _ = fmt.Fprintf(a.out, "%s%s%s\n", tag.Sprint(label), sep, msg)
}

func (a *LocalAgent) input(name string) string {
	return a.vars.Get(InputVariable(name))
}

func (a *LocalAgent) debug(msg string) { a.line(a.debugTag, "[debug]", " ", msg) }

func (a *LocalAgent) info(msg string) { a.line(a.infoTag, "[info]", " - ", msg) }

func (a *LocalAgent) warn(msg string) { a.line(a.warnTag, "[warn]", " - ", msg) }

func (a *LocalAgent) logError(msg string) { a.line(a.errorTag, "[error]", " - ", msg) }

func (a *LocalAgent) setOutput(name string, value string) {
	a.debug(fmt.Sprintf(messages.BuildenvSetOutputDebugFmt, name, value))
}

func (a *LocalAgent) exportVariable(string, string) {}

func (a *LocalAgent) addPath(string) {}

func (a *LocalAgent) complete(failed bool, msg string, _ bool) {
	if failed {
		a.logError(msg)
		return
	}
	a.info(msg)
}
