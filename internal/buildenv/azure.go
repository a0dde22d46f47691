package buildenv

import (
	"fmt"
	"strings"
)

// AzureAgent talks to Azure Pipelines through ##vso logging commands.
type AzureAgent struct {
	core
}

// NewAzure returns an Azure Pipelines agent.
func NewAzure(opts Options) *AzureAgent {
	a := &AzureAgent{core: newCore(AgentAzure, opts, dirVars{
		source: "BUILD_SOURCESDIRECTORY",
		temp:   "AGENT_TEMPDIRECTORY",
		cache:  "AGENT_TOOLSDIRECTORY",
	})}
	a.p = a
	return a
}

type property struct {
	key   string
	value string
}

// command writes ##vso[name k=v;...]message.
func (a *AzureAgent) command(name string, props []property, msg string) {
	var b strings.Builder
	b.WriteString("##vso[")
	b.WriteString(name)
	for i, prop := range props {
		if i == 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop.key)
		b.WriteByte('=')
		b.WriteString(escapePropertyValue(prop.value))
		b.WriteByte(';')
	}
	b.WriteByte(']')
	b.WriteString(escapeData(msg))
	_, _ = fmt.Fprintln(a.out, b.String())
}

func (a *AzureAgent) input(name string) string {
	return a.vars.Get(InputVariable(name))
}

func (a *AzureAgent) debug(msg string) {
	a.command("task.debug", nil, msg)
}

func (a *AzureAgent) info(msg string) {
	_, _ = fmt.Fprintln(a.out, msg)
}

func (a *AzureAgent) warn(msg string) {
	a.command("task.logissue", []property{{"type", "warning"}}, msg)
}

func (a *AzureAgent) logError(msg string) {
	a.command("task.logissue", []property{{"type", "error"}}, msg)
}

func (a *AzureAgent) setOutput(name string, value string) {
	a.command("task.setvariable", []property{{"variable", name}, {"isOutput", "true"}}, value)
}

func (a *AzureAgent) exportVariable(name string, value string) {
	a.command("task.setvariable", []property{{"variable", name}}, value)
}

func (a *AzureAgent) addPath(dir string) {
	a.command("task.prependpath", nil, dir)
}

func (a *AzureAgent) complete(failed bool, msg string, done bool) {
	result := "Succeeded"
	if failed {
		result = "Failed"
		a.logError(msg)
	}
	a.command("task.complete", []property{{"result", result}, {"done", fmt.Sprintf("%t", done)}}, msg)
}

// escapeData escapes a logging command message.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%AZP25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// escapePropertyValue escapes a logging command property value.
func escapePropertyValue(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, "]", "%5D")
	return strings.ReplaceAll(s, ";", "%3B")
}
