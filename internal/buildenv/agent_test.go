package buildenv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/gittools-runner/internal/envvars"
	"github.com/conn-castle/gittools-runner/internal/executil"
	"github.com/conn-castle/gittools-runner/internal/testutil"
)

func newTestAgent(t *testing.T, name string, entries ...string) (BuildAgent, *envvars.Map, *bytes.Buffer) {
	t.Helper()
	vars := envvars.NewMap(entries...)
	var out bytes.Buffer
	agent, err := New(name, Options{Vars: vars, Stdout: &out})
	require.NoError(t, err)
	return agent, vars, &out
}

func TestNewKnownAgents(t *testing.T) {
	for _, name := range []string{"azure", "GitHub", " local "} {
		agent, err := New(name, Options{Vars: envvars.NewMap(), Stdout: &bytes.Buffer{}})
		require.NoError(t, err, name)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(name)), agent.Name())
	}
}

func TestNewUnknownAgent(t *testing.T) {
	_, err := New("jenkins", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jenkins")
	assert.Contains(t, err.Error(), "azure, github, local")
}

func TestNewDefaultsToProcessEnvironment(t *testing.T) {
	t.Setenv("INPUT_VERSIONSPEC", "5.x")
	agent, err := New(AgentLocal, Options{Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	value, err := agent.Input("versionSpec", true)
	require.NoError(t, err)
	assert.Equal(t, "5.x", value)
}

func TestInputRequiredMissing(t *testing.T) {
	for _, name := range Names() {
		agent, _, _ := newTestAgent(t, name, "INPUT_BLANK=   ")
		_, err := agent.Input("Foo", true)
		var missing *MissingInputError
		require.True(t, errors.As(err, &missing), name)
		assert.Equal(t, "Foo", missing.Name)

		_, err = agent.Input("blank", true)
		require.Error(t, err, name)

		value, err := agent.Input("Foo", false)
		require.NoError(t, err, name)
		assert.Empty(t, value)
	}
}

func TestInputNameMapping(t *testing.T) {
	for _, name := range Names() {
		agent, _, _ := newTestAgent(t, name, "INPUT_CONFIG_FILE_PATH= GitVersion.yml ")
		value, err := agent.Input("config file path", false)
		require.NoError(t, err, name)
		assert.Equal(t, "GitVersion.yml", value, name)
	}
}

func TestBoolInput(t *testing.T) {
	agent, _, _ := newTestAgent(t, AgentLocal, "INPUT_A=TRUE", "INPUT_B=yes", "INPUT_C=True")
	for input, want := range map[string]bool{"a": true, "b": false, "c": true, "missing": false} {
		got, err := agent.BoolInput(input, false)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
	_, err := agent.BoolInput("missing", true)
	require.Error(t, err)
}

func TestListInput(t *testing.T) {
	agent, _, _ := newTestAgent(t, AgentAzure, "INPUT_OVERRIDECONFIG=tag-prefix=v\n\n  next-version=2.0.0  \r\n")
	items, err := agent.ListInput("overrideConfig", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-prefix=v", "next-version=2.0.0"}, items)

	items, err = agent.ListInput("absent", false)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPathVariable(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	agent, _, _ := newTestAgent(t, AgentLocal, "REL=some/../dir", "ABS=/tmp/x/../y", "HOMEY=~/tools")

	assert.Equal(t, "", agent.PathVariable("UNSET"))
	assert.Equal(t, filepath.Join(cwd, "dir"), agent.PathVariable("REL"))
	assert.Equal(t, filepath.Clean("/tmp/y"), agent.PathVariable("ABS"))
	home := agent.PathVariable("HOMEY")
	assert.True(t, filepath.IsAbs(home))
	assert.Equal(t, "tools", filepath.Base(home))
}

func TestIdentityDirectories(t *testing.T) {
	cases := map[string][3]string{
		AgentAzure:  {"BUILD_SOURCESDIRECTORY", "AGENT_TEMPDIRECTORY", "AGENT_TOOLSDIRECTORY"},
		AgentGitHub: {"GITHUB_WORKSPACE", "RUNNER_TEMP", "RUNNER_TOOL_CACHE"},
		AgentLocal:  {"AGENT_SOURCE_DIR", "AGENT_TEMP_DIR", "AGENT_TOOLS_DIR"},
	}
	for name, keys := range cases {
		agent, _, _ := newTestAgent(t, name, keys[0]+"=/src", keys[1]+"=/tmp/run", keys[2]+"=/opt/cache/")
		assert.Equal(t, filepath.Clean("/src"), agent.SourceDir(), name)
		assert.Equal(t, filepath.Clean("/tmp/run"), agent.TempDir(), name)
		assert.Equal(t, filepath.Clean("/opt/cache"), agent.CacheDir(), name)

		empty, _, _ := newTestAgent(t, name)
		assert.Empty(t, empty.CacheDir(), name)
	}
}

func TestSetVariableUpdatesStore(t *testing.T) {
	for _, name := range Names() {
		agent, vars, _ := newTestAgent(t, name)
		agent.SetVariable("GitVersion_major", "1")
		assert.Equal(t, "1", vars.Get("GitVersion_major"), name)
		assert.Equal(t, "1", agent.Variable("GitVersion_major"), name)
	}
}

func TestAddPathPrependsOnce(t *testing.T) {
	sep := string(os.PathListSeparator)
	agent, vars, _ := newTestAgent(t, AgentLocal, "PATH=/usr/bin"+sep+"/opt/tool"+sep+"/bin")
	agent.AddPath("/opt/tool")
	assert.Equal(t, "/opt/tool"+sep+"/usr/bin"+sep+"/bin", vars.Get("PATH"))

	agent.AddPath("/opt/tool")
	assert.Equal(t, "/opt/tool"+sep+"/usr/bin"+sep+"/bin", vars.Get("PATH"))

	empty, emptyVars, _ := newTestAgent(t, AgentLocal)
	empty.AddPath("/x")
	assert.Equal(t, "/x", emptyVars.Get("PATH"))
}

func TestExecUsesAgentPathAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "echoer", "echo \"$1:$ECHO_VALUE\"\n")
	agent, _, _ := newTestAgent(t, AgentLocal, "PATH="+dir+string(os.PathListSeparator)+"/usr/bin:/bin", "ECHO_VALUE=abc")

	result := agent.Exec(context.Background(), "echoer", []string{"arg"})
	require.NoError(t, result.Err)
	assert.Equal(t, "arg:abc", strings.TrimSpace(result.Stdout))

	missing := agent.Exec(context.Background(), "definitely-not-here", nil)
	require.Error(t, missing.Err)
	assert.NotEqual(t, 0, missing.Code)
}

func TestWhichCheck(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "dotnet-gitversion")
	agent, _, _ := newTestAgent(t, AgentLocal, "PATH="+dir)

	path, err := agent.Which("dotnet-gitversion", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dotnet-gitversion"), path)

	path, err = agent.Which("other", false)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = agent.Which("other", true)
	require.ErrorIs(t, err, executil.ErrNotFound)
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "GitVersion.yml")
	testutil.WriteFile(t, file, "mode: Mainline\n")
	agent, _, _ := newTestAgent(t, AgentLocal)

	assert.True(t, agent.FileExists(file))
	assert.False(t, agent.FileExists(dir))
	assert.True(t, agent.DirExists(dir))
	assert.False(t, agent.DirExists(file))
	assert.False(t, agent.DirExists(filepath.Join(dir, "missing")))
}

func TestRemoveDirRemovesTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "entry")
	testutil.WriteFile(t, filepath.Join(dir, "nested", "file"), "x")
	agent, _, _ := newTestAgent(t, AgentLocal)

	require.NoError(t, agent.RemoveDir(dir))
	assert.False(t, agent.DirExists(dir))
	require.NoError(t, agent.RemoveDir(dir))
}

func TestRemoveDirRetries(t *testing.T) {
	origRemove, origSleep := removeAllFunc, removeSleep
	t.Cleanup(func() { removeAllFunc, removeSleep = origRemove, origSleep })
	sleeps := 0
	removeSleep = func(time.Duration) { sleeps++ }

	calls := 0
	removeAllFunc = func(string) error {
		calls++
		if calls < 3 {
			return errors.New("busy")
		}
		return nil
	}
	agent, _, _ := newTestAgent(t, AgentLocal)
	require.NoError(t, agent.RemoveDir("/cache/entry"))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, sleeps)

	calls, sleeps = 0, 0
	removeAllFunc = func(string) error {
		calls++
		return errors.New("locked")
	}
	err := agent.RemoveDir("/cache/entry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.Equal(t, removeRetryCount+1, calls)
	assert.Equal(t, removeRetryCount, sleeps)
}
