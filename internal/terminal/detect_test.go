package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminalNonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	var f *os.File
	assert.False(t, IsTerminal(f))
}

func TestIsTerminalUsesFileDescriptor(t *testing.T) {
	orig := isTerminalFd
	t.Cleanup(func() { isTerminalFd = orig })

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var seen int
	isTerminalFd = func(fd int) bool {
		seen = fd
		return true
	}
	assert.True(t, IsTerminal(f))
	assert.Equal(t, int(f.Fd()), seen)
}

func TestColorEnabled(t *testing.T) {
	orig := isTerminalFd
	t.Cleanup(func() { isTerminalFd = orig })
	isTerminalFd = func(int) bool { return true }

	env := map[string]string{}
	getenv := func(key string) string { return env[key] }

	assert.True(t, ColorEnabled(os.Stdout, getenv))
	assert.False(t, ColorEnabled(&bytes.Buffer{}, getenv))

	env["NO_COLOR"] = "1"
	assert.False(t, ColorEnabled(os.Stdout, getenv))
}
