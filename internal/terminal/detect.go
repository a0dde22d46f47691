// Package terminal provides terminal detection utilities.
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var isTerminalFd = term.IsTerminal

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isTerminalFd(int(f.Fd()))
}

// ColorEnabled reports whether coloured output should be written to w.
// NO_COLOR disables colour regardless of the terminal.
func ColorEnabled(w io.Writer, getenv func(string) string) bool {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return false
	}
	return IsTerminal(w)
}
