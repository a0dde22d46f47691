//go:build !windows

package executil

import "golang.org/x/sys/unix"

// isExecutable reports whether path is a regular file the current user may execute.
func isExecutable(path string) bool {
	if _, ok := regularFile(path); !ok {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
