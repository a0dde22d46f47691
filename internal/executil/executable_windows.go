//go:build windows

package executil

// isExecutable reports whether path is a regular file. Windows decides
// executability by extension, which Which resolves through PATHEXT.
func isExecutable(path string) bool {
	_, ok := regularFile(path)
	return ok
}
