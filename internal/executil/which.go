package executil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// ErrNotFound is returned when no executable matches the requested name.
var ErrNotFound = errors.New(messages.ExecutilNotFound)

// WhichOptions configures executable lookup.
type WhichOptions struct {
	// Path is the search path in os.PathListSeparator form.
	Path string
	// PathExt is a PATHEXT-style list of extensions tried after the bare name.
	PathExt string
	// Include directories are searched after Path.
	Include []string
	// Exclude directories are skipped.
	Exclude []string
}

var isExecutableFunc = isExecutable

// Which resolves tool to an absolute executable path.
func Which(tool string, opts WhichOptions) (string, error) {
	if strings.TrimSpace(tool) == "" {
		return "", errors.New(messages.ExecutilToolRequired)
	}
	extensions := splitPathExt(opts.PathExt)

	if strings.ContainsAny(tool, `/\`) {
		abs, err := filepath.Abs(tool)
		if err != nil {
			return "", fmt.Errorf(messages.ExecutilResolvePathFmt, tool, err)
		}
		if found, ok := tryCandidate(abs, extensions); ok {
			return found, nil
		}
		return "", fmt.Errorf(messages.ExecutilNotFoundFmt, ErrNotFound, tool)
	}

	for _, dir := range searchDirs(opts) {
		if found, ok := tryCandidate(filepath.Join(dir, tool), extensions); ok {
			return found, nil
		}
	}
	return "", fmt.Errorf(messages.ExecutilNotFoundFmt, ErrNotFound, tool)
}

// tryCandidate checks candidate with no extension and then each extension in turn.
func tryCandidate(candidate string, extensions []string) (string, bool) {
	if isExecutableFunc(candidate) {
		return candidate, true
	}
	for _, ext := range extensions {
		if strings.EqualFold(filepath.Ext(candidate), ext) {
			continue
		}
		withExt := candidate + ext
		if isExecutableFunc(withExt) {
			return withExt, true
		}
	}
	return "", false
}

// searchDirs returns PATH entries plus includes, minus excludes, without duplicates.
func searchDirs(opts WhichOptions) []string {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		excluded[filepath.Clean(dir)] = true
	}
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		clean := filepath.Clean(dir)
		if excluded[clean] || seen[clean] {
			return
		}
		seen[clean] = true
		dirs = append(dirs, clean)
	}
	for _, dir := range filepath.SplitList(opts.Path) {
		add(dir)
	}
	for _, dir := range opts.Include {
		add(dir)
	}
	return dirs
}

// splitPathExt parses a PATHEXT value (";"-separated, e.g. ".EXE;.CMD").
func splitPathExt(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// regularFile reports whether path exists and is a regular file.
func regularFile(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}
