package toolcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/conn-castle/gittools-runner/internal/executil"
	"github.com/conn-castle/gittools-runner/internal/messages"
	"github.com/conn-castle/gittools-runner/internal/resolve"
)

// Environment is the slice of the build agent the cache needs.
type Environment interface {
	CacheDir() string
	TempDir() string
	Debug(msg string)
	Info(msg string)
	DirExists(path string) bool
	RemoveDir(path string) error
	Exec(ctx context.Context, cmd string, args []string) executil.Result
}

// MissingParameterError reports an empty required argument. It indicates a
// caller bug rather than bad user input.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf(messages.ToolcacheMissingParameterFmt, e.Name)
}

const stagingInfix = ".staging-"

var (
	osRename   = os.Rename
	newStaging = func(dest string) string { return dest + stagingInfix + uuid.NewString() }
)

// FindLocal returns the cached entry for tool matching versionSpec. An exact
// version is a pure existence check of its entry directory. A range selects
// the highest cached stable version that has an entry for arch. An unset
// cache root disables the cache.
func FindLocal(env Environment, tool string, versionSpec string, arch string) (string, bool, error) {
	if tool == "" {
		return "", false, &MissingParameterError{Name: "toolName"}
	}
	if versionSpec == "" {
		return "", false, &MissingParameterError{Name: "versionSpec"}
	}
	root := env.CacheDir()
	if root == "" {
		env.Debug(messages.ToolcacheCacheDisabled)
		return "", false, nil
	}
	if arch == "" {
		arch = HostArch()
	}

	version := resolve.Clean(versionSpec)
	if !resolve.IsExact(version) {
		var ok bool
		version, ok = findLocalMatch(env, root, tool, version, arch)
		if !ok {
			env.Debug(fmt.Sprintf(messages.ToolcacheNotFoundDebugFmt, tool, versionSpec, arch))
			return "", false, nil
		}
	}

	path := Key{Tool: tool, Version: version, Arch: arch}.Path(root)
	if !env.DirExists(path) {
		env.Debug(fmt.Sprintf(messages.ToolcacheNotFoundDebugFmt, tool, version, arch))
		return "", false, nil
	}
	env.Debug(fmt.Sprintf(messages.ToolcacheFoundDebugFmt, tool, version, arch))
	return path, true, nil
}

// findLocalMatch picks the highest cached version of tool satisfying spec.
func findLocalMatch(env Environment, root string, tool string, spec string, arch string) (string, bool) {
	toolDir := filepath.Join(root, tool)
	entries, err := os.ReadDir(toolDir)
	if err != nil {
		env.Debug(fmt.Sprintf(messages.ToolcacheReadCacheDirDebugFmt, toolDir, err))
		return "", false
	}
	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if env.DirExists(filepath.Join(toolDir, entry.Name(), arch)) {
			versions = append(versions, entry.Name())
		}
	}
	match, ok, err := resolve.MaxSatisfying(versions, spec, false)
	if err != nil {
		env.Debug(err.Error())
		return "", false
	}
	return match, ok
}

// Cache promotes the tree at src into the cache entry for tool, version, and
// arch and returns the entry path. An existing entry is replaced, never
// merged. The tree is copied into a sibling staging directory and renamed
// into place while holding the entry lock, so readers never see a partially
// populated entry.
func Cache(env Environment, src string, tool string, version string, arch string) (string, error) {
	if src == "" {
		return "", &MissingParameterError{Name: "sourceDir"}
	}
	if tool == "" {
		return "", &MissingParameterError{Name: "toolName"}
	}
	if version == "" {
		return "", &MissingParameterError{Name: "version"}
	}
	root := env.CacheDir()
	if root == "" {
		return "", errors.New(messages.ToolcacheRootRequired)
	}
	if arch == "" {
		arch = HostArch()
	}
	version = resolve.Clean(version)

	dest := Key{Tool: tool, Version: version, Arch: arch}.Path(root)
	env.Debug(fmt.Sprintf(messages.ToolcacheCachingDebugFmt, tool, version, arch, src))
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf(messages.ToolcacheCreateDirFmt, parent, err)
	}

	err := withFileLock(dest+".lock", func() error {
		removeStaleStaging(env, dest)
		staging := newStaging(dest)
		committed := false
		defer func() {
			if !committed {
				_ = os.RemoveAll(staging)
			}
		}()

		if err := copyTree(src, staging); err != nil {
			return fmt.Errorf(messages.ToolcacheCopyFmt, src, staging, err)
		}
		if env.DirExists(dest) {
			if err := env.RemoveDir(dest); err != nil {
				return fmt.Errorf(messages.ToolcacheReplaceFmt, dest, err)
			}
		}
		if err := osRename(staging, dest); err != nil {
			return fmt.Errorf(messages.ToolcacheReplaceFmt, dest, err)
		}
		committed = true
		return nil
	})
	if err != nil {
		return "", err
	}
	return dest, nil
}

// removeStaleStaging deletes staging directories an interrupted Cache left
// next to dest. The caller holds the entry lock.
func removeStaleStaging(env Environment, dest string) {
	parent := filepath.Dir(dest)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return
	}
	prefix := filepath.Base(dest) + stagingInfix
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		stale := filepath.Join(parent, entry.Name())
		env.Debug(fmt.Sprintf(messages.ToolcacheStaleStagingDebugFmt, stale))
		if err := os.RemoveAll(stale); err != nil {
			env.Debug(fmt.Sprintf(messages.ToolcacheStaleStagingFailedFmt, stale, err))
		}
	}
}

// copyTree copies the directory tree at src to dest, preserving file modes
// and symlinks.
func copyTree(src string, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return fmt.Errorf(messages.ToolcacheCopyUnsupportedFmt, path)
		}
	})
}

func copyFile(src string, dest string, perm fs.FileMode) error {
	in, err := os.Open(src) // #nosec G304 -- src is a path inside the tree being cached.
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) // #nosec G304 -- dest is inside the staging directory.
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
