package executil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/gittools-runner/internal/testutil"
)

func TestWhichScansPathInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteStub(t, second, "dotnet-gitversion")

	got, err := Which("dotnet-gitversion", WhichOptions{Path: strings.Join([]string{first, second}, string(os.PathListSeparator))})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(second, "dotnet-gitversion"), got)

	testutil.WriteStub(t, first, "dotnet-gitversion")
	got, err = Which("dotnet-gitversion", WhichOptions{Path: strings.Join([]string{first, second}, string(os.PathListSeparator))})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(first, "dotnet-gitversion"), got)
}

func TestWhichNotFound(t *testing.T) {
	_, err := Which("nope", WhichOptions{Path: t.TempDir()})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), "nope")
}

func TestWhichSkipsNonExecutableAndDirectories(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "plain"), "not executable")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o755))

	_, err := Which("plain", WhichOptions{Path: dir})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = Which("folder", WhichOptions{Path: dir})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWhichIncludeAndExclude(t *testing.T) {
	pathDir := t.TempDir()
	extra := t.TempDir()
	testutil.WriteStub(t, pathDir, "tool")
	testutil.WriteStub(t, extra, "tool")

	got, err := Which("tool", WhichOptions{Path: pathDir, Include: []string{extra}, Exclude: []string{pathDir}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(extra, "tool"), got)

	_, err = Which("tool", WhichOptions{Path: pathDir, Exclude: []string{pathDir}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWhichDirectPath(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteScript(t, dir, "tool", "exit 0\n")

	got, err := Which(path, WhichOptions{})
	require.NoError(t, err)
	require.Equal(t, path, got)

	_, err = Which(filepath.Join(dir, "missing"), WhichOptions{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWhichTriesPathExt(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "tool.cmd")

	got, err := Which("tool", WhichOptions{Path: dir, PathExt: ".EXE;.cmd"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "tool.cmd"), got)

	_, err = Which("tool", WhichOptions{Path: dir})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWhichEmptyName(t *testing.T) {
	_, err := Which("  ", WhichOptions{})
	require.Error(t, err)
}

func TestSplitPathExt(t *testing.T) {
	require.Equal(t, []string{".EXE", ".CMD", ".bat"}, splitPathExt(".EXE; .CMD;;bat"))
	require.Nil(t, splitPathExt(""))
}

func TestSearchDirsDeduplicates(t *testing.T) {
	sep := string(os.PathListSeparator)
	dirs := searchDirs(WhichOptions{Path: "/a" + sep + "/b/" + sep + sep + "/a", Include: []string{"/b", "/c"}})
	require.Equal(t, []string{"/a", "/b", "/c"}, dirs)
}
