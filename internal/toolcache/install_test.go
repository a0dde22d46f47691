package toolcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/conn-castle/gittools-runner/internal/executil"
	"github.com/conn-castle/gittools-runner/internal/testutil"
)

func toolPathArg(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "--tool-path" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("no --tool-path in %v", args)
	return ""
}

func TestInstallArgs(t *testing.T) {
	got := InstallArgs("GitVersion.Tool", "5.12.0", "/tmp/x", false)
	want := []string{"tool", "install", "GitVersion.Tool", "--tool-path", "/tmp/x", "--version", "5.12.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	got = InstallArgs("GitVersion.Tool", "5.12.0", "/tmp/x", true)
	if got[len(got)-1] != "--ignore-failed-sources" {
		t.Fatalf("expected ignore flag last, got %v", got)
	}
}

func TestInstallCachesTool(t *testing.T) {
	env := newFakeEnv(t)
	var installDir string
	env.execFunc = func(cmd string, args []string) executil.Result {
		installDir = toolPathArg(t, args)
		testutil.WriteFile(t, filepath.Join(installDir, "dotnet-gitversion"), "shim")
		return executil.Result{Stdout: "Tool 'gitversion.tool' was successfully installed."}
	}

	path, err := Install(context.Background(), env, "GitVersion.Tool", "5.12.0", true)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if want := (Key{Tool: "GitVersion.Tool", Version: "5.12.0"}).Path(env.cacheDir); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	if testutil.ReadFile(t, filepath.Join(path, "dotnet-gitversion")) != "shim" {
		t.Fatal("expected installed file in cache")
	}
	if len(env.execCalls) != 1 {
		t.Fatalf("expected one install call, got %v", env.execCalls)
	}
	want := append([]string{"dotnet"}, InstallArgs("GitVersion.Tool", "5.12.0", installDir, true)...)
	if !reflect.DeepEqual(env.execCalls[0], want) {
		t.Fatalf("expected %v, got %v", want, env.execCalls[0])
	}
	if filepath.Dir(installDir) != env.tempDir {
		t.Fatalf("expected install dir under %s, got %s", env.tempDir, installDir)
	}
	if _, err := os.Stat(installDir); !os.IsNotExist(err) {
		t.Fatalf("expected temp install dir removed, got %v", err)
	}
}

func TestInstallFailureSurfacesOutput(t *testing.T) {
	env := newFakeEnv(t)
	env.execFunc = func(string, []string) executil.Result {
		return executil.Result{
			Code:   1,
			Err:    errors.New("exit status 1"),
			Stdout: "ignored",
			Stderr: "Version 9.9.9 of package gitversion.tool is not found in NuGet feeds\n",
		}
	}

	_, err := Install(context.Background(), env, "GitVersion.Tool", "9.9.9", false)
	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("expected InstallError, got %v", err)
	}
	if err.Error() != "Version 9.9.9 of package gitversion.tool is not found in NuGet feeds" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok, _ := FindLocal(env, "GitVersion.Tool", "9.9.9", ""); ok {
		t.Fatal("failed install must not populate the cache")
	}
}

func TestInstallFailureWithoutOutput(t *testing.T) {
	err := (&InstallError{Tool: "GitVersion.Tool", Version: "1.0.0", Code: 3}).Error()
	if err != "failed to install GitVersion.Tool 1.0.0: exit code 3" {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestInstallRequiresTempDir(t *testing.T) {
	env := &fakeEnv{cacheDir: t.TempDir()}
	if _, err := Install(context.Background(), env, "GitVersion.Tool", "5.12.0", false); err == nil {
		t.Fatal("expected error without temp dir")
	}
	if len(env.execCalls) != 0 {
		t.Fatalf("expected no exec, got %v", env.execCalls)
	}
}
