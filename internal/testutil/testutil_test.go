package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestWriteStubWithExit(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "fail", 4)

	err := exec.Command(filepath.Join(dir, "fail")).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 4 {
		t.Fatalf("expected exit 4, got %d", exitErr.ExitCode())
	}
}

func TestWriteStub(t *testing.T) {
	dir := t.TempDir()
	WriteStub(t, dir, "ok")
	if err := exec.Command(filepath.Join(dir, "ok")).Run(); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestWriteScriptOutput(t *testing.T) {
	dir := t.TempDir()
	path := WriteScript(t, dir, "echoer", "echo \"$1\"\n")
	out, err := exec.Command(path, "hi").Output()
	if err != nil {
		t.Fatalf("run script: %v", err)
	}
	if string(out) != "hi\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	WriteFile(t, path, "content")
	if got := ReadFile(t, path); got != "content" {
		t.Fatalf("expected content, got %q", got)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected parent dir, err=%v", err)
	}
}
