package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func removeFiles(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

// buildCLI compiles the command into a temporary directory
func buildCLI(t *testing.T, name string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping CLI build in short mode")
	}
	binPath := filepath.Join(t.TempDir(), "cli-"+name)
	if out, err := exec.Command("go", "build", "-o", binPath, ".").CombinedOutput(); err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	return binPath
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run: %v", err)
	}
	return exitErr.ExitCode()
}

// --- Connection failure is fatal --- //
func TestCLIExitsOnConnectionFailure(t *testing.T) {
	binPath := buildCLI(t, "connect")
	defer removeFiles(binPath)

	dbPath := filepath.Join(t.TempDir(), "no", "such", "dir", "demo.db")
	out, err := exec.Command(binPath, "--path", dbPath).CombinedOutput()
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("exit code = %d, want 1\n%s", code, out)
	}
	if !strings.Contains(string(out), "Cannot connect to sqlite") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// --- Bad flags never reach the database --- //
func TestCLIRejectsBadFlags(t *testing.T) {
	binPath := buildCLI(t, "flags")
	defer removeFiles(binPath)

	out, err := exec.Command(binPath, "--page-size", "0").CombinedOutput()
	if code := exitCode(t, err); code != 2 {
		t.Fatalf("exit code = %d, want 2\n%s", code, out)
	}
}
