package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tnk")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp source: %v", err)
	}
	return path
}

func TestRunStandaloneSuccess(t *testing.T) {
	path := writeTempSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	out := filepath.Join(t.TempDir(), "out.rs")

	code := run([]string{"-o", out, path})
	if code != exitSuccess {
		t.Fatalf("run() = %d, want %d", code, exitSuccess)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty generated output")
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	path := writeTempSource(t, "def broken(:\n")
	code := run([]string{path})
	if code != exitDiagnostics {
		t.Fatalf("run() = %d, want %d", code, exitDiagnostics)
	}
}

func TestRunMissingFileIsIOFailure(t *testing.T) {
	code := run([]string{"/nonexistent/path/to/source.tnk"})
	if code != exitIOFailure {
		t.Fatalf("run() = %d, want %d", code, exitIOFailure)
	}
}

func TestRunProjectMode(t *testing.T) {
	path := writeTempSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	projDir := filepath.Join(t.TempDir(), "demo")

	code := run([]string{"--project", projDir, path})
	if code != exitSuccess {
		t.Fatalf("run() = %d, want %d", code, exitSuccess)
	}
	if _, err := os.Stat(filepath.Join(projDir, "src", "main.rs")); err != nil {
		t.Errorf("expected src/main.rs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projDir, "worker", "tnk_worker.py")); err != nil {
		t.Errorf("expected worker/tnk_worker.py: %v", err)
	}
}
