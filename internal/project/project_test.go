package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssembleWritesMainAndManifest(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "project_test_*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	res, err := Assemble(Config{Name: "demo", Dir: tmpDir}, "fn main() {}\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	data, err := os.ReadFile(res.MainPath)
	if err != nil {
		t.Fatalf("reading main.rs: %v", err)
	}
	if string(data) != "fn main() {}\n" {
		t.Errorf("main.rs content = %q", string(data))
	}

	manifestData, err := os.ReadFile(res.ManifestPath)
	if err != nil {
		t.Fatalf("reading Cargo.toml: %v", err)
	}
	if !strings.Contains(string(manifestData), `name = "demo"`) {
		t.Errorf("Cargo.toml missing crate name: %s", manifestData)
	}
	if !strings.Contains(string(manifestData), `tnk_bridge = "0.1"`) {
		t.Errorf("Cargo.toml missing registry bridge dependency: %s", manifestData)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "worker")); err != nil {
		t.Errorf("worker dir not created: %v", err)
	}
}

func TestAssembleWithLocalBridgeCrate(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "project_test_*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	res, err := Assemble(Config{Name: "demo", Dir: tmpDir, BridgeCratePath: "../tnk_bridge"}, "")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	data, _ := os.ReadFile(res.ManifestPath)
	if !strings.Contains(string(data), `path = "../tnk_bridge"`) {
		t.Errorf("Cargo.toml missing path dependency: %s", data)
	}
}

func TestAssembleRequiresName(t *testing.T) {
	if _, err := Assemble(Config{Dir: "/tmp/whatever"}, ""); err == nil {
		t.Fatal("expected error for missing crate name")
	}
}
