// Package project assembles project-mode output: a Cargo crate directory
// around the Rust source C4 emits, instead of a single standalone .rs file
// (spec §1 "Output modes", §4.4). It is deliberately thin — this compiler
// never invokes cargo itself (§1's scope note excludes a build step) — but
// follows the same directory-assembly shape as the teacher's
// internal/ext.Builder: write a manifest, write generated sources under a
// conventional layout, done.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config describes the crate being assembled.
type Config struct {
	// Name is the crate name, used in Cargo.toml and as the binary name.
	Name string
	// Dir is the destination directory; created if missing.
	Dir string
	// BridgeCratePath, if set, adds a path dependency on the local bridge
	// runtime crate instead of a registry version (used during development
	// of the bridge crate itself; see internal/bridge).
	BridgeCratePath string
}

// Result is the outcome of a successful Assemble.
type Result struct {
	Dir         string
	ManifestPath string
	MainPath    string
}

// Assemble writes a Cargo project at cfg.Dir containing source as
// src/main.rs, a Cargo.toml declaring the tnk_bridge dependency, and a
// worker/ subdirectory for the embedded companion script. Assemble only
// creates the directory; cmd/tnk's writeProject writes the script into it
// from bridge.RenderWorkerScript.
func Assemble(cfg Config, source string) (*Result, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("project: crate name is required")
	}
	srcDir := filepath.Join(cfg.Dir, "src")
	workerDir := filepath.Join(cfg.Dir, "worker")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return nil, fmt.Errorf("project: creating src dir: %w", err)
	}
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return nil, fmt.Errorf("project: creating worker dir: %w", err)
	}

	mainPath := filepath.Join(srcDir, "main.rs")
	if err := os.WriteFile(mainPath, []byte(source), 0o644); err != nil {
		return nil, fmt.Errorf("project: writing main.rs: %w", err)
	}

	manifestPath := filepath.Join(cfg.Dir, "Cargo.toml")
	if err := os.WriteFile(manifestPath, []byte(manifest(cfg)), 0o644); err != nil {
		return nil, fmt.Errorf("project: writing Cargo.toml: %w", err)
	}

	return &Result{Dir: cfg.Dir, ManifestPath: manifestPath, MainPath: mainPath}, nil
}

// manifest renders Cargo.toml for the generated crate, declaring the
// runtime dependencies C4's output needs: the tnk_bridge client crate
// (§4.6) plus serde_json for the NDJSON wire format it speaks to the
// worker.
func manifest(cfg Config) string {
	bridgeDep := `tnk_bridge = "0.1"`
	if cfg.BridgeCratePath != "" {
		bridgeDep = fmt.Sprintf("tnk_bridge = { path = %q }", cfg.BridgeCratePath)
	}
	return fmt.Sprintf(`[package]
name = %q
version = "0.1.0"
edition = "2021"

[[bin]]
name = %q
path = "src/main.rs"

[dependencies]
%s
serde = { version = "1", features = ["derive"] }
serde_json = "1"
uuid = { version = "1", features = ["v4"] }
`, cfg.Name, cfg.Name, bridgeDep)
}
