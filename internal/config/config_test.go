package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrimSourceExt(t *testing.T) {
	cases := map[string]string{
		"prog.tnk":    "prog",
		"script.py":   "script",
		"noext":       "noext",
		"archive.tar": "archive.tar",
	}
	for in, want := range cases {
		if got := TrimSourceExt(in); got != want {
			t.Errorf("TrimSourceExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasSourceExt(t *testing.T) {
	if !HasSourceExt("a/b/prog.tnk") {
		t.Error("expected .tnk to be recognized")
	}
	if !HasSourceExt("script.py") {
		t.Error("expected .py to be recognized")
	}
	if HasSourceExt("readme.md") {
		t.Error("did not expect .md to be recognized")
	}
}

func TestDefaultBridgeConfig(t *testing.T) {
	cfg := DefaultBridgeConfig()
	if cfg.BatchSize != DefaultIteratorBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultIteratorBatchSize)
	}
	if len(cfg.ForbiddenNames) != len(ForbiddenNames) {
		t.Errorf("ForbiddenNames = %v, want copy of %v", cfg.ForbiddenNames, ForbiddenNames)
	}
	found := false
	for _, p := range cfg.ForbiddenPrefixes {
		if p == "_" {
			found = true
		}
	}
	if !found {
		t.Error("expected default ForbiddenPrefixes to include \"_\"")
	}
}

func TestLoadBridgeConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadBridgeConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadBridgeConfig() error = %v, want nil for missing file", err)
	}
	if cfg.WorkerPath != "tnk-worker" {
		t.Errorf("WorkerPath = %q, want default", cfg.WorkerPath)
	}
}

func TestLoadBridgeConfigOverridesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tnk-bridge.yaml")
	yamlSrc := "worker_path: custom-worker\nbatch_size: 250\nforbidden_names:\n  - os.system\n"
	if err := os.WriteFile(path, []byte(yamlSrc), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := LoadBridgeConfig(path)
	if err != nil {
		t.Fatalf("LoadBridgeConfig() error = %v", err)
	}
	if cfg.WorkerPath != "custom-worker" {
		t.Errorf("WorkerPath = %q, want custom-worker", cfg.WorkerPath)
	}
	if cfg.BatchSize != 250 {
		t.Errorf("BatchSize = %d, want 250", cfg.BatchSize)
	}
	if cfg.RPCTimeoutMS != 30000 {
		t.Errorf("RPCTimeoutMS = %d, want default 30000 (unset in fixture)", cfg.RPCTimeoutMS)
	}
	wantNames := len(ForbiddenNames) + 1
	if len(cfg.ForbiddenNames) != wantNames {
		t.Errorf("ForbiddenNames = %v, want %d entries (defaults + os.system)", cfg.ForbiddenNames, wantNames)
	}
}

func TestLoadBridgeConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tnk-bridge.yaml")
	if err := os.WriteFile(path, []byte("worker_path: [unterminated"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	if _, err := LoadBridgeConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
