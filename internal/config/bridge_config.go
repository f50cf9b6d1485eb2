package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BridgeConfig is the tnk-bridge.yaml schema, the same way the teacher's
// ext.Config is the funxy.yaml schema for declaring Go deps: here it
// declares how a generated binary should supervise its companion worker
// process (spec §4.5, §6 "Worker entry point").
type BridgeConfig struct {
	// WorkerPath is the path to the companion interpreter executable/script
	// the runtime crate spawns on first bridge use.
	WorkerPath string `yaml:"worker_path"`

	// BatchSize is B, the number of elements iter_next_batch requests per
	// round trip. Defaults to config.DefaultIteratorBatchSize.
	BatchSize int `yaml:"batch_size,omitempty"`

	// RPCTimeoutMS is written into the runtime crate as
	// DEFAULT_RPC_TIMEOUT_MS and stored on each Bridge. The crate's round
	// trips do not enforce it: a request to a worker that never answers
	// blocks until the worker closes its stdout.
	RPCTimeoutMS int `yaml:"rpc_timeout_ms,omitempty"`

	// ForbiddenNames extends config.ForbiddenNames with project-specific
	// refusals, enforced client-side (defense in depth, §4.5) and again at
	// the worker boundary (§4.6 step 4).
	ForbiddenNames []string `yaml:"forbidden_names,omitempty"`

	// ForbiddenPrefixes blocks attribute names by prefix; "_" is always
	// present regardless of what's configured (spec §3 invariants).
	ForbiddenPrefixes []string `yaml:"forbidden_prefixes,omitempty"`
}

// DefaultBridgeConfig returns the configuration used when no tnk-bridge.yaml
// is present.
func DefaultBridgeConfig() *BridgeConfig {
	return &BridgeConfig{
		WorkerPath:        "tnk-worker",
		BatchSize:         DefaultIteratorBatchSize,
		RPCTimeoutMS:      30000,
		ForbiddenNames:    append([]string{}, ForbiddenNames...),
		ForbiddenPrefixes: []string{"_"},
	}
}

// LoadBridgeConfig reads and parses a tnk-bridge.yaml file, falling back to
// DefaultBridgeConfig for any field left unset.
func LoadBridgeConfig(path string) (*BridgeConfig, error) {
	cfg := DefaultBridgeConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bridge config %s: %w", path, err)
	}

	var parsed BridgeConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing bridge config %s: %w", path, err)
	}

	if parsed.WorkerPath != "" {
		cfg.WorkerPath = parsed.WorkerPath
	}
	if parsed.BatchSize > 0 {
		cfg.BatchSize = parsed.BatchSize
	}
	if parsed.RPCTimeoutMS > 0 {
		cfg.RPCTimeoutMS = parsed.RPCTimeoutMS
	}
	if len(parsed.ForbiddenNames) > 0 {
		cfg.ForbiddenNames = append(cfg.ForbiddenNames, parsed.ForbiddenNames...)
	}
	if len(parsed.ForbiddenPrefixes) > 0 {
		cfg.ForbiddenPrefixes = append(cfg.ForbiddenPrefixes, parsed.ForbiddenPrefixes...)
	}
	return cfg, nil
}
