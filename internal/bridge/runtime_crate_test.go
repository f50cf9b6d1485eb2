package bridge

import (
	"strings"
	"testing"
)

func TestRuntimeCrateSourceWiresConfig(t *testing.T) {
	src := RuntimeCrateSource("tnk-worker.py", 500, 15000)
	if !strings.Contains(src, "DEFAULT_BATCH_SIZE: usize = 500") {
		t.Errorf("batch size not wired into crate source")
	}
	if !strings.Contains(src, "DEFAULT_RPC_TIMEOUT_MS: u64 = 15000") {
		t.Errorf("rpc timeout not wired into crate source")
	}
	if !strings.Contains(src, `"tnk-worker.py"`) {
		t.Errorf("worker path not wired into crate source")
	}
	if !strings.Contains(src, "pub struct Bridge") {
		t.Errorf("missing Bridge struct in generated crate")
	}
}
