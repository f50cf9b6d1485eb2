package bridge

import (
	"strings"
	"testing"
)

func TestRenderWorkerScriptInlinesSecurityPolicy(t *testing.T) {
	script := RenderWorkerScript([]string{"eval", "exec"}, []string{"_"})
	if !strings.Contains(script, `"eval", "exec"`) {
		t.Errorf("forbidden names not inlined:\n%s", script)
	}
	if !strings.Contains(script, `FORBIDDEN_PREFIXES = ("_")`) {
		t.Errorf("forbidden prefixes not inlined:\n%s", script)
	}
}

func TestRenderWorkerScriptHasDispatchCommands(t *testing.T) {
	script := RenderWorkerScript(nil, nil)
	for _, cmd := range []string{CmdCallFunction, CmdCallMethod, CmdGetAttribute, CmdGetItem, CmdSlice, CmdIter, CmdIterNextBatch, CmdDelete, CmdPing} {
		if !strings.Contains(script, `"`+cmd+`"`) {
			t.Errorf("worker script missing dispatch for %s", cmd)
		}
	}
}
