package pipeline

import (
	"strings"
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/codegen"
)

func TestStandardPipelineGeneratesRustForSimpleFunction(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return a + b\n"
	ctx := Standard(codegen.Standalone).Run(&Context{FilePath: "add.tnk", Source: src})

	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors.Errors())
	}
	if !strings.Contains(ctx.Output, "fn add") {
		t.Errorf("expected generated output to contain fn add, got:\n%s", ctx.Output)
	}
}

func TestStandardPipelineStopsGenerationOnError(t *testing.T) {
	src := "def broken(:\n"
	ctx := Standard(codegen.Standalone).Run(&Context{FilePath: "broken.tnk", Source: src})

	if !ctx.Errors.HasErrors() {
		t.Fatal("expected diagnostics for malformed source")
	}
	if ctx.Output != "" {
		t.Errorf("generator should not run past diagnostics, got output:\n%s", ctx.Output)
	}
}
