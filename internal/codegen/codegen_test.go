package codegen

import (
	"strings"
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/analyzer"
	"github.com/tanep3/Tsuchinoko/internal/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, bag := parser.Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Errors())
	}
	a := analyzer.New("t.tnk")
	mod := a.Analyze(prog)
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected analyzer diagnostics: %v", a.Diagnostics().Errors())
	}
	g := New(Standalone)
	out := g.Generate(mod)
	if g.Diagnostics().HasErrors() {
		t.Fatalf("unexpected codegen diagnostics: %v", g.Diagnostics().Errors())
	}
	return out
}

func TestGenerateSimpleFunctionSignature(t *testing.T) {
	out := generate(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if !strings.Contains(out, "fn add") {
		t.Errorf("expected fn add in output:\n%s", out)
	}
	if !strings.Contains(out, "a + b") {
		t.Errorf("expected body 'a + b' in output:\n%s", out)
	}
}

func TestMayRaiseFunctionReturnsResult(t *testing.T) {
	src := "def check(x: int) -> int:\n    if x < 0:\n        raise ValueError(\"neg\")\n    return x\n"
	out := generate(t, src)
	if !strings.Contains(out, "Result<") {
		t.Errorf("expected a may_raise function to return Result<...>, got:\n%s", out)
	}
	if !strings.Contains(out, "TnkError") {
		t.Errorf("expected TnkError in result-carrying signature, got:\n%s", out)
	}
}

func TestNonRaisingFunctionHasPlainReturnType(t *testing.T) {
	out := generate(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if strings.Contains(out, "fn add") && strings.Contains(out, "Result<i64") {
		t.Errorf("expected non-may_raise function to avoid Result<...>, got:\n%s", out)
	}
}

func TestBridgeCallEmittedForExternalMethod(t *testing.T) {
	src := "import numpy\n\ndef use(x: int) -> int:\n    y = numpy.array(x)\n    return x\n"
	out := generate(t, src)
	if !strings.Contains(out, "Bridge::call_method") {
		t.Errorf("expected Bridge::call_method for external numpy.array call, got:\n%s", out)
	}
}

func TestRaiseFromPopulatesCause(t *testing.T) {
	src := "def validate(x: int) -> int:\n    if x < 0:\n        raise ValueError(\"neg\")\n    return x\n\n" +
		"def wrap(x: int) -> int:\n    try:\n        return validate(x)\n    except ValueError as e:\n        raise RuntimeError(\"bad\") from e\n"
	out := generate(t, src)
	if !strings.Contains(out, "cause: Some(") {
		t.Errorf("expected 'raise ... from e' to populate cause, got:\n%s", out)
	}
}

func TestRangeWithStepEmitsStepBy(t *testing.T) {
	src := "def evens(n: int) -> int:\n    for i in range(0, n, 2):\n        print(i)\n    return n\n"
	out := generate(t, src)
	if !strings.Contains(out, ".step_by(2 as usize)") {
		t.Errorf("expected range(0, n, 2) to lower to a .step_by(2 as usize) iterator, got:\n%s", out)
	}
}

func TestMayRaiseCallSiteUsesQuestionMarkNotUnwrap(t *testing.T) {
	src := "def inner(x: int) -> int:\n    if x < 0:\n        raise ValueError(\"neg\")\n    return x\n\n" +
		"def outer(x: int) -> int:\n    return inner(x)\n"
	out := generate(t, src)
	if !strings.Contains(out, "inner(x)?") {
		t.Errorf("expected the call site 'inner(x)' to propagate with '?', got:\n%s", out)
	}
}

func TestVariableHoistedAcrossIfBranches(t *testing.T) {
	src := "def pick(flag: bool) -> int:\n    if flag:\n        result = 1\n    else:\n        result = 2\n    return result\n"
	out := generate(t, src)
	if !strings.Contains(out, "let mut result") {
		t.Errorf("expected hoisted pre-declaration of 'result', got:\n%s", out)
	}
}
