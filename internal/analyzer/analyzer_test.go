package analyzer

import (
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/parser"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

func analyze(t *testing.T, src string) *ir.Module {
	t.Helper()
	prog, bag := parser.Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Errors())
	}
	a := New("t.tnk")
	mod := a.Analyze(prog)
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected analyzer diagnostics: %v", a.Diagnostics().Errors())
	}
	return mod
}

func findFunc(mod *ir.Module, name string) *ir.FunctionDef {
	for _, n := range mod.Body {
		if fd, ok := n.(*ir.FunctionDef); ok && fd.Name == name {
			return fd
		}
	}
	return nil
}

func TestMayRaiseDirectUncaughtRaise(t *testing.T) {
	src := "def check(x: int) -> int:\n    if x < 0:\n        raise ValueError(\"neg\")\n    return x\n"
	mod := analyze(t, src)
	fd := findFunc(mod, "check")
	if fd == nil {
		t.Fatal("function 'check' not found in module")
	}
	if !fd.Flags().MayRaise {
		t.Errorf("expected 'check' to be marked may_raise")
	}
}

func TestMayRaiseFalseWhenRaiseIsCaught(t *testing.T) {
	src := "def safe(x: int) -> int:\n    try:\n        raise ValueError(\"neg\")\n    except ValueError:\n        return 0\n    return x\n"
	mod := analyze(t, src)
	fd := findFunc(mod, "safe")
	if fd == nil {
		t.Fatal("function 'safe' not found in module")
	}
	if fd.Flags().MayRaise {
		t.Errorf("expected 'safe' not to be marked may_raise (raise is caught)")
	}
}

func TestMayRaiseTransitivePropagation(t *testing.T) {
	src := "def inner(x: int) -> int:\n    raise ValueError(\"bad\")\n\ndef outer(x: int) -> int:\n    return inner(x)\n"
	mod := analyze(t, src)
	outer := findFunc(mod, "outer")
	if outer == nil {
		t.Fatal("function 'outer' not found in module")
	}
	if !outer.Flags().MayRaise {
		t.Errorf("expected 'outer' to inherit may_raise from calling 'inner'")
	}
}

func TestMayRaiseAtLastStatementStillLifted(t *testing.T) {
	// Boundary behavior (spec §8): a raise as the final statement must
	// still mark the function may_raise.
	src := "def fail(x: int) -> int:\n    raise RuntimeError(\"always\")\n"
	mod := analyze(t, src)
	fd := findFunc(mod, "fail")
	if fd == nil {
		t.Fatal("function 'fail' not found in module")
	}
	if !fd.Flags().MayRaise {
		t.Errorf("expected trailing raise to still mark may_raise")
	}
}

func TestExternalImportMarksBridgeRequired(t *testing.T) {
	src := "import numpy\n\ndef use(x: int) -> int:\n    y = numpy.array(x)\n    return x\n"
	mod := analyze(t, src)
	fd := findFunc(mod, "use")
	if fd == nil {
		t.Fatal("function 'use' not found in module")
	}
	found := false
	for _, n := range fd.Body {
		if assign, ok := n.(*ir.Assign); ok {
			call, ok := assign.Value.(*ir.MethodCall)
			if !ok {
				t.Fatalf("expected assignment value to be *ir.MethodCall, got %T", assign.Value)
			}
			if !call.Flags().BridgeRequired {
				t.Errorf("expected call through an external import to be bridge_required")
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected to find the assignment statement in function body")
	}
}

func TestMayRaiseMarksCallSiteNotJustFunction(t *testing.T) {
	src := "def inner(x: int) -> int:\n    raise ValueError(\"bad\")\n\ndef outer(x: int) -> int:\n    return inner(x)\n"
	mod := analyze(t, src)
	outer := findFunc(mod, "outer")
	if outer == nil {
		t.Fatal("function 'outer' not found in module")
	}
	ret, ok := outer.Body[len(outer.Body)-1].(*ir.Return)
	if !ok {
		t.Fatalf("expected last statement to be a return, got %T", outer.Body[len(outer.Body)-1])
	}
	call, ok := ret.Value.(*ir.Call)
	if !ok {
		t.Fatalf("expected return value to be *ir.Call, got %T", ret.Value)
	}
	if !call.Flags().MayRaise {
		t.Errorf("expected the call site 'inner(x)' itself to be marked may_raise, not just the enclosing function")
	}
}

func TestMayRaisePropagatesThroughMethodCall(t *testing.T) {
	src := "class Door:\n    def open(self) -> int:\n        raise RuntimeError(\"stuck\")\n\n" +
		"def use(d: Door) -> int:\n    return d.open()\n"
	mod := analyze(t, src)
	use := findFunc(mod, "use")
	if use == nil {
		t.Fatal("function 'use' not found in module")
	}
	if !use.Flags().MayRaise {
		t.Error("expected 'use' to inherit may_raise through a method-call edge in the call graph")
	}
	ret, ok := use.Body[len(use.Body)-1].(*ir.Return)
	if !ok {
		t.Fatalf("expected last statement to be a return, got %T", use.Body[len(use.Body)-1])
	}
	mc, ok := ret.Value.(*ir.MethodCall)
	if !ok {
		t.Fatalf("expected return value to be *ir.MethodCall, got %T", ret.Value)
	}
	if !mc.Flags().MayRaise {
		t.Error("expected the method-call site 'd.open()' to be marked may_raise")
	}
}

func TestNarrowsOptionAfterIsNotNoneCheck(t *testing.T) {
	src := "def describe(x: Optional[int]) -> int:\n    if x is not None:\n        return x\n    return 0\n"
	mod := analyze(t, src)
	fn := findFunc(mod, "describe")
	if fn == nil {
		t.Fatal("function 'describe' not found in module")
	}
	ifNode, ok := fn.Body[0].(*ir.If)
	if !ok {
		t.Fatalf("expected first statement to be an if, got %T", fn.Body[0])
	}
	ret, ok := ifNode.Then[0].(*ir.Return)
	if !ok {
		t.Fatalf("expected then-branch to be a return, got %T", ifNode.Then[0])
	}
	name, ok := ret.Value.(*ir.Name)
	if !ok {
		t.Fatalf("expected return value to be *ir.Name, got %T", ret.Value)
	}
	if _, stillOptional := name.Type().(typesystem.TOption); stillOptional {
		t.Errorf("expected 'x' to be narrowed to its inner type inside the 'is not None' branch, got %s", name.Type())
	}
}

func TestEarlyReturnNarrowsForRestOfFunction(t *testing.T) {
	src := "def describe(x: Optional[int]) -> int:\n    if x is None:\n        return 0\n    return x\n"
	mod := analyze(t, src)
	fn := findFunc(mod, "describe")
	if fn == nil {
		t.Fatal("function 'describe' not found in module")
	}
	ret, ok := fn.Body[len(fn.Body)-1].(*ir.Return)
	if !ok {
		t.Fatalf("expected last statement to be a return, got %T", fn.Body[len(fn.Body)-1])
	}
	name, ok := ret.Value.(*ir.Name)
	if !ok {
		t.Fatalf("expected return value to be *ir.Name, got %T", ret.Value)
	}
	if _, stillOptional := name.Type().(typesystem.TOption); stillOptional {
		t.Errorf("expected 'x' to be narrowed after the 'if x is None: return' guard, got %s", name.Type())
	}
}

func TestUnsupportedBuiltinProducesDiagnostic(t *testing.T) {
	src := "def bad(x: int) -> int:\n    return eval(\"1+1\")\n"
	prog, bag := parser.Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Errors())
	}
	a := New("t.tnk")
	a.Analyze(prog)
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected TNK-UNSUPPORTED-SYNTAX diagnostic for eval() call")
	}
}
