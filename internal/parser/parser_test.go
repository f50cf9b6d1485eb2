package parser

import (
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/ast"
)

func TestParseClassWithFieldsAndMethod(t *testing.T) {
	src := "class Point:\n    x: int\n    y: int\n\n    def dist(self) -> int:\n        return self.x + self.y\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Statements))
	}
	cd, ok := prog.Statements[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", prog.Statements[0])
	}
	if len(cd.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(cd.Fields))
	}
	if len(cd.Methods) != 1 || cd.Methods[0].Name != "dist" {
		t.Errorf("expected method 'dist', got %+v", cd.Methods)
	}
}

func TestParseTryExceptElseFinally(t *testing.T) {
	src := "try:\n    x = 1\nexcept ValueError as e:\n    raise RuntimeError(\"bad\") from e\nelse:\n    x = 2\nfinally:\n    x = 3\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	tryStmt, ok := prog.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected *ast.TryStmt, got %T", prog.Statements[0])
	}
	if len(tryStmt.Excepts) != 1 || tryStmt.Excepts[0].Kind != "ValueError" || tryStmt.Excepts[0].As != "e" {
		t.Errorf("unexpected except clause: %+v", tryStmt.Excepts)
	}
	if len(tryStmt.Else) != 1 {
		t.Errorf("expected 1 else statement, got %d", len(tryStmt.Else))
	}
	if len(tryStmt.Finally) != 1 {
		t.Errorf("expected 1 finally statement, got %d", len(tryStmt.Finally))
	}
	raise, ok := tryStmt.Excepts[0].Body[0].(*ast.RaiseStmt)
	if !ok {
		t.Fatalf("expected *ast.RaiseStmt in except body, got %T", tryStmt.Excepts[0].Body[0])
	}
	if raise.Kind != "RuntimeError" || raise.From == nil {
		t.Errorf("expected RuntimeError raise with 'from' clause, got %+v", raise)
	}
}

func TestParseChainedComparison(t *testing.T) {
	src := "x = a < b < c\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	assign, ok := prog.Statements[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", prog.Statements[0])
	}
	cmp, ok := assign.Value.(*ast.CompareExpr)
	if !ok {
		t.Fatalf("expected *ast.CompareExpr, got %T", assign.Value)
	}
	if len(cmp.Operands) != 3 || len(cmp.Ops) != 2 {
		t.Errorf("expected 3 operands/2 ops for chained comparison, got %+v", cmp)
	}
}

func TestParseTupleSwap(t *testing.T) {
	src := "a, b = b, a\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	assign, ok := prog.Statements[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", prog.Statements[0])
	}
	if _, ok := assign.Target.(*ast.TupleExpr); !ok {
		t.Fatalf("expected tuple target, got %T", assign.Target)
	}
	if _, ok := assign.Value.(*ast.TupleExpr); !ok {
		t.Fatalf("expected tuple value, got %T", assign.Value)
	}
}

func TestParseListComprehensionWithFilter(t *testing.T) {
	src := "y = [x * 2 for x in items if x > 0]\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	assign, ok := prog.Statements[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", prog.Statements[0])
	}
	comp, ok := assign.Value.(*ast.ListCompExpr)
	if !ok {
		t.Fatalf("expected *ast.ListCompExpr, got %T", assign.Value)
	}
	if len(comp.Clauses) != 1 || len(comp.Clauses[0].Ifs) != 1 {
		t.Errorf("expected one clause with one filter, got %+v", comp.Clauses)
	}
}

func TestParseMainGuard(t *testing.T) {
	src := "if __name__ == \"__main__\":\n    pass\n"
	prog, bag := Parse(src, "t.tnk")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Errors())
	}
	if _, ok := prog.Statements[0].(*ast.MainGuardStmt); !ok {
		t.Fatalf("expected *ast.MainGuardStmt, got %T", prog.Statements[0])
	}
}
