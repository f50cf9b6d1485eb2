package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

func (a *Analyzer) matchAssign(n *ast.AssignStmt, scope symbols.ScopeID) ir.Node {
	value := a.matchExpr(n.Value, scope)

	name, ok := n.Target.(*ast.Identifier)
	if !ok {
		if tup, ok := n.Target.(*ast.TupleExpr); ok {
			return a.matchTupleUnpack(tup, value, scope, n.Token.Line)
		}
		if attr, ok := n.Target.(*ast.AttributeExpr); ok {
			recv := a.matchExpr(attr.Value, scope)
			return ir.NewAttrAssign(recv, attr.Attr, value, scope, n.Token.Line)
		}
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "unsupported assignment target")
		return nil
	}

	declType := value.Type()
	if n.TypeAnnot != "" {
		declType = a.parseAnnot(n.TypeAnnot)
	}
	existing := a.table.Resolve(name.Value, scope)
	first := existing == nil
	if first {
		hoistScope := a.tree.EnclosingNonBlock(scope)
		a.table.Declare(&symbols.Binding{Name: name.Value, Scope: hoistScope, Type: declType, Hoisted: hoistScope != scope})
	} else {
		a.table.Update(name.Value, existing.Scope, typesystem.Join(existing.Type, declType))
	}
	return ir.NewAssign(name.Value, value, first, declType, scope, n.Token.Line)
}

func (a *Analyzer) matchTupleUnpack(tup *ast.TupleExpr, value ir.Node, scope symbols.ScopeID, line int) ir.Node {
	targets := make([]string, 0, len(tup.Elements))
	firsts := make([]bool, 0, len(tup.Elements))
	for _, el := range tup.Elements {
		ident, ok := el.(*ast.Identifier)
		if !ok {
			a.errorf(diagnostics.UnsupportedSyntax, el.GetToken(), "unsupported tuple-unpack target")
			continue
		}
		existing := a.table.Resolve(ident.Value, scope)
		first := existing == nil
		if first {
			hoistScope := a.tree.EnclosingNonBlock(scope)
			a.table.Declare(&symbols.Binding{Name: ident.Value, Scope: hoistScope, Type: typesystem.Any})
		}
		targets = append(targets, ident.Value)
		firsts = append(firsts, first)
	}
	return ir.NewTupleUnpack(targets, value, firsts, scope, line)
}

func (a *Analyzer) matchAugAssign(n *ast.AugAssignStmt, scope symbols.ScopeID) ir.Node {
	name, ok := n.Target.(*ast.Identifier)
	if !ok {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "unsupported augmented-assignment target")
		return nil
	}
	value := a.matchExpr(n.Value, scope)
	return ir.NewAugAssign(name.Value, n.Op, value, scope, n.Token.Line)
}

func (a *Analyzer) matchIf(n *ast.IfStmt, scope symbols.ScopeID) ir.Node {
	cond := a.matchExpr(n.Cond, scope)
	thenScope := a.tree.New(scope, symbols.ScopeBlock)
	elseScope := a.tree.New(scope, symbols.ScopeBlock)

	// Narrowing pass (spec §3/§4.3): a branch condition of the form
	// `x is [not] None` or `isinstance(x, C)` refines x's type for the
	// duration of the branch where it holds.
	thenFacts, elseFacts := narrowingFacts(cond)
	for _, f := range thenFacts {
		a.table.Declare(&symbols.Binding{Name: f.name, Scope: thenScope, Type: f.typ})
	}
	for _, f := range elseFacts {
		a.table.Declare(&symbols.Binding{Name: f.name, Scope: elseScope, Type: f.typ})
	}

	then := a.matchBlock(n.Body, thenScope)
	els := a.matchBlock(n.Else, elseScope)

	// Early-return narrowing: when the only branch that runs unconditionally
	// exits (return/raise/break/continue), the other branch's facts hold for
	// whatever statement follows the if in the enclosing scope.
	if len(n.Else) == 0 && blockAlwaysExits(then) {
		for _, f := range elseFacts {
			a.narrowExisting(f.name, scope, f.typ)
		}
	} else if len(n.Else) > 0 && blockAlwaysExits(els) {
		for _, f := range thenFacts {
			a.narrowExisting(f.name, scope, f.typ)
		}
	}

	return ir.NewIf(cond, then, els, thenScope, elseScope, scope, n.Token.Line)
}

func (a *Analyzer) matchFor(n *ast.ForStmt, scope symbols.ScopeID) ir.Node {
	iterable := a.matchExpr(n.Iter, scope)
	bodyScope := a.tree.New(scope, symbols.ScopeBlock)

	ident, ok := n.Target.(*ast.Identifier)
	varName := "_"
	if ok {
		varName = ident.Value
	} else {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "unsupported for-loop target")
	}

	elemType := elementTypeOf(iterable.Type())
	a.table.Declare(&symbols.Binding{Name: varName, Scope: bodyScope, Type: elemType})

	body := a.matchBlock(n.Body, bodyScope)
	return ir.NewFor(varName, iterable, body, bodyScope, scope, n.Token.Line)
}

func elementTypeOf(t typesystem.Type) typesystem.Type {
	switch v := t.(type) {
	case typesystem.TList:
		return v.Elem
	case typesystem.TSet:
		return v.Elem
	}
	return typesystem.Any
}

func (a *Analyzer) matchWhile(n *ast.WhileStmt, scope symbols.ScopeID) ir.Node {
	cond := a.matchExpr(n.Cond, scope)
	bodyScope := a.tree.New(scope, symbols.ScopeBlock)
	body := a.matchBlock(n.Body, bodyScope)
	return ir.NewWhile(cond, body, bodyScope, scope, n.Token.Line)
}

func (a *Analyzer) matchTry(n *ast.TryStmt, scope symbols.ScopeID) ir.Node {
	bodyScope := a.tree.New(scope, symbols.ScopeBlock)
	body := a.matchBlock(n.Body, bodyScope)

	excepts := make([]ir.ExceptClause, 0, len(n.Excepts))
	for _, ex := range n.Excepts {
		exScope := a.tree.New(scope, symbols.ScopeBlock)
		if ex.As != "" {
			a.table.Declare(&symbols.Binding{Name: ex.As, Scope: exScope, Type: typesystem.Any})
		}
		kinds := []string{}
		if ex.Kind != "" {
			kinds = append(kinds, ex.Kind)
		}
		excepts = append(excepts, ir.ExceptClause{Kinds: kinds, Name: ex.As, Body: a.matchBlock(ex.Body, exScope)})
	}

	elseScope := a.tree.New(scope, symbols.ScopeBlock)
	finallyScope := a.tree.New(scope, symbols.ScopeBlock)
	els := a.matchBlock(n.Else, elseScope)
	fin := a.matchBlock(n.Finally, finallyScope)

	return ir.NewTry(body, excepts, els, fin, scope, n.Token.Line)
}

func (a *Analyzer) matchRaise(n *ast.RaiseStmt, scope symbols.ScopeID) ir.Node {
	var msg, cause ir.Node
	if n.Message != nil {
		msg = a.matchExpr(n.Message, scope)
	}
	if n.From != nil {
		cause = a.matchExpr(n.From, scope)
	}
	return ir.NewRaise(n.Kind, msg, cause, scope, n.Token.Line)
}

func (a *Analyzer) matchWith(n *ast.WithStmt, scope symbols.ScopeID) ir.Node {
	bodyScope := a.tree.New(scope, symbols.ScopeBlock)
	// Only the single-item form is lowered directly; additional items are
	// nested here as inner With nodes (spec §6 "with-scoped acquisition"),
	// matched one item at a time like original_source's recursive
	// emit_statement, so the statement body is matched once, inside the
	// innermost item.
	if len(n.Items) == 0 {
		return nil
	}
	item := n.Items[0]
	expr := a.matchExpr(item.Expr, scope)
	if item.As != "" {
		a.table.Declare(&symbols.Binding{Name: item.As, Scope: bodyScope, Type: expr.Type()})
	}
	var body []ir.Node
	if len(n.Items) > 1 {
		rest := &ast.WithStmt{Token: n.Token, Items: n.Items[1:], Body: n.Body}
		inner := a.matchWith(rest, bodyScope)
		if inner != nil {
			body = []ir.Node{inner}
		}
	} else {
		body = a.matchBlock(n.Body, bodyScope)
	}
	return ir.NewWith(expr, item.As, body, bodyScope, scope, n.Token.Line)
}
