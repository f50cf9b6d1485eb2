package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

func (a *Analyzer) matchListExpr(n *ast.ListExpr, scope symbols.ScopeID) ir.Node {
	elems := make([]ir.Node, len(n.Elements))
	elemType := typesystem.Type(typesystem.Any)
	for i, e := range n.Elements {
		elems[i] = a.matchExpr(e, scope)
		if i == 0 {
			elemType = elems[i].Type()
		}
	}
	return ir.NewListLit(elems, typesystem.TList{Elem: elemType}, scope, n.Token.Line)
}

func (a *Analyzer) matchSetExpr(n *ast.SetExpr, scope symbols.ScopeID) ir.Node {
	elems := make([]ir.Node, len(n.Elements))
	elemType := typesystem.Type(typesystem.Any)
	for i, e := range n.Elements {
		elems[i] = a.matchExpr(e, scope)
		if i == 0 {
			elemType = elems[i].Type()
		}
	}
	return ir.NewSetLit(elems, typesystem.TSet{Elem: elemType}, scope, n.Token.Line)
}

func (a *Analyzer) matchTupleExpr(n *ast.TupleExpr, scope symbols.ScopeID) ir.Node {
	elems := make([]ir.Node, len(n.Elements))
	types := make([]typesystem.Type, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = a.matchExpr(e, scope)
		types[i] = elems[i].Type()
	}
	return ir.NewTupleLit(elems, typesystem.TTuple{Elems: types}, scope, n.Token.Line)
}

func (a *Analyzer) matchDictExpr(n *ast.DictExpr, scope symbols.ScopeID) ir.Node {
	entries := make([]ir.DictEntry, len(n.Entries))
	keyType, valType := typesystem.Type(typesystem.Any), typesystem.Type(typesystem.Any)
	for i, e := range n.Entries {
		k := a.matchExpr(e.Key, scope)
		v := a.matchExpr(e.Value, scope)
		entries[i] = ir.DictEntry{Key: k, Value: v}
		if i == 0 {
			keyType, valType = k.Type(), v.Type()
		}
	}
	return ir.NewDictLit(entries, typesystem.TDict{Key: keyType, Value: valType}, scope, n.Token.Line)
}

func (a *Analyzer) matchClauses(clauses []ast.CompFor, scope symbols.ScopeID) ([]ir.CompClause, symbols.ScopeID) {
	out := make([]ir.CompClause, len(clauses))
	inner := scope
	for i, c := range clauses {
		iter := a.matchExpr(c.Iter, inner)
		clauseScope := a.tree.New(inner, symbols.ScopeBlock)
		ident, ok := c.Target.(*ast.Identifier)
		varName := "_"
		if ok {
			varName = ident.Value
		}
		a.table.Declare(&symbols.Binding{Name: varName, Scope: clauseScope, Type: elementTypeOf(iter.Type())})
		ifs := make([]ir.Node, len(c.Ifs))
		for j, cond := range c.Ifs {
			ifs[j] = a.matchExpr(cond, clauseScope)
		}
		out[i] = ir.CompClause{VarName: varName, Iterable: iter, Ifs: ifs}
		inner = clauseScope
	}
	return out, inner
}

func (a *Analyzer) matchListComp(n *ast.ListCompExpr, scope symbols.ScopeID) ir.Node {
	clauses, innerScope := a.matchClauses(n.Clauses, scope)
	elem := a.matchExpr(n.Element, innerScope)
	return ir.NewComprehension(ir.CompList, elem, nil, clauses, typesystem.TList{Elem: elem.Type()}, scope, n.Token.Line)
}

func (a *Analyzer) matchSetComp(n *ast.SetCompExpr, scope symbols.ScopeID) ir.Node {
	clauses, innerScope := a.matchClauses(n.Clauses, scope)
	elem := a.matchExpr(n.Element, innerScope)
	return ir.NewComprehension(ir.CompSet, elem, nil, clauses, typesystem.TSet{Elem: elem.Type()}, scope, n.Token.Line)
}

func (a *Analyzer) matchDictComp(n *ast.DictCompExpr, scope symbols.ScopeID) ir.Node {
	clauses, innerScope := a.matchClauses(n.Clauses, scope)
	key := a.matchExpr(n.Key, innerScope)
	val := a.matchExpr(n.Value, innerScope)
	return ir.NewComprehension(ir.CompDict, val, key, clauses, typesystem.TDict{Key: key.Type(), Value: val.Type()}, scope, n.Token.Line)
}

func (a *Analyzer) matchLambda(n *ast.LambdaExpr, scope symbols.ScopeID) ir.Node {
	lambdaScope := a.tree.New(scope, symbols.ScopeFunction)
	params := make([]ir.Param, len(n.Params))
	paramTypes := make([]typesystem.Type, len(n.Params))
	for i, p := range n.Params {
		pt := a.parseAnnot(p.TypeAnnot)
		params[i] = ir.Param{Name: p.Name, Type: pt}
		paramTypes[i] = pt
		a.table.Declare(&symbols.Binding{Name: p.Name, Scope: lambdaScope, Type: pt, IsParameter: true})
	}
	body := a.matchExpr(n.Body, lambdaScope)
	return ir.NewLambda(params, body, typesystem.TCallable{Params: paramTypes, Ret: body.Type()}, scope, n.Token.Line)
}

func (a *Analyzer) matchFString(n *ast.FStringLiteral, scope symbols.ScopeID) ir.Node {
	parts := make([]ir.FStringPart, 0, len(n.TextParts)+len(n.Exprs))
	for i, text := range n.TextParts {
		if text != "" {
			parts = append(parts, ir.FStringPart{Literal: text})
		}
		if i < len(n.Exprs) {
			parts = append(parts, ir.FStringPart{Expr: a.matchExpr(n.Exprs[i], scope)})
		}
	}
	return ir.NewFString(parts, scope, n.Token.Line)
}
