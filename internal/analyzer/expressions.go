package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// matchExpr dispatches an AST expression to an IR node. Call nodes are
// examined first for the specialized builtins (range/list/len/print/
// isinstance) before falling through to a generic ir.Call/MethodCall, the
// same ordering original_source's NODE_CLASSES applies ahead of its
// catch-all TsuchinokoCall entry.
func (a *Analyzer) matchExpr(e ast.Expression, scope symbols.ScopeID) ir.Node {
	switch n := e.(type) {
	case *ast.Identifier:
		return a.matchIdentifier(n, scope)
	case *ast.IntLiteral:
		return ir.NewLiteral(n.Value, typesystem.Int, scope, n.Token.Line)
	case *ast.FloatLiteral:
		return ir.NewLiteral(n.Value, typesystem.Float, scope, n.Token.Line)
	case *ast.StringLiteral:
		return ir.NewLiteral(n.Value, typesystem.Str, scope, n.Token.Line)
	case *ast.BoolLiteral:
		return ir.NewLiteral(n.Value, typesystem.Bool, scope, n.Token.Line)
	case *ast.NoneLiteral:
		return ir.NewLiteral(nil, typesystem.Unit, scope, n.Token.Line)
	case *ast.FStringLiteral:
		return a.matchFString(n, scope)
	case *ast.BinaryExpr:
		left := a.matchExpr(n.Left, scope)
		right := a.matchExpr(n.Right, scope)
		return ir.NewBinOp(n.Op, left, right, binOpType(n.Op, left.Type(), right.Type()), scope, n.Token.Line)
	case *ast.UnaryExpr:
		operand := a.matchExpr(n.Operand, scope)
		return ir.NewUnaryOp(n.Op, operand, operand.Type(), scope, n.Token.Line)
	case *ast.CompareExpr:
		operands := make([]ir.Node, len(n.Operands))
		for i, o := range n.Operands {
			operands[i] = a.matchExpr(o, scope)
		}
		return ir.NewCompare(operands, n.Ops, scope, n.Token.Line)
	case *ast.BoolOpExpr:
		return a.matchBoolOp(n, scope)
	case *ast.IsExpr:
		return a.matchIsExpr(n, scope)
	case *ast.CallExpr:
		return a.matchCall(n, scope)
	case *ast.MethodCallExpr:
		return a.matchMethodCall(n, scope)
	case *ast.AttributeExpr:
		recv := a.matchExpr(n.Value, scope)
		attr := ir.NewAttribute(recv, n.Attr, a.attrType(recv, n.Attr), scope, n.Token.Line)
		// External classification (spec §3/§4.3): attribute access on an
		// Any-typed receiver (an external import or another bridge value)
		// always requires the bridge.
		if typesystem.IsAny(recv.Type()) {
			attr.Flags().BridgeRequired = true
		}
		return attr
	case *ast.IndexExpr:
		recv := a.matchExpr(n.Value, scope)
		key := a.matchExpr(n.Index, scope)
		item := ir.NewItemAccess(recv, key, indexResultType(recv.Type()), scope, n.Token.Line)
		if typesystem.IsAny(recv.Type()) {
			item.Flags().BridgeRequired = true
		}
		return item
	case *ast.SliceExpr:
		recv := a.matchExpr(n.Value, scope)
		var start, stop, step ir.Node
		if n.Start != nil {
			start = a.matchExpr(n.Start, scope)
		}
		if n.Stop != nil {
			stop = a.matchExpr(n.Stop, scope)
		}
		if n.Step != nil {
			step = a.matchExpr(n.Step, scope)
		}
		return ir.NewSlice(recv, start, stop, step, recv.Type(), scope, n.Token.Line)
	case *ast.ListExpr:
		return a.matchListExpr(n, scope)
	case *ast.SetExpr:
		return a.matchSetExpr(n, scope)
	case *ast.TupleExpr:
		return a.matchTupleExpr(n, scope)
	case *ast.DictExpr:
		return a.matchDictExpr(n, scope)
	case *ast.ListCompExpr:
		return a.matchListComp(n, scope)
	case *ast.SetCompExpr:
		return a.matchSetComp(n, scope)
	case *ast.DictCompExpr:
		return a.matchDictComp(n, scope)
	case *ast.LambdaExpr:
		return a.matchLambda(n, scope)
	}
	a.errorf(diagnostics.UnsupportedSyntax, e.GetToken(), "unsupported expression form")
	return ir.NewLiteral(nil, typesystem.Any, scope, e.GetToken().Line)
}

func (a *Analyzer) matchIdentifier(n *ast.Identifier, scope symbols.ScopeID) ir.Node {
	b := a.table.Resolve(n.Value, scope)
	t := typesystem.Any
	if b != nil {
		t = b.Type
	} else {
		a.errorf(diagnostics.UnresolvedName, n.Token, "undeclared name %q", n.Value)
	}
	return ir.NewName(n.Value, t, scope, n.Token.Line)
}

func (a *Analyzer) matchBoolOp(n *ast.BoolOpExpr, scope symbols.ScopeID) ir.Node {
	operands := make([]ir.Node, len(n.Operands))
	for i, o := range n.Operands {
		operands[i] = a.matchExpr(o, scope)
	}
	var result ir.Node = operands[0]
	for i := 1; i < len(operands); i++ {
		result = ir.NewBinOp(n.Op, result, operands[i], typesystem.Bool, scope, n.Token.Line)
	}
	return result
}

// matchIsExpr lowers `x is None` / `x is not None` to a Compare node that
// codegen recognizes for Option narrowing (spec §3 "Narrowing rules").
func (a *Analyzer) matchIsExpr(n *ast.IsExpr, scope symbols.ScopeID) ir.Node {
	operand := a.matchExpr(n.Operand, scope)
	op := "is"
	if n.Negated {
		op = "is not"
	}
	none := ir.NewLiteral(nil, typesystem.Unit, scope, n.Token.Line)
	return ir.NewCompare([]ir.Node{operand, none}, []string{op}, scope, n.Token.Line)
}

func (a *Analyzer) attrType(recv ir.Node, attr string) typesystem.Type {
	if st, ok := recv.Type().(typesystem.TStruct); ok {
		if cd, ok := a.classes[st.Name]; ok {
			for _, f := range cd.Fields {
				if f.Name == attr {
					return f.Type
				}
			}
		}
	}
	return typesystem.Any
}

func indexResultType(t typesystem.Type) typesystem.Type {
	switch v := t.(type) {
	case typesystem.TList:
		return v.Elem
	case typesystem.TDict:
		return v.Value
	}
	return typesystem.Any
}

func binOpType(op string, l, r typesystem.Type) typesystem.Type {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		return typesystem.Bool
	}
	if typesystem.IsAny(l) {
		return r
	}
	return l
}
