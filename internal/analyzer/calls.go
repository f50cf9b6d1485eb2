package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// matchCall is the ordered specialization point (spec §4.2): range/list/
// len/print/isinstance win over the generic Call when the callee is a bare
// name matching the builtin, exactly the exclusion list original_source's
// matcher carves out of its generic TsuchinokoCall entry.
func (a *Analyzer) matchCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	if ident, ok := n.Callee.(*ast.Identifier); ok {
		if a.forbiddenNames[ident.Value] || a.unsupportedBuiltins[ident.Value] {
			a.errorf(diagnostics.UnsupportedSyntax, n.Token, "%q is not permitted", ident.Value)
			return ir.NewLiteral(nil, typesystem.Any, scope, n.Token.Line)
		}
		switch ident.Value {
		case "range":
			return a.matchRangeCall(n, scope)
		case "list":
			return a.matchListCall(n, scope)
		case "len":
			return a.matchLenCall(n, scope)
		case "print":
			return a.matchPrintCall(n, scope)
		case "isinstance":
			return a.matchIsInstanceCall(n, scope)
		}
		if _, isClass := a.classes[ident.Value]; isClass {
			return a.matchConstructorCall(n, ident.Value, scope)
		}
	}

	callee := a.matchExpr(n.Callee, scope)
	args := make([]ir.Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.matchExpr(arg, scope)
	}
	kwargs := make(map[string]ir.Node, len(n.KwArgs))
	for _, kw := range n.KwArgs {
		kwargs[kw.Name] = a.matchExpr(kw.Value, scope)
	}
	retType := typesystem.Any
	if fn, ok := callee.(*ir.Name); ok {
		if b := a.table.Resolve(fn.Ident, scope); b != nil {
			retType = b.Type
		}
	}
	call := ir.NewCall(callee, args, kwargs, retType, scope, n.Token.Line)
	// External classification (spec §3/§4.3): calling through an
	// Any-typed callee (an external import's name, or an attribute access
	// already routed through the bridge such as `numpy.array`) requires
	// the bridge, the same rule matchMethodCall applies to its receiver.
	if callee.Flags().BridgeRequired || typesystem.IsAny(callee.Type()) {
		call.Flags().BridgeRequired = true
	}
	return call
}

func (a *Analyzer) matchConstructorCall(n *ast.CallExpr, className string, scope symbols.ScopeID) ir.Node {
	args := make([]ir.Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.matchExpr(arg, scope)
	}
	kwargs := make(map[string]ir.Node, len(n.KwArgs))
	for _, kw := range n.KwArgs {
		kwargs[kw.Name] = a.matchExpr(kw.Value, scope)
	}
	return ir.NewCall(ir.NewName(className, typesystem.TStruct{Name: className}, scope, n.Token.Line), args, kwargs,
		typesystem.TStruct{Name: className}, scope, n.Token.Line)
}

func (a *Analyzer) matchRangeCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	var start, stop, step ir.Node
	switch len(n.Args) {
	case 1:
		stop = a.matchExpr(n.Args[0], scope)
	case 2:
		start = a.matchExpr(n.Args[0], scope)
		stop = a.matchExpr(n.Args[1], scope)
	case 3:
		start = a.matchExpr(n.Args[0], scope)
		stop = a.matchExpr(n.Args[1], scope)
		step = a.matchExpr(n.Args[2], scope)
	default:
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "range() expects 1 to 3 arguments")
	}
	return ir.NewRangeCall(start, stop, step, scope, n.Token.Line)
}

func (a *Analyzer) matchListCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	if len(n.Args) != 1 {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "list() expects exactly 1 argument")
		return ir.NewListCall(nil, typesystem.Any, scope, n.Token.Line)
	}
	arg := a.matchExpr(n.Args[0], scope)
	return ir.NewListCall(arg, elementTypeOf(arg.Type()), scope, n.Token.Line)
}

func (a *Analyzer) matchLenCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	if len(n.Args) != 1 {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "len() expects exactly 1 argument")
		return ir.NewLenCall(nil, scope, n.Token.Line)
	}
	return ir.NewLenCall(a.matchExpr(n.Args[0], scope), scope, n.Token.Line)
}

func (a *Analyzer) matchPrintCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	args := make([]ir.Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.matchExpr(arg, scope)
	}
	sep, end := " ", "\n"
	for _, kw := range n.KwArgs {
		lit, ok := kw.Value.(*ast.StringLiteral)
		if !ok {
			continue
		}
		switch kw.Name {
		case "sep":
			sep = lit.Value
		case "end":
			end = lit.Value
		}
	}
	return ir.NewPrintCall(args, sep, end, scope, n.Token.Line)
}

func (a *Analyzer) matchIsInstanceCall(n *ast.CallExpr, scope symbols.ScopeID) ir.Node {
	if len(n.Args) != 2 {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "isinstance() expects exactly 2 arguments")
		return ir.NewLiteral(false, typesystem.Bool, scope, n.Token.Line)
	}
	value := a.matchExpr(n.Args[0], scope)
	ident, ok := n.Args[1].(*ast.Identifier)
	if !ok {
		a.errorf(diagnostics.UnsupportedSyntax, n.Token, "isinstance() second argument must be a class name")
		return ir.NewLiteral(false, typesystem.Bool, scope, n.Token.Line)
	}
	return ir.NewIsInstanceCall(value, ident.Value, scope, n.Token.Line)
}

func (a *Analyzer) matchMethodCall(n *ast.MethodCallExpr, scope symbols.ScopeID) ir.Node {
	recv := a.matchExpr(n.Receiver, scope)
	args := make([]ir.Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.matchExpr(arg, scope)
	}
	kwargs := make(map[string]ir.Node, len(n.KwArgs))
	for _, kw := range n.KwArgs {
		kwargs[kw.Name] = a.matchExpr(kw.Value, scope)
	}
	retType := a.methodReturnType(recv, n.Method)
	mc := ir.NewMethodCall(recv, n.Method, args, kwargs, retType, scope, n.Token.Line)
	// External classification: a method call on a non-struct/non-builtin
	// receiver (i.e. an Any-typed value originating from an external
	// import) always requires the bridge (spec §3 "External classification").
	if typesystem.IsAny(recv.Type()) {
		mc.Flags().BridgeRequired = true
	}
	return mc
}

func (a *Analyzer) methodReturnType(recv ir.Node, method string) typesystem.Type {
	if st, ok := recv.Type().(typesystem.TStruct); ok {
		if cd, ok := a.classes[st.Name]; ok {
			for _, m := range cd.Methods {
				if m.Name == method {
					return m.ReturnType
				}
			}
		}
	}
	return typesystem.Any
}
