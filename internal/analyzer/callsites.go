package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// qualifiedCallee returns the a.funcs key a call site resolves to: the bare
// name for a plain Call through an *ir.Name, or "Class.method" for a
// MethodCall whose receiver is a known struct type. Calls through anything
// else (an expression callee, a bridge-routed Any receiver) aren't
// project-local functions and can't participate in may_raise propagation.
func qualifiedCallee(n ir.Node) (string, bool) {
	switch v := n.(type) {
	case *ir.Call:
		name, ok := v.Callee.(*ir.Name)
		if !ok {
			return "", false
		}
		return name.Ident, true
	case *ir.MethodCall:
		st, ok := v.Receiver.Type().(typesystem.TStruct)
		if !ok {
			return "", false
		}
		return st.Name + "." + v.Method, true
	}
	return "", false
}

// walkCallSites visits every Call/MethodCall node reachable from body,
// including ones nested arbitrarily deep in expressions, invoking visit
// with the resolved qualifiedCallee name whenever one exists. Both the
// call-graph builder (defs.go) and the post-effect-pass call-site marker
// (effects.go) share this traversal so neither can silently diverge from
// the other about which call sites exist (spec §4.3 "transitively calls
// another may_raise function").
func walkCallSites(body []ir.Node, visit func(string, ir.Node)) {
	for _, n := range body {
		walkCallSitesStmt(n, visit)
	}
}

func walkCallSitesStmt(n ir.Node, visit func(string, ir.Node)) {
	switch v := n.(type) {
	case *ir.Assign:
		walkCallSitesExpr(v.Value, visit)
	case *ir.AttrAssign:
		walkCallSitesExpr(v.Receiver, visit)
		walkCallSitesExpr(v.Value, visit)
	case *ir.AugAssign:
		walkCallSitesExpr(v.Value, visit)
	case *ir.TupleUnpack:
		walkCallSitesExpr(v.Value, visit)
	case *ir.If:
		walkCallSitesExpr(v.Cond, visit)
		walkCallSites(v.Then, visit)
		walkCallSites(v.Else, visit)
	case *ir.For:
		walkCallSitesExpr(v.Iterable, visit)
		walkCallSites(v.Body, visit)
	case *ir.While:
		walkCallSitesExpr(v.Cond, visit)
		walkCallSites(v.Body, visit)
	case *ir.Try:
		walkCallSites(v.Body, visit)
		for _, ex := range v.Excepts {
			walkCallSites(ex.Body, visit)
		}
		walkCallSites(v.Else, visit)
		walkCallSites(v.Finally, visit)
	case *ir.With:
		walkCallSitesExpr(v.Expr, visit)
		walkCallSites(v.Body, visit)
	case *ir.Raise:
		walkCallSitesExpr(v.Msg, visit)
		walkCallSitesExpr(v.Cause, visit)
	case *ir.Return:
		walkCallSitesExpr(v.Value, visit)
	default:
		// A bare expression statement (e.g. a top-level method call whose
		// result is discarded) is itself the node; it is also a valid call
		// site to visit.
		walkCallSitesExpr(n, visit)
	}
}

func walkCallSitesExpr(n ir.Node, visit func(string, ir.Node)) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *ir.Call:
		walkCallSitesExpr(v.Callee, visit)
		for _, arg := range v.Args {
			walkCallSitesExpr(arg, visit)
		}
		for _, kw := range v.Kwargs {
			walkCallSitesExpr(kw, visit)
		}
		if name, ok := qualifiedCallee(v); ok {
			visit(name, v)
		}
	case *ir.MethodCall:
		walkCallSitesExpr(v.Receiver, visit)
		for _, arg := range v.Args {
			walkCallSitesExpr(arg, visit)
		}
		for _, kw := range v.Kwargs {
			walkCallSitesExpr(kw, visit)
		}
		if name, ok := qualifiedCallee(v); ok {
			visit(name, v)
		}
	case *ir.BinOp:
		walkCallSitesExpr(v.Left, visit)
		walkCallSitesExpr(v.Right, visit)
	case *ir.UnaryOp:
		walkCallSitesExpr(v.Operand, visit)
	case *ir.Compare:
		for _, o := range v.Operands {
			walkCallSitesExpr(o, visit)
		}
	case *ir.ListLit:
		for _, e := range v.Elems {
			walkCallSitesExpr(e, visit)
		}
	case *ir.TupleLit:
		for _, e := range v.Elems {
			walkCallSitesExpr(e, visit)
		}
	case *ir.SetLit:
		for _, e := range v.Elems {
			walkCallSitesExpr(e, visit)
		}
	case *ir.DictLit:
		for _, e := range v.Entries {
			walkCallSitesExpr(e.Key, visit)
			walkCallSitesExpr(e.Value, visit)
		}
	case *ir.Comprehension:
		walkCallSitesExpr(v.Element, visit)
		walkCallSitesExpr(v.KeyExpr, visit)
		for _, c := range v.Clauses {
			walkCallSitesExpr(c.Iterable, visit)
			for _, cond := range c.Ifs {
				walkCallSitesExpr(cond, visit)
			}
		}
	case *ir.Attribute:
		walkCallSitesExpr(v.Receiver, visit)
	case *ir.ItemAccess:
		walkCallSitesExpr(v.Receiver, visit)
		walkCallSitesExpr(v.Key, visit)
	case *ir.Slice:
		walkCallSitesExpr(v.Receiver, visit)
		walkCallSitesExpr(v.Start, visit)
		walkCallSitesExpr(v.Stop, visit)
		walkCallSitesExpr(v.Step, visit)
	case *ir.Lambda:
		walkCallSitesExpr(v.Body, visit)
	case *ir.FString:
		for _, p := range v.Parts {
			walkCallSitesExpr(p.Expr, visit)
		}
	case *ir.PrintCall:
		for _, arg := range v.Args {
			walkCallSitesExpr(arg, visit)
		}
	case *ir.RangeCall:
		walkCallSitesExpr(v.Start, visit)
		walkCallSitesExpr(v.Stop, visit)
		walkCallSitesExpr(v.Step, visit)
	case *ir.ListCall:
		walkCallSitesExpr(v.Arg, visit)
	case *ir.LenCall:
		walkCallSitesExpr(v.Arg, visit)
	case *ir.IsInstanceCall:
		walkCallSitesExpr(v.Value, visit)
	}
}

// markCallSites is the post-effect-pass step: once runEffectPass has
// computed the fixed-point may_raise set, every call site whose resolved
// callee is in that set gets Flags().MayRaise = true so codegen knows to
// emit `?` there instead of `.unwrap()` (spec §4.4 "native error
// propagation"). The function-level flag alone doesn't reach call
// expressions nested in larger statements, which is exactly the gap this
// closes.
func (a *Analyzer) markCallSites(raises map[string]bool) {
	for _, fd := range a.funcs {
		walkCallSites(fd.Body, func(name string, site ir.Node) {
			if raises[name] {
				site.Flags().MayRaise = true
			}
		})
	}
}
