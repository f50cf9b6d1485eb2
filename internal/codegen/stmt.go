package codegen

import (
	"fmt"

	"github.com/tanep3/Tsuchinoko/internal/ir"
)

type hoistInfo struct {
	rustTy string
}

// emitBody emits one statement list, first pre-declaring every name that
// the hoisting scan finds introduced inside a nested if/for/while/try and
// used later (spec §3 "Variable-hoisting rule"). Each such name is
// Option-wrapped per spec §4.4 and assigned with `= Some(..)` at its
// original site; this is a deliberate simplification of "default value for
// primitives" — the generator always uses the Option form rather than
// distinguishing primitive defaults, trading a few unwrap() calls for one
// uniform lowering rule (documented in DESIGN.md).
func (g *Generator) emitBody(w *writer, body []ir.Node, mayRaise bool) {
	hoists := collectHoists(body)
	prevHoisted := g.hoisted
	g.hoisted = hoists
	for name, info := range hoists {
		w.line("let mut %s: Option<%s> = None;", name, info.rustTy)
	}
	for _, n := range body {
		g.emitStmt(w, n, mayRaise)
	}
	g.hoisted = prevHoisted
}

// collectHoists walks nested block statements (If/For/While/Try, not the
// top level itself) and returns the set of names first assigned there,
// along with the Rust type of their first assignment's value.
func collectHoists(body []ir.Node) map[string]hoistInfo {
	out := make(map[string]hoistInfo)
	for _, n := range body {
		collectHoistsIn(n, out, true)
	}
	return out
}

func collectHoistsIn(n ir.Node, out map[string]hoistInfo, topLevel bool) {
	switch v := n.(type) {
	case *ir.Assign:
		if v.IsFirst && !topLevel {
			if _, seen := out[v.Target]; !seen {
				out[v.Target] = hoistInfo{rustTy: rustType(v.Value.Type())}
			}
		}
	case *ir.If:
		for _, s := range v.Then {
			collectHoistsIn(s, out, false)
		}
		for _, s := range v.Else {
			collectHoistsIn(s, out, false)
		}
	case *ir.For:
		for _, s := range v.Body {
			collectHoistsIn(s, out, false)
		}
	case *ir.While:
		for _, s := range v.Body {
			collectHoistsIn(s, out, false)
		}
	case *ir.Try:
		for _, s := range v.Body {
			collectHoistsIn(s, out, false)
		}
		for _, ex := range v.Excepts {
			for _, s := range ex.Body {
				collectHoistsIn(s, out, false)
			}
		}
	}
}

func (g *Generator) emitStmt(w *writer, n ir.Node, mayRaise bool) {
	switch v := n.(type) {
	case *ir.Assign:
		g.emitAssign(w, v)
	case *ir.AttrAssign:
		w.line("%s.%s = %s;", g.expr(v.Receiver), v.Attr, g.expr(v.Value))
	case *ir.AugAssign:
		w.line("%s %s= %s;", v.Target, v.Op, g.expr(v.Value))
	case *ir.TupleUnpack:
		g.emitTupleUnpack(w, v)
	case *ir.Return:
		g.emitReturn(w, v, mayRaise)
	case *ir.Break:
		w.line("break;")
	case *ir.Continue:
		w.line("continue;")
	case *ir.If:
		g.emitIf(w, v, mayRaise)
	case *ir.For:
		g.emitFor(w, v, mayRaise)
	case *ir.While:
		w.line("while %s {", g.expr(v.Cond))
		w.push()
		g.emitBody(w, v.Body, mayRaise)
		w.pop()
		w.line("}")
	case *ir.Try:
		g.emitTry(w, v, mayRaise)
	case *ir.Raise:
		g.emitRaise(w, v, mayRaise)
	case *ir.With:
		g.emitWith(w, v, mayRaise)
	case *ir.Import, *ir.FromImport:
		// Imports carry no runtime statement; external-module use sites are
		// lowered to bridge calls directly at the call/attribute node
		// (spec §4.4 "bridge-required operations generate calls through
		// the runtime crate").
	default:
		w.line("%s;", g.expr(n))
	}
}

func (g *Generator) emitAssign(w *writer, a *ir.Assign) {
	val := g.expr(a.Value)
	if _, ok := g.hoisted[a.Target]; ok {
		w.line("%s = Some(%s);", a.Target, val)
		return
	}
	if a.IsFirst {
		w.line("let mut %s = %s;", a.Target, val)
	} else {
		w.line("%s = %s;", a.Target, val)
	}
}

func (g *Generator) emitTupleUnpack(w *writer, t *ir.TupleUnpack) {
	names := joinComma(t.Targets)
	w.line("let (%s) = %s;", names, g.expr(t.Value))
}

func (g *Generator) emitReturn(w *writer, r *ir.Return, mayRaise bool) {
	if r.Value == nil {
		w.line("return;")
		return
	}
	val := g.expr(r.Value)
	if mayRaise {
		w.line("return Ok(%s);", val)
	} else {
		w.line("return %s;", val)
	}
}

func (g *Generator) emitIf(w *writer, i *ir.If, mayRaise bool) {
	w.line("if %s {", g.expr(i.Cond))
	w.push()
	g.emitBody(w, i.Then, mayRaise)
	w.pop()
	if len(i.Else) > 0 {
		w.line("} else {")
		w.push()
		g.emitBody(w, i.Else, mayRaise)
		w.pop()
	}
	w.line("}")
}

func (g *Generator) emitFor(w *writer, f *ir.For, mayRaise bool) {
	if rng, ok := f.Iterable.(*ir.RangeCall); ok {
		w.line("for %s in %s {", f.VarName, g.rangeExpr(rng))
	} else {
		w.line("for %s in %s {", f.VarName, g.iterExpr(f.Iterable))
	}
	w.push()
	g.emitBody(w, f.Body, mayRaise)
	w.pop()
	w.line("}")
}

func (g *Generator) rangeExpr(r *ir.RangeCall) string {
	start := "0"
	if r.Start != nil {
		start = g.expr(r.Start)
	}
	stop := g.expr(r.Stop)
	if r.Step != nil {
		step := g.expr(r.Step)
		return fmt.Sprintf("(%s..%s).step_by(%s as usize)", start, stop, step)
	}
	return start + ".." + stop
}

// iterExpr lowers iteration over bridge-required values to the client
// crate's batched iterator (spec §4.5 "iter creates a worker-side iterator
// handle; iter_next_batch requests up to B elements").
func (g *Generator) iterExpr(iterable ir.Node) string {
	if iterable.Flags().BridgeRequired {
		return "Bridge::iter(" + g.expr(iterable) + ")"
	}
	return "&" + g.expr(iterable)
}

func (g *Generator) emitWith(w *writer, wi *ir.With, mayRaise bool) {
	w.line("{")
	w.push()
	if wi.VarName != "" {
		w.line("let %s = %s;", wi.VarName, g.expr(wi.Expr))
	} else {
		w.line("let _guard = %s;", g.expr(wi.Expr))
	}
	g.emitBody(w, wi.Body, mayRaise)
	w.pop()
	w.line("}")
}
