package analyzer

import "github.com/tanep3/Tsuchinoko/internal/ir"

// runEffectPass is C3's third pass (spec §4.3): a function is may_raise if
// it contains a raise not covered by a try, or transitively calls another
// may_raise function without catching, iterated to a fixed point exactly
// as the spec requires ("Iteration is to a fixed point").
func (a *Analyzer) runEffectPass() {
	raises := make(map[string]bool, len(a.funcs))
	for name, fd := range a.funcs {
		raises[name] = hasUncaughtRaise(fd.Body, nil)
	}

	for changed := true; changed; {
		changed = false
		for name := range a.funcs {
			if raises[name] {
				continue
			}
			for callee := range a.callGraph[name] {
				if raises[callee] {
					raises[name] = true
					changed = true
					break
				}
			}
		}
	}

	for name, fd := range a.funcs {
		fd.Flags().MayRaise = raises[name]
	}

	// Lift the function-level result to every call site that reaches it
	// (spec §4.4): a call expression needs its own MayRaise flag so
	// codegen can choose `?` over `.unwrap()` without re-deriving the
	// callee's effect from scratch at emission time.
	a.markCallSites(raises)
}

// hasUncaughtRaise reports whether body contains a raise statement not
// enclosed by a try whose except clauses would catch it. caught is the set
// of exception kinds (nil/empty entry means "catches everything") already
// in scope from an enclosing try.
func hasUncaughtRaise(body []ir.Node, caught []ir.ExceptClause) bool {
	for _, n := range body {
		if walkRaise(n, caught) {
			return true
		}
	}
	return false
}

func walkRaise(n ir.Node, caught []ir.ExceptClause) bool {
	switch v := n.(type) {
	case *ir.Raise:
		return !coveredBy(v.Kind, caught)
	case *ir.If:
		return hasUncaughtRaise(v.Then, caught) || hasUncaughtRaise(v.Else, caught)
	case *ir.For:
		return hasUncaughtRaise(v.Body, caught)
	case *ir.While:
		return hasUncaughtRaise(v.Body, caught)
	case *ir.With:
		return hasUncaughtRaise(v.Body, caught)
	case *ir.Try:
		if hasUncaughtRaise(v.Body, append(append([]ir.ExceptClause{}, caught...), v.Excepts...)) {
			return true
		}
		for _, ex := range v.Excepts {
			if hasUncaughtRaise(ex.Body, caught) {
				return true
			}
		}
		if hasUncaughtRaise(v.Else, caught) {
			return true
		}
		return hasUncaughtRaise(v.Finally, caught)
	}
	return false
}

func coveredBy(kind string, excepts []ir.ExceptClause) bool {
	for _, ex := range excepts {
		if len(ex.Kinds) == 0 {
			return true // bare except catches anything
		}
		for _, k := range ex.Kinds {
			if k == kind {
				return true
			}
		}
	}
	return false
}
