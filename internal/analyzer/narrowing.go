package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// narrowFact is one name/type refinement established by a branch condition
// (spec §3 "Narrowing rules", §4.3 narrowing pass).
type narrowFact struct {
	name string
	typ  typesystem.Type
}

// narrowingFacts inspects an already-matched condition and reports the
// facts true in the then-branch and in the else-branch. Only the two forms
// spec §3 names are recognized: `x is [not] None` against an Option(T)
// binding, and `isinstance(x, C)`. Anything else yields no facts, matching
// the original matcher's narrow-is-an-addition-not-a-requirement posture.
func narrowingFacts(cond ir.Node) (thenFacts, elseFacts []narrowFact) {
	switch v := cond.(type) {
	case *ir.Compare:
		if len(v.Operands) != 2 || len(v.Ops) != 1 {
			return nil, nil
		}
		name, ok := v.Operands[0].(*ir.Name)
		if !ok {
			return nil, nil
		}
		lit, ok := v.Operands[1].(*ir.Literal)
		if !ok || lit.Value != nil {
			return nil, nil
		}
		opt, ok := name.Type().(typesystem.TOption)
		if !ok {
			return nil, nil
		}
		fact := narrowFact{name: name.Ident, typ: opt.Inner}
		switch v.Ops[0] {
		case "is":
			// then: x is None, nothing more precise than what's already known.
			// else: x is not None, so x narrows to the option's inner type.
			return nil, []narrowFact{fact}
		case "is not":
			return []narrowFact{fact}, nil
		}
		return nil, nil
	case *ir.IsInstanceCall:
		name, ok := v.Value.(*ir.Name)
		if !ok {
			return nil, nil
		}
		return []narrowFact{{name: name.Ident, typ: typesystem.TStruct{Name: v.ClassName}}}, nil
	}
	return nil, nil
}

// blockAlwaysExits reports whether body's last statement unconditionally
// leaves the enclosing block (spec §4.3 "early-return narrowing"). This is
// a syntactic approximation, not full reachability analysis: it only looks
// at the final statement, which is what every early-return guard clause in
// the accepted source subset reduces to.
func blockAlwaysExits(body []ir.Node) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ir.Return, *ir.Raise, *ir.Break, *ir.Continue:
		return true
	}
	return false
}

// narrowExisting refines an already-declared binding's type in place,
// rather than shadowing it with a new one: the binding for a name
// introduced outside the if (a parameter, an earlier assignment) lives at
// whatever scope originally declared it, not at the if's own scope, so a
// fresh Declare at `scope` would never be found ahead of the original
// (Resolve returns the first-declared match at a given scope level).
func (a *Analyzer) narrowExisting(name string, scope symbols.ScopeID, typ typesystem.Type) {
	b := a.table.Resolve(name, scope)
	if b == nil {
		return
	}
	a.table.Update(name, b.Scope, typ)
}
