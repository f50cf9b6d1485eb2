// Package typesystem implements the closed type sum of spec §3:
// Unit | Bool | Int | Float | Str | List(T) | Tuple(T*) | Dict(K,V) |
// Set(T) | Option(T) | Struct(name) | Callable(params,ret) | Any.
//
// The interface shape (Type.String(), a visitor-free sum modeled as a set
// of concrete structs satisfying one interface) follows the teacher's
// internal/typesystem/types.go; this package is deliberately much smaller
// than the teacher's Hindley-Milner engine (no kinds, no type variables,
// no generalization) because spec §3 calls for a closed sum with simple
// structural unification, not parametric polymorphism.
package typesystem

import "strings"

// Type is implemented by every member of the closed sum.
type Type interface {
	String() string
	// Equal reports structural equality, used by the narrowing pass (C3)
	// and by unify to decide whether two branches agree on a binding's type.
	Equal(Type) bool
}

type (
	TUnit  struct{}
	TBool  struct{}
	TInt   struct{}
	TFloat struct{}
	TStr   struct{}
	TAny   struct{}
)

func (TUnit) String() string  { return "Unit" }
func (TBool) String() string  { return "Bool" }
func (TInt) String() string   { return "Int" }
func (TFloat) String() string { return "Float" }
func (TStr) String() string   { return "Str" }
func (TAny) String() string   { return "Any" }

func (TUnit) Equal(o Type) bool  { _, ok := o.(TUnit); return ok }
func (TBool) Equal(o Type) bool  { _, ok := o.(TBool); return ok }
func (TInt) Equal(o Type) bool   { _, ok := o.(TInt); return ok }
func (TFloat) Equal(o Type) bool { _, ok := o.(TFloat); return ok }
func (TStr) Equal(o Type) bool   { _, ok := o.(TStr); return ok }
func (TAny) Equal(o Type) bool   { _, ok := o.(TAny); return ok }

// TList is List(Elem).
type TList struct{ Elem Type }

func (t TList) String() string { return "List[" + t.Elem.String() + "]" }
func (t TList) Equal(o Type) bool {
	ot, ok := o.(TList)
	return ok && t.Elem.Equal(ot.Elem)
}

// TTuple is a fixed-arity heterogeneous tuple.
type TTuple struct{ Elems []Type }

func (t TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}
func (t TTuple) Equal(o Type) bool {
	ot, ok := o.(TTuple)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(ot.Elems[i]) {
			return false
		}
	}
	return true
}

// TDict is Dict(Key, Value).
type TDict struct{ Key, Value Type }

func (t TDict) String() string { return "Dict[" + t.Key.String() + ", " + t.Value.String() + "]" }
func (t TDict) Equal(o Type) bool {
	ot, ok := o.(TDict)
	return ok && t.Key.Equal(ot.Key) && t.Value.Equal(ot.Value)
}

// TSet is Set(Elem).
type TSet struct{ Elem Type }

func (t TSet) String() string { return "Set[" + t.Elem.String() + "]" }
func (t TSet) Equal(o Type) bool {
	ot, ok := o.(TSet)
	return ok && t.Elem.Equal(ot.Elem)
}

// TOption is Option(Inner), produced from an `Optional[T]` annotation (spec §3).
type TOption struct{ Inner Type }

func (t TOption) String() string { return "Option[" + t.Inner.String() + "]" }
func (t TOption) Equal(o Type) bool {
	ot, ok := o.(TOption)
	return ok && t.Inner.Equal(ot.Inner)
}

// TStruct names a user-defined class/dataclass type.
type TStruct struct{ Name string }

func (t TStruct) String() string     { return t.Name }
func (t TStruct) Equal(o Type) bool  { ot, ok := o.(TStruct); return ok && ot.Name == t.Name }

// TCallable is Callable(Params, Ret), for lambdas and function values.
type TCallable struct {
	Params []Type
	Ret    Type
}

func (t TCallable) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Ret.String()
}
func (t TCallable) Equal(o Type) bool {
	ot, ok := o.(TCallable)
	if !ok || len(ot.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(ot.Params[i]) {
			return false
		}
	}
	return t.Ret.Equal(ot.Ret)
}

// Singletons for convenience at call sites, matching the teacher's
// typesystem package-level Star/AnyKind pattern.
var (
	Unit  Type = TUnit{}
	Bool  Type = TBool{}
	Int   Type = TInt{}
	Float Type = TFloat{}
	Str   Type = TStr{}
	Any   Type = TAny{}
)

// IsAny reports whether t is the Any type (spec §3: "a value whose concrete
// type is known only at runtime ... must live as a bridge handle").
func IsAny(t Type) bool {
	_, ok := t.(TAny)
	return ok
}
