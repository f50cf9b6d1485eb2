// Package ir defines the intermediate representation produced by the
// matcher (C2) and annotated by the scope/type environment (C3): one
// variant per construct named in spec §3, each carrying a resolved type,
// the scope it was matched in, and the flag set {NativeLowerable, MayRaise,
// BorrowsFrom, Owns}. Node shape follows original_source/src/ir_nodes.py's
// TsuchinokoNode family (Module/FunctionDef/Assign/Call/... each a small
// struct with an emit-relevant field set) generalized from Python objects
// into a closed Go interface sum, the same transposition
// internal/typesystem applies to the teacher's type engine.
package ir

import (
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// Flags is the per-node annotation set C3 fills in (spec §3).
type Flags struct {
	// NativeLowerable is true when the node can be emitted as plain Rust
	// with no bridge call (spec §4.2/§4.6).
	NativeLowerable bool
	// MayRaise marks a call site or function whose control flow can
	// produce an error (spec §4.3 effect pass).
	MayRaise bool
	// BorrowsFrom/Owns record the ownership decision C4 needs to choose
	// between &T, &mut T and owned T when lowering to Rust (spec §4.4).
	BorrowsFrom string
	Owns        bool
	// BridgeRequired marks a call/attr/item/slice/iteration against a
	// value of external-module origin (spec §3 "External classification").
	BridgeRequired bool
}

// Node is implemented by every IR variant.
type Node interface {
	Type() typesystem.Type
	Scope() symbols.ScopeID
	Flags() *Flags
	irNode()
}

// base is embedded by every concrete node to supply the common fields.
type base struct {
	typ   typesystem.Type
	scope symbols.ScopeID
	flags Flags
	Line  int
}

func (b *base) Type() typesystem.Type   { return b.typ }
func (b *base) Scope() symbols.ScopeID  { return b.scope }
func (b *base) Flags() *Flags           { return &b.flags }
func (*base) irNode()                   {}

func newBase(t typesystem.Type, scope symbols.ScopeID, line int) base {
	return base{typ: t, scope: scope, Line: line}
}

// Module is the top-level program unit (spec §3).
type Module struct {
	base
	Name  string
	Body  []Node
	// MainGuard holds the body of `if __name__ == "__main__":`, per
	// SPEC_FULL.md's supplemented-features note 3; nil if absent.
	MainGuard []Node
}

func NewModule(name string, scope symbols.ScopeID) *Module {
	return &Module{base: newBase(typesystem.Unit, scope, 0), Name: name}
}

// Param is one function parameter.
type Param struct {
	Name    string
	Type    typesystem.Type
	Default Node // nil if required
}

// FunctionDef is a function or method definition.
type FunctionDef struct {
	base
	Name       string
	Params     []Param
	ReturnType typesystem.Type
	Body       []Node
	IsMethod   bool
	ReceiverOf string // class name, when IsMethod
}

func NewFunctionDef(name string, scope symbols.ScopeID, line int) *FunctionDef {
	return &FunctionDef{base: newBase(typesystem.Unit, scope, line), Name: name}
}

// Field is one struct field produced from a dataclass or annotated class
// body (spec §4.3 "Class fields from annotations and dataclass decorators
// are recorded as struct fields").
type Field struct {
	Name string
	Type typesystem.Type
}

// ClassDef is a class or @dataclass definition, lowered to a Rust struct.
type ClassDef struct {
	base
	Name       string
	Fields     []Field
	Methods    []*FunctionDef
	IsDataclass bool
}

func NewClassDef(name string, scope symbols.ScopeID, line int) *ClassDef {
	return &ClassDef{base: newBase(typesystem.TStruct{Name: name}, scope, line), Name: name}
}

// Assign is a simple single-target assignment.
type Assign struct {
	base
	Target  string
	Value   Node
	IsFirst bool // true the first time Target is bound in this scope (let vs reassign)
}

// AttrAssign is `recv.attr = value`, split from Assign because the
// receiver needs its own IR subtree (spec §3 "assignment").
type AttrAssign struct {
	base
	Receiver Node
	Attr     string
	Value    Node
}

// AugAssign is `x += e` and its siblings.
type AugAssign struct {
	base
	Target string
	Op     string // "+", "-", "*", ...
	Value  Node
}

// TupleUnpack is `a, b = expr`.
type TupleUnpack struct {
	base
	Targets []string
	Value   Node
	First   []bool // parallel to Targets
}

// Name is a variable reference.
type Name struct {
	base
	Ident string
}

// Literal is any constant: int, float, str, bool, None.
type Literal struct {
	base
	Value interface{}
}

// ListLit, DictLit, SetLit, TupleLit are container literals.
type ListLit struct {
	base
	Elems []Node
}

type TupleLit struct {
	base
	Elems []Node
}

type DictEntry struct{ Key, Value Node }

type DictLit struct {
	base
	Entries []DictEntry
}

type SetLit struct {
	base
	Elems []Node
}

// Comprehension covers list/dict/set comprehensions (spec §3). Kind
// distinguishes the three since they lower to different Rust collectors.
type ComprehensionKind int

const (
	CompList ComprehensionKind = iota
	CompDict
	CompSet
)

// CompClause is one `for target in iter [if cond]*` clause, preserved in
// source order (spec §4.4), mirroring ast.CompFor.
type CompClause struct {
	VarName  string
	Iterable Node
	Ifs      []Node
}

type Comprehension struct {
	base
	Kind    ComprehensionKind
	Element Node // value expr (list/set) or dict value
	KeyExpr Node // dict only
	Clauses []CompClause
}

// BinOp is a binary arithmetic/bitwise/logical expression.
type BinOp struct {
	base
	Op          string
	Left, Right Node
}

// UnaryOp is `-x`, `not x`, `~x`.
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

// Compare handles chained comparisons (`a < b < c`) as a single node per
// spec §3, matching Python's short-circuit chained-compare semantics.
type Compare struct {
	base
	Operands []Node
	Ops      []string // len(Ops) == len(Operands)-1
}

// Call is a plain function call not specialized by the matcher.
type Call struct {
	base
	Callee Node
	Args   []Node
	Kwargs map[string]Node
}

// MethodCall is `recv.method(args)`, split out from Call because ownership
// and bridge-dispatch rules differ per spec §4.4/§4.6.
type MethodCall struct {
	base
	Receiver Node
	Method   string
	Args     []Node
	Kwargs   map[string]Node
}

// Attribute is `recv.attr` read access.
type Attribute struct {
	base
	Receiver Node
	Attr     string
}

// ItemAccess is `recv[key]`.
type ItemAccess struct {
	base
	Receiver Node
	Key      Node
}

// Slice is `recv[start:stop:step]`; any of the three may be nil.
type Slice struct {
	base
	Receiver           Node
	Start, Stop, Step  Node
}

// Lambda is an anonymous function value.
type Lambda struct {
	base
	Params []Param
	Body   Node
}

// FStringPart is one piece of an f-string: either a literal run or an
// embedded expression with optional format spec.
type FStringPart struct {
	Literal string
	Expr    Node
	Spec    string
}

type FString struct {
	base
	Parts []FStringPart
}

// If covers `if/elif/else`.
type If struct {
	base
	Cond       Node
	Then       []Node
	Else       []Node
	ThenScope  symbols.ScopeID
	ElseScope  symbols.ScopeID
}

// For is `for VarName in Iterable: Body`, possibly with a range-specialized
// Iterable (see RangeCall).
type For struct {
	base
	VarName  string
	Iterable Node
	Body     []Node
	BodyScope symbols.ScopeID
}

// While is a while loop.
type While struct {
	base
	Cond      Node
	Body      []Node
	BodyScope symbols.ScopeID
}

// ExceptClause is one `except Kind as name:` arm.
type ExceptClause struct {
	Kinds []string // empty means bare except
	Name  string    // "" if no `as name`
	Body  []Node
}

// Try covers try/except/else/finally (spec §3, §4.4).
type Try struct {
	base
	Body    []Node
	Excepts []ExceptClause
	Else    []Node
	Finally []Node
}

// Raise is `raise X("m")` or `raise X("m") from e`.
type Raise struct {
	base
	Kind  string
	Msg   Node
	Cause Node // nil if no `from`
}

// Return is a return statement; Value is nil for bare `return`.
type Return struct {
	base
	Value Node
}

// Break and Continue are no-operand loop control statements.
type Break struct{ base }
type Continue struct{ base }

// Import is `import M` or `import M as alias`.
type Import struct {
	base
	Module string
	Alias  string
	// External is true when Module is not a same-project module (spec §3).
	External bool
}

// FromImport is `from M import a, b as c`.
type FromImport struct {
	base
	Module string
	Names  []FromImportName
	External bool
}

type FromImportName struct {
	Name  string
	Alias string
}

// With covers `with expr as name: body`.
type With struct {
	base
	Expr      Node
	VarName   string
	Body      []Node
	BodyScope symbols.ScopeID
}

// RangeCall specializes `range(...)` per the matcher's ordered-precedence
// rule (spec §4.2); a generic Call never reaches codegen for this callee.
type RangeCall struct {
	base
	Start, Stop, Step Node // Start/Step nil when omitted
}

// ListCall specializes `list(x)`.
type ListCall struct {
	base
	Arg Node
}

// LenCall specializes `len(x)`.
type LenCall struct {
	base
	Arg Node
}

// PrintCall specializes `print(...)`.
type PrintCall struct {
	base
	Args []Node
	Sep  string
	End  string
}

// IsInstanceCall specializes the two-arg `isinstance(value, ClassName)`
// form into a type-narrowing IR node, per the design decision recorded in
// DESIGN.md: the parser keeps isinstance generic (a CallExpr) and only the
// matcher (C2) promotes it here, the same way original_source's matcher
// distinguishes TsuchinokoCallRange/CallList/CallLen from a generic call.
type IsInstanceCall struct {
	base
	Value     Node
	ClassName string
}

func (n *Module) irNode()         {}
func (n *FunctionDef) irNode()    {}
func (n *ClassDef) irNode()       {}
func (n *Assign) irNode()         {}
func (n *AttrAssign) irNode()     {}
func (n *AugAssign) irNode()      {}
func (n *TupleUnpack) irNode()    {}
func (n *Name) irNode()           {}
func (n *Literal) irNode()        {}
func (n *ListLit) irNode()        {}
func (n *TupleLit) irNode()       {}
func (n *DictLit) irNode()        {}
func (n *SetLit) irNode()         {}
func (n *Comprehension) irNode()  {}
func (n *BinOp) irNode()          {}
func (n *UnaryOp) irNode()        {}
func (n *Compare) irNode()        {}
func (n *Call) irNode()           {}
func (n *MethodCall) irNode()     {}
func (n *Attribute) irNode()      {}
func (n *ItemAccess) irNode()     {}
func (n *Slice) irNode()          {}
func (n *Lambda) irNode()         {}
func (n *FString) irNode()        {}
func (n *If) irNode()             {}
func (n *For) irNode()            {}
func (n *While) irNode()          {}
func (n *Try) irNode()            {}
func (n *Raise) irNode()          {}
func (n *Return) irNode()         {}
func (n *Break) irNode()          {}
func (n *Continue) irNode()       {}
func (n *Import) irNode()         {}
func (n *FromImport) irNode()     {}
func (n *With) irNode()           {}
func (n *RangeCall) irNode()      {}
func (n *ListCall) irNode()       {}
func (n *LenCall) irNode()        {}
func (n *PrintCall) irNode()      {}
func (n *IsInstanceCall) irNode() {}
