// Package symbols implements the scope tree and declaration table of C3
// (spec §3 "Scope tree", §4.3). Every IR node records a scope_id; lookup
// walks the ancestor chain exactly as original_source/src/ir_nodes.py's
// TsuchinokoName.where_declared walks TsuchinokoNode.scope_tree, generalized
// from that global id/parent map into an owned ScopeTree value (the teacher's
// internal/symbols package supplies the Symbol/Kind/ScopeType shape this
// file reuses).
package symbols

import "github.com/tanep3/Tsuchinoko/internal/typesystem"

type ScopeType int

const (
	ScopeModule ScopeType = iota
	ScopeFunction
	ScopeClass
	ScopeBlock // if/for/while/try bodies, which hoist into their parent (spec §3)
)

// ScopeID identifies one scope node in the tree.
type ScopeID int

// ScopeTree is the monotonic id -> parent map the matcher (C2) populates as
// it walks the AST, mirroring TsuchinokoNode.id_counter/scope_tree.
type ScopeTree struct {
	parent []ScopeID // parent[i] is the parent of scope i; the module scope's parent is NoScope
	kind   []ScopeType
	next   ScopeID
}

const NoScope ScopeID = -1

func NewScopeTree() *ScopeTree {
	t := &ScopeTree{}
	root := t.New(NoScope, ScopeModule)
	_ = root
	return t
}

// New allocates a fresh scope under parent and returns its id.
func (t *ScopeTree) New(parent ScopeID, kind ScopeType) ScopeID {
	id := t.next
	t.next++
	t.parent = append(t.parent, parent)
	t.kind = append(t.kind, kind)
	return id
}

func (t *ScopeTree) Parent(id ScopeID) ScopeID {
	if int(id) < 0 || int(id) >= len(t.parent) {
		return NoScope
	}
	return t.parent[id]
}

func (t *ScopeTree) Kind(id ScopeID) ScopeType {
	if int(id) < 0 || int(id) >= len(t.kind) {
		return ScopeModule
	}
	return t.kind[id]
}

// ModuleScope is always scope 0.
const ModuleScope ScopeID = 0

// EnclosingNonBlock walks up from id past ScopeBlock scopes, implementing
// the variable-hoisting rule (spec §3): names introduced inside
// if/for/while/try bodies are visible in the nearest enclosing function or
// module scope.
func (t *ScopeTree) EnclosingNonBlock(id ScopeID) ScopeID {
	for id != NoScope && t.Kind(id) == ScopeBlock {
		id = t.Parent(id)
	}
	return id
}

// Binding is one declared name.
type Binding struct {
	Name        string
	Scope       ScopeID
	Type        typesystem.Type
	IsParameter bool
	// Hoisted is true when the binding was introduced inside a block scope
	// and pre-declared in its enclosing non-block scope by the generator
	// (spec §3, §4.4 "Variable hoisting").
	Hoisted bool
}

// Table is the declaration table: every binding recorded by the
// declaration pass (C3 pass 1), keyed by name then searched outward from a
// scope the way TsuchinokoName.where_declared does.
type Table struct {
	tree     *ScopeTree
	bindings map[string][]*Binding
}

func NewTable(tree *ScopeTree) *Table {
	return &Table{tree: tree, bindings: make(map[string][]*Binding)}
}

func (tb *Table) Declare(b *Binding) {
	tb.bindings[b.Name] = append(tb.bindings[b.Name], b)
}

// Resolve finds the nearest-enclosing binding for name visible from
// fromScope, walking the ancestor chain (module scope last).
func (tb *Table) Resolve(name string, fromScope ScopeID) *Binding {
	candidates := tb.bindings[name]
	if len(candidates) == 0 {
		return nil
	}
	scope := fromScope
	for scope != NoScope {
		for _, c := range candidates {
			if c.Scope == scope {
				return c
			}
		}
		scope = tb.tree.Parent(scope)
	}
	return nil
}

// Update replaces the recorded type of an existing binding, used by the
// narrowing pass (C3 pass 2) to refine a name's type within a branch.
func (tb *Table) Update(name string, scope ScopeID, t typesystem.Type) {
	for _, c := range tb.bindings[name] {
		if c.Scope == scope {
			c.Type = t
			return
		}
	}
}
