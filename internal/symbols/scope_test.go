package symbols

import (
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

func TestScopeTreeParentChain(t *testing.T) {
	tree := NewScopeTree()
	fn := tree.New(ModuleScope, ScopeFunction)
	block := tree.New(fn, ScopeBlock)

	if tree.Parent(fn) != ModuleScope {
		t.Errorf("Parent(fn) = %v, want ModuleScope", tree.Parent(fn))
	}
	if tree.Parent(block) != fn {
		t.Errorf("Parent(block) = %v, want fn", tree.Parent(block))
	}
	if tree.Parent(NoScope) != NoScope {
		t.Errorf("Parent(NoScope) = %v, want NoScope", tree.Parent(NoScope))
	}
}

func TestEnclosingNonBlockSkipsBlockScopes(t *testing.T) {
	tree := NewScopeTree()
	fn := tree.New(ModuleScope, ScopeFunction)
	ifBody := tree.New(fn, ScopeBlock)
	nestedFor := tree.New(ifBody, ScopeBlock)

	if got := tree.EnclosingNonBlock(nestedFor); got != fn {
		t.Errorf("EnclosingNonBlock(nestedFor) = %v, want fn (%v)", got, fn)
	}
	if got := tree.EnclosingNonBlock(fn); got != fn {
		t.Errorf("EnclosingNonBlock(fn) = %v, want fn unchanged", got)
	}
}

func TestTableResolveWalksAncestorChain(t *testing.T) {
	tree := NewScopeTree()
	fn := tree.New(ModuleScope, ScopeFunction)
	block := tree.New(fn, ScopeBlock)

	tb := NewTable(tree)
	tb.Declare(&Binding{Name: "x", Scope: ModuleScope, Type: typesystem.Str})
	tb.Declare(&Binding{Name: "y", Scope: fn, Type: typesystem.Int})

	if got := tb.Resolve("y", block); got == nil || !got.Type.Equal(typesystem.Int) {
		t.Errorf("Resolve(y, block) = %v, want Int binding from fn scope", got)
	}
	if got := tb.Resolve("x", block); got == nil || !got.Type.Equal(typesystem.Str) {
		t.Errorf("Resolve(x, block) = %v, want Str binding from module scope", got)
	}
	if got := tb.Resolve("missing", block); got != nil {
		t.Errorf("Resolve(missing, block) = %v, want nil", got)
	}
}

func TestTableResolvePrefersInnermostScope(t *testing.T) {
	tree := NewScopeTree()
	fn := tree.New(ModuleScope, ScopeFunction)
	block := tree.New(fn, ScopeBlock)

	tb := NewTable(tree)
	tb.Declare(&Binding{Name: "x", Scope: ModuleScope, Type: typesystem.Str})
	tb.Declare(&Binding{Name: "x", Scope: block, Type: typesystem.Int})

	got := tb.Resolve("x", block)
	if got == nil || !got.Type.Equal(typesystem.Int) {
		t.Errorf("Resolve(x, block) = %v, want innermost Int binding", got)
	}
}

func TestTableUpdateRefinesBindingType(t *testing.T) {
	tree := NewScopeTree()
	fn := tree.New(ModuleScope, ScopeFunction)

	tb := NewTable(tree)
	tb.Declare(&Binding{Name: "x", Scope: fn, Type: typesystem.TOption{Inner: typesystem.Int}})
	tb.Update("x", fn, typesystem.Int)

	got := tb.Resolve("x", fn)
	if got == nil || !got.Type.Equal(typesystem.Int) {
		t.Errorf("after Update, Resolve(x, fn) = %v, want narrowed Int", got)
	}
}
