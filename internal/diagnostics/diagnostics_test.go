package diagnostics

import (
	"strings"
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/token"
)

func TestErrorStringIncludesFileAndPosition(t *testing.T) {
	tok := token.Token{Line: 12, Column: 5}
	e := New(SyntaxError, tok, "prog.tnk", "unexpected token")

	got := e.Error()
	for _, want := range []string{"prog.tnk", "12", "5", string(SyntaxError), "unexpected token"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestErrorStringOmitsFileWhenEmpty(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	e := New(UnresolvedName, tok, "", "name 'x' is not defined")

	got := e.Error()
	if strings.Contains(got, "::") || strings.HasPrefix(got, ":") {
		t.Errorf("Error() = %q, expected no leading file separator", got)
	}
}

func TestBagAccumulatesAcrossStages(t *testing.T) {
	var bag Bag
	bag.Addf(SyntaxError, token.Token{Line: 1}, "a.tnk", "bad token %q", "@@")
	bag.Addf(TypeMismatch, token.Token{Line: 2}, "a.tnk", "expected int, got str")

	if !bag.HasErrors() {
		t.Fatal("expected HasErrors() true after adding errors")
	}
	if len(bag.Errors()) != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", len(bag.Errors()))
	}
}

func TestBagMergeCombinesErrorsAndToleratesNil(t *testing.T) {
	var a, b Bag
	a.Add(New(SyntaxError, token.Token{Line: 1}, "a.tnk", "first"))
	b.Add(New(TypeMismatch, token.Token{Line: 2}, "a.tnk", "second"))

	a.Merge(&b)
	if len(a.Errors()) != 2 {
		t.Fatalf("len(Errors()) after merge = %d, want 2", len(a.Errors()))
	}

	a.Merge(nil)
	if len(a.Errors()) != 2 {
		t.Fatalf("Merge(nil) changed error count to %d", len(a.Errors()))
	}
}

func TestEmptyBagHasNoErrors(t *testing.T) {
	var bag Bag
	if bag.HasErrors() {
		t.Error("empty Bag reports HasErrors() true")
	}
}
