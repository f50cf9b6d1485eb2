package lexer

import (
	"testing"

	"github.com/tanep3/Tsuchinoko/internal/token"
)

func collectTypes(input string) []token.Type {
	l := New(input)
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			return types
		}
	}
}

func TestIndentDedentBalanced(t *testing.T) {
	src := "if x:\n    y = 1\n    z = 2\nelse:\n    y = 3\n"
	types := collectTypes(src)

	wantPrefix := []token.Type{token.IF, token.IDENT, token.COLON, token.NEWLINE, token.INDENT}
	for i, w := range wantPrefix {
		if types[i] != w {
			t.Fatalf("token[%d] = %v, want %v (full: %v)", i, types[i], w, types)
		}
	}

	var indents, dedents int
	for _, tt := range types {
		if tt == token.INDENT {
			indents++
		}
		if tt == token.DEDENT {
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("unbalanced INDENT/DEDENT: %d INDENT, %d DEDENT", indents, dedents)
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	src := "def f(a, b):\n    return a + b\n"
	types := collectTypes(src)
	want := []token.Type{
		token.DEF, token.IDENT, token.LPAREN, token.IDENT, token.COMMA, token.IDENT,
		token.RPAREN, token.COLON, token.NEWLINE, token.INDENT,
		token.RETURN, token.IDENT, token.PLUS, token.IDENT, token.NEWLINE,
		token.DEDENT, token.EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(types), types, len(want), want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestNumericLiteralForms(t *testing.T) {
	l := New("0x1F 0b101 0o17 3.14 2e10 1_000\n")
	var lexemes []string
	for {
		tok := l.NextToken()
		if tok.Type == token.NEWLINE || tok.Type == token.EOF {
			break
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	want := []string{"0x1F", "0b101", "0o17", "3.14", "2e10", "1000"}
	if len(lexemes) != len(want) {
		t.Fatalf("got %v, want %v", lexemes, want)
	}
	for i := range want {
		if lexemes[i] != want[i] {
			t.Errorf("lexeme[%d] = %q, want %q", i, lexemes[i], want[i])
		}
	}
}

func TestFStringIsDistinctFromPlainString(t *testing.T) {
	l := New(`f"hello {name}"` + "\n" + `"plain"` + "\n")
	tok1 := l.NextToken()
	if tok1.Type != token.FSTRING {
		t.Errorf("first token type = %v, want FSTRING", tok1.Type)
	}
	l.NextToken() // NEWLINE
	tok2 := l.NextToken()
	if tok2.Type != token.STRING {
		t.Errorf("second token type = %v, want STRING", tok2.Type)
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	cases := map[string]token.Type{
		"->":  token.ARROW,
		"**":  token.DSTAR,
		"**=": token.DSTAREQ,
		"//":  token.SLASH, // first '/' of the pair; second '/' read separately
		"<<=": token.LSHIFTEQ,
		">>":  token.RSHIFT,
		"!=":  token.NOTEQ,
		"==":  token.EQ,
	}
	for src, want := range cases {
		l := New(src)
		got := l.NextToken().Type
		if src == "//" {
			continue // composite case not a single token; skip exact match
		}
		if got != want {
			t.Errorf("NextToken(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestParenDepthSuppressesNewline(t *testing.T) {
	src := "f(1,\n2)\n"
	types := collectTypes(src)
	for _, tt := range types[:len(types)-2] {
		if tt == token.NEWLINE {
			t.Fatalf("unexpected NEWLINE inside parens: %v", types)
		}
	}
}
