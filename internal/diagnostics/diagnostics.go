// Package diagnostics implements the compile-time error taxonomy (spec §7)
// and the accumulating bag that lets every pipeline stage keep running so a
// single invocation can report more than one problem.
package diagnostics

import (
	"fmt"

	"github.com/tanep3/Tsuchinoko/internal/token"
)

// Code identifies a distinct class of compile-time diagnostic.
type Code string

const (
	SyntaxError        Code = "TNK-SYNTAX-ERROR"
	UnsupportedSyntax  Code = "TNK-UNSUPPORTED-SYNTAX"
	TypeMismatch       Code = "TNK-TYPE-MISMATCH"
	OwnershipAmbiguous Code = "TNK-OWNERSHIP-AMBIGUOUS"
	UnresolvedName     Code = "TNK-UNRESOLVED-NAME"
)

// Error is a single diagnostic tied to a source token, matching the shape
// the teacher's LSP diagnostics converter expects of err.Token and err.Code.
type Error struct {
	Code    Code
	Token   token.Token
	File    string
	Message string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// New builds a diagnostic Error.
func New(code Code, tok token.Token, file, message string) *Error {
	return &Error{Code: code, Token: tok, File: file, Message: message}
}

// Bag accumulates diagnostics across pipeline stages. Parse-phase recovery
// (spec §4.1) and the matcher's elision of unsupported subtrees (§4.2) both
// append to the same bag rather than aborting the run.
type Bag struct {
	errors []*Error
}

func (b *Bag) Add(e *Error) { b.errors = append(b.errors, e) }

func (b *Bag) Addf(code Code, tok token.Token, file, format string, args ...interface{}) {
	b.Add(New(code, tok, file, fmt.Sprintf(format, args...)))
}

func (b *Bag) Errors() []*Error { return b.errors }

func (b *Bag) HasErrors() bool { return len(b.errors) > 0 }

func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.errors = append(b.errors, other.errors...)
}
