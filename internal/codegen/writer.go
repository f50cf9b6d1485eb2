// Package codegen implements C4: emitting Rust source text from annotated
// IR (spec §4.4). The indent-tracking buffer writer follows the teacher's
// internal/prettyprinter.CodePrinter (bytes.Buffer + indent counter +
// writeIndent), generalized from pretty-printing the teacher's own source
// language back to itself into emitting a different target language
// (Rust) from this project's IR.
package codegen

import (
	"bytes"
	"fmt"
)

type writer struct {
	buf    bytes.Buffer
	indent int
}

func newWriter() *writer { return &writer{} }

func (w *writer) push() { w.indent++ }
func (w *writer) pop()  { w.indent-- }

func (w *writer) line(format string, args ...interface{}) {
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString("    ")
	}
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) raw(s string) { w.buf.WriteString(s) }

func (w *writer) String() string { return w.buf.String() }
