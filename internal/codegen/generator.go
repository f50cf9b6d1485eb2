package codegen

import (
	"fmt"

	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/ir"
)

// Mode selects standalone vs project output (spec §4.4 "Output modes").
type Mode int

const (
	Standalone Mode = iota
	Project
)

// Generator holds the state threaded through one module's emission.
type Generator struct {
	mode Mode
	bag  diagnostics.Bag
	// hoisted records the names in the body currently being emitted that
	// need an Option-wrapped pre-declaration because they're first assigned
	// inside a nested if/for/while/try (spec §3 "Variable-hoisting rule",
	// §4.4 "Variable hoisting"). emitBody saves/restores it around each
	// nested body so lookups in expr.go/stmt.go always see the innermost
	// enclosing body's hoist set.
	hoisted map[string]hoistInfo
}

func New(mode Mode) *Generator {
	return &Generator{mode: mode}
}

func (g *Generator) Diagnostics() *diagnostics.Bag { return &g.bag }

// Generate emits the full Rust source for mod (spec §4.4). Standalone mode
// emits only the source text; Project mode is assembled by
// internal/project around this same text.
func (g *Generator) Generate(mod *ir.Module) string {
	w := newWriter()
	w.line("// Generated by tnk. Do not edit by hand.")
	w.line("use tnk_bridge::{Value, TnkError, Bridge};")
	w.line("use std::collections::{HashMap, HashSet};")
	w.line("")

	for _, cls := range g.collectClasses(mod) {
		g.emitClass(w, cls)
	}

	for _, n := range mod.Body {
		if fd, ok := n.(*ir.FunctionDef); ok {
			g.emitFunction(w, fd)
			continue
		}
		if _, ok := n.(*ir.ClassDef); ok {
			continue // already emitted above
		}
		// Top-level non-function, non-class statements accumulate into a
		// setup() invoked before main (spec §4.2 "Top-level ... statements
		// accumulate into a setup block invoked before the entry point").
	}

	hasSetup := g.emitSetup(w, mod)
	g.emitMain(w, mod, hasSetup)

	return w.String()
}

func (g *Generator) collectClasses(mod *ir.Module) []*ir.ClassDef {
	var out []*ir.ClassDef
	for _, n := range mod.Body {
		if cd, ok := n.(*ir.ClassDef); ok {
			out = append(out, cd)
		}
	}
	return out
}

func (g *Generator) emitClass(w *writer, cd *ir.ClassDef) {
	w.line("#[derive(Debug, Clone)]")
	w.line("pub struct %s {", cd.Name)
	w.push()
	for _, f := range cd.Fields {
		w.line("pub %s: %s,", f.Name, rustType(f.Type))
	}
	w.pop()
	w.line("}")
	w.line("")
	w.line("impl %s {", cd.Name)
	w.push()
	if cd.IsDataclass {
		g.emitDataclassConstructor(w, cd)
	}
	for _, m := range cd.Methods {
		g.emitMethodBody(w, m)
	}
	w.pop()
	w.line("}")
	w.line("")
}

func (g *Generator) emitDataclassConstructor(w *writer, cd *ir.ClassDef) {
	params := make([]string, len(cd.Fields))
	for i, f := range cd.Fields {
		params[i] = fmt.Sprintf("%s: %s", f.Name, rustType(f.Type))
	}
	w.line("pub fn new(%s) -> Self {", joinComma(params))
	w.push()
	w.line("Self {")
	w.push()
	for _, f := range cd.Fields {
		w.line("%s,", f.Name)
	}
	w.pop()
	w.line("}")
	w.pop()
	w.line("}")
}

func (g *Generator) emitFunction(w *writer, fd *ir.FunctionDef) {
	g.emitFunctionSignatureAndBody(w, fd, "")
	w.line("")
}

func (g *Generator) emitMethodBody(w *writer, fd *ir.FunctionDef) {
	recv := "&self"
	g.emitFunctionSignatureAndBody(w, fd, recv)
	w.line("")
}

func (g *Generator) emitFunctionSignatureAndBody(w *writer, fd *ir.FunctionDef, recv string) {
	params := []string{}
	if recv != "" {
		params = append(params, recv)
	}
	for _, p := range fd.Params {
		params = append(params, fmt.Sprintf("%s: %s", p.Name, rustParamType(p.Type, false)))
	}
	retType := rustType(fd.ReturnType)
	if fd.Flags().MayRaise {
		retType = resultType(fd.ReturnType)
	}
	w.line("pub fn %s(%s) -> %s {", fd.Name, joinComma(params), retType)
	w.push()
	g.emitBody(w, fd.Body, fd.Flags().MayRaise)
	w.pop()
	w.line("}")
}

// emitSetup emits fn setup() from the module's top-level non-function,
// non-class statements (spec §4.2) and reports whether it emitted anything,
// so emitMain only calls setup() when it actually exists (spec §4.4 "the
// generator never emits code it knows will not compile").
func (g *Generator) emitSetup(w *writer, mod *ir.Module) bool {
	var setupStmts []ir.Node
	for _, n := range mod.Body {
		switch n.(type) {
		case *ir.FunctionDef, *ir.ClassDef:
			continue
		}
		setupStmts = append(setupStmts, n)
	}
	if len(setupStmts) == 0 {
		return false
	}
	w.line("fn setup() {")
	w.push()
	g.emitBody(w, setupStmts, false)
	w.pop()
	w.line("}")
	w.line("")
	return true
}

func (g *Generator) emitMain(w *writer, mod *ir.Module, hasSetup bool) {
	w.line("fn main() {")
	w.push()
	if hasSetup {
		w.line("setup();")
	}
	g.emitBody(w, mod.MainGuard, false)
	w.pop()
	w.line("}")
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
