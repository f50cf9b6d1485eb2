package codegen

import (
	"github.com/tanep3/Tsuchinoko/internal/ir"
)

// emitRaise lowers `raise Kind("msg")` / `raise Kind("msg") from e` to the
// client crate's structured error value (spec §4.4 "exception lowering",
// §4.6 TnkError{kind, message, line, cause}).
func (g *Generator) emitRaise(w *writer, r *ir.Raise, mayRaise bool) {
	msg := `String::new()`
	if r.Msg != nil {
		msg = g.expr(r.Msg) + ".to_string()"
	}
	cause := "None"
	if r.Cause != nil {
		cause = "Some(Box::new(" + g.expr(r.Cause) + "))"
	}
	w.line("return Err(tnk_bridge::TnkError{ kind: %q.to_string(), message: %s, line: %d, cause: %s });",
		r.Kind, msg, r.Line, cause)
}

// emitTry lowers try/except/else/finally (spec §4.4) to a Rust match over
// the Result produced by the body's may_raise calls: each statement that can
// raise is already emitted with `?`-propagation inside a closure so a single
// match arm per except clause can inspect TnkError.kind, mirroring the
// original_source exception-type dispatch in src/bridge/worker.py's
// exception-to-JSON mapping but applied at generation time instead of
// runtime.
func (g *Generator) emitTry(w *writer, t *ir.Try, mayRaise bool) {
	w.line("let __try_result: Result<(), tnk_bridge::TnkError> = (|| {")
	w.push()
	g.emitBody(w, t.Body, true)
	w.line("Ok(())")
	w.pop()
	w.line("})();")
	w.line("match __try_result {")
	w.push()
	w.line("Ok(()) => {")
	w.push()
	g.emitBody(w, t.Else, mayRaise)
	w.pop()
	w.line("}")
	for _, ex := range t.Excepts {
		g.emitExceptArm(w, ex, mayRaise)
	}
	w.line("}")
	if len(t.Finally) > 0 {
		g.emitBody(w, t.Finally, mayRaise)
	}
}

func (g *Generator) emitExceptArm(w *writer, ex ir.ExceptClause, mayRaise bool) {
	bind := "_"
	if ex.Name != "" {
		bind = ex.Name
	}
	if len(ex.Kinds) == 0 {
		w.line("Err(%s) => {", bind)
	} else {
		w.line("Err(%s) if matches!(%s.kind.as_str(), %s) => {", bind, bind, quoteKinds(ex.Kinds))
	}
	w.push()
	g.emitBody(w, ex.Body, mayRaise)
	w.pop()
	w.line("}")
}

func quoteKinds(kinds []string) string {
	out := ""
	for i, k := range kinds {
		if i > 0 {
			out += " | "
		}
		out += `"` + k + `"`
	}
	return out
}
