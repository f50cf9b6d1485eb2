package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanep3/Tsuchinoko/internal/ir"
)

// expr lowers one IR expression node to a Rust expression string. Any node
// flagged BridgeRequired is routed through the client crate's RPC surface
// instead of native Rust syntax (spec §4.6 "Bridge protocol"), mirroring
// original_source/src/bridge/worker.py's call_function/call_method/
// get_attribute/get_item/slice/iter dispatch.
func (g *Generator) expr(n ir.Node) string {
	if n == nil {
		return "()"
	}
	switch v := n.(type) {
	case *ir.Name:
		if _, ok := g.hoisted[v.Ident]; ok {
			return v.Ident + ".clone().unwrap()"
		}
		return v.Ident
	case *ir.Literal:
		return literalExpr(v.Value)
	case *ir.ListLit:
		return "vec![" + g.exprList(v.Elems) + "]"
	case *ir.TupleLit:
		return "(" + g.exprList(v.Elems) + ")"
	case *ir.SetLit:
		return fmt.Sprintf("[%s].into_iter().collect::<std::collections::HashSet<_>>()", g.exprList(v.Elems))
	case *ir.DictLit:
		return g.dictLitExpr(v)
	case *ir.Comprehension:
		return g.comprehensionExpr(v)
	case *ir.BinOp:
		return fmt.Sprintf("(%s %s %s)", g.expr(v.Left), rustBinOp(v.Op), g.expr(v.Right))
	case *ir.UnaryOp:
		return fmt.Sprintf("(%s%s)", rustUnaryOp(v.Op), g.expr(v.Operand))
	case *ir.Compare:
		return g.compareExpr(v)
	case *ir.Call:
		return g.callExpr(v)
	case *ir.MethodCall:
		return g.methodCallExpr(v)
	case *ir.Attribute:
		return g.attributeExpr(v)
	case *ir.ItemAccess:
		return g.itemAccessExpr(v)
	case *ir.Slice:
		return g.sliceExpr(v)
	case *ir.Lambda:
		return g.lambdaExpr(v)
	case *ir.FString:
		return g.fstringExpr(v)
	case *ir.RangeCall:
		return g.rangeExpr(v)
	case *ir.ListCall:
		return fmt.Sprintf("%s.into_iter().collect::<Vec<_>>()", g.expr(v.Arg))
	case *ir.LenCall:
		return fmt.Sprintf("(%s.len() as i64)", g.expr(v.Arg))
	case *ir.PrintCall:
		return g.printExpr(v)
	case *ir.IsInstanceCall:
		return fmt.Sprintf("%s.is_instance(\"%s\")", g.expr(v.Value), v.ClassName)
	}
	return "/* unsupported expr */ Default::default()"
}

func (g *Generator) exprList(nodes []ir.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = g.expr(n)
	}
	return joinComma(parts)
}

func literalExpr(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "None::<()>"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return strconv.Quote(t)
	}
	return fmt.Sprintf("%v", v)
}

func rustBinOp(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	case "//":
		return "/"
	default:
		return op
	}
}

func rustUnaryOp(op string) string {
	switch op {
	case "not":
		return "!"
	default:
		return op
	}
}

func (g *Generator) compareExpr(v *ir.Compare) string {
	if len(v.Operands) == 2 {
		return fmt.Sprintf("(%s %s %s)", g.expr(v.Operands[0]), pyCompareOp(v.Ops[0]), g.expr(v.Operands[1]))
	}
	parts := make([]string, len(v.Ops))
	for i, op := range v.Ops {
		parts[i] = fmt.Sprintf("(%s %s %s)", g.expr(v.Operands[i]), pyCompareOp(op), g.expr(v.Operands[i+1]))
	}
	return "(" + strings.Join(parts, " && ") + ")"
}

func pyCompareOp(op string) string {
	switch op {
	case "is":
		return "=="
	case "is not":
		return "!="
	default:
		return op
	}
}

func (g *Generator) dictLitExpr(v *ir.DictLit) string {
	var b strings.Builder
	b.WriteString("std::collections::HashMap::from([")
	for i, e := range v.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%s, %s)", g.expr(e.Key), g.expr(e.Value))
	}
	b.WriteString("])")
	return b.String()
}

// comprehensionExpr lowers a (possibly multi-clause, multi-filter)
// comprehension to an iterator chain: each clause becomes a flat_map/filter
// pair, terminated by a collector matching its kind (spec §4.4
// "comprehensions lower to initialize-then-iterate-then-push").
func (g *Generator) comprehensionExpr(v *ir.Comprehension) string {
	var b strings.Builder
	b.WriteString(g.iterExpr(v.Clauses[0].Iterable))
	b.WriteString(".into_iter()")
	for _, f := range v.Clauses[0].Ifs {
		fmt.Fprintf(&b, ".filter(|%s| %s)", v.Clauses[0].VarName, g.expr(f))
	}
	for _, c := range v.Clauses[1:] {
		fmt.Fprintf(&b, ".flat_map(|%s| %s.into_iter()", c.VarName, g.iterExpr(c.Iterable))
		for _, f := range c.Ifs {
			fmt.Fprintf(&b, ".filter(|%s| %s)", c.VarName, g.expr(f))
		}
		b.WriteString(")")
	}
	switch v.Kind {
	case ir.CompDict:
		fmt.Fprintf(&b, ".map(|%s| (%s, %s)).collect::<std::collections::HashMap<_, _>>()",
			v.Clauses[len(v.Clauses)-1].VarName, g.expr(v.KeyExpr), g.expr(v.Element))
	case ir.CompSet:
		fmt.Fprintf(&b, ".map(|%s| %s).collect::<std::collections::HashSet<_>>()",
			v.Clauses[len(v.Clauses)-1].VarName, g.expr(v.Element))
	default:
		fmt.Fprintf(&b, ".map(|%s| %s).collect::<Vec<_>>()",
			v.Clauses[len(v.Clauses)-1].VarName, g.expr(v.Element))
	}
	return b.String()
}

func (g *Generator) callExpr(v *ir.Call) string {
	if v.Flags().BridgeRequired {
		name, ok := v.Callee.(*ir.Name)
		callee := "\"\""
		if ok {
			callee = strconv.Quote(name.Ident)
		}
		expr := fmt.Sprintf("Bridge::call_function(%s, vec![%s])", callee, g.exprList(v.Args))
		if v.Flags().MayRaise {
			return expr + "?"
		}
		return expr + ".unwrap()"
	}
	calleeStr := g.expr(v.Callee)
	expr := fmt.Sprintf("%s(%s)", calleeStr, g.exprList(v.Args))
	if v.Flags().MayRaise {
		return expr + "?"
	}
	return expr
}

func (g *Generator) methodCallExpr(v *ir.MethodCall) string {
	if v.Flags().BridgeRequired {
		expr := fmt.Sprintf("Bridge::call_method(%s, %q, vec![%s])", g.expr(v.Receiver), v.Method, g.exprList(v.Args))
		if v.Flags().MayRaise {
			return expr + "?"
		}
		return expr + ".unwrap()"
	}
	expr := fmt.Sprintf("%s.%s(%s)", g.expr(v.Receiver), v.Method, g.exprList(v.Args))
	if v.Flags().MayRaise {
		return expr + "?"
	}
	return expr
}

func (g *Generator) attributeExpr(v *ir.Attribute) string {
	if v.Flags().BridgeRequired {
		return fmt.Sprintf("Bridge::get_attribute(%s, %q)", g.expr(v.Receiver), v.Attr)
	}
	return fmt.Sprintf("%s.%s", g.expr(v.Receiver), v.Attr)
}

func (g *Generator) itemAccessExpr(v *ir.ItemAccess) string {
	if v.Flags().BridgeRequired {
		return fmt.Sprintf("Bridge::get_item(%s, %s)", g.expr(v.Receiver), g.expr(v.Key))
	}
	return fmt.Sprintf("%s[%s]", g.expr(v.Receiver), g.expr(v.Key))
}

// sliceExpr handles the zero-step ValueError edge case (spec §8 test
// scenario "slice step=0 raises ValueError") by always routing through the
// bridge slice helper, which validates step at runtime the same way
// original_source's slice() builtin does.
func (g *Generator) sliceExpr(v *ir.Slice) string {
	start, stop, step := "None", "None", "None"
	if v.Start != nil {
		start = "Some(" + g.expr(v.Start) + ")"
	}
	if v.Stop != nil {
		stop = "Some(" + g.expr(v.Stop) + ")"
	}
	if v.Step != nil {
		step = "Some(" + g.expr(v.Step) + ")"
	}
	return fmt.Sprintf("Bridge::slice(%s, %s, %s, %s)?", g.expr(v.Receiver), start, stop, step)
}

func (g *Generator) lambdaExpr(v *ir.Lambda) string {
	params := make([]string, len(v.Params))
	for i, p := range v.Params {
		params[i] = p.Name
	}
	return fmt.Sprintf("|%s| %s", joinComma(params), g.expr(v.Body))
}

// printExpr lowers print(...) to Rust print! with Python's sep/end
// defaults (spec §3), joining arguments with sep and always appending end
// (a newline by default) to the format string itself.
func (g *Generator) printExpr(v *ir.PrintCall) string {
	sep := v.Sep
	if sep == "" {
		sep = " "
	}
	end := v.End
	if v.End == "" {
		end = "\n"
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = g.formatValue(a)
	}
	quotedEnd := strconv.Quote(end)
	quotedEnd = quotedEnd[1 : len(quotedEnd)-1] // strip the surrounding quotes, keep the escapes
	if len(parts) == 0 {
		return fmt.Sprintf("print!(\"%s\")", quotedEnd)
	}
	placeholders := strings.Repeat("{}"+sep, len(parts))
	placeholders = strings.TrimSuffix(placeholders, sep)
	return fmt.Sprintf("print!(\"%s%s\", %s)", placeholders, quotedEnd, joinComma(parts))
}

// fstringExpr lowers f-strings using the per-type formatting rules (spec
// §4.4 "primitives via Display, containers via Debug, bridge handles via
// their stored str() or repr() fallback").
func (g *Generator) fstringExpr(v *ir.FString) string {
	var fmtStr strings.Builder
	var args []string
	for _, p := range v.Parts {
		if p.Expr == nil {
			fmtStr.WriteString(strings.ReplaceAll(strings.ReplaceAll(p.Literal, "{", "{{"), "}", "}}"))
			continue
		}
		fmtStr.WriteString("{}")
		args = append(args, g.formatValue(p.Expr))
	}
	if len(args) == 0 {
		return strconv.Quote(fmtStr.String()) + ".to_string()"
	}
	return fmt.Sprintf("format!(%q, %s)", fmtStr.String(), joinComma(args))
}

func (g *Generator) formatValue(n ir.Node) string {
	e := g.expr(n)
	if n.Flags().BridgeRequired {
		return fmt.Sprintf("Bridge::display(&%s)", e)
	}
	switch n.Type().(type) {
	default:
		return e
	}
}
