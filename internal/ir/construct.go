package ir

import (
	"github.com/tanep3/Tsuchinoko/internal/symbols"
	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// The New* helpers below exist so the analyzer can build nodes with their
// Type/Scope/Line set in one call instead of poking the embedded base
// field directly; they mirror the small per-class __init__ bodies of
// original_source/src/ir_nodes.py.

func NewName(ident string, t typesystem.Type, scope symbols.ScopeID, line int) *Name {
	return &Name{base: newBase(t, scope, line), Ident: ident}
}

func NewLiteral(v interface{}, t typesystem.Type, scope symbols.ScopeID, line int) *Literal {
	return &Literal{base: newBase(t, scope, line), Value: v}
}

func NewAssign(target string, value Node, first bool, t typesystem.Type, scope symbols.ScopeID, line int) *Assign {
	return &Assign{base: newBase(t, scope, line), Target: target, Value: value, IsFirst: first}
}

func NewBinOp(op string, l, r Node, t typesystem.Type, scope symbols.ScopeID, line int) *BinOp {
	return &BinOp{base: newBase(t, scope, line), Op: op, Left: l, Right: r}
}

func NewUnaryOp(op string, operand Node, t typesystem.Type, scope symbols.ScopeID, line int) *UnaryOp {
	return &UnaryOp{base: newBase(t, scope, line), Op: op, Operand: operand}
}

func NewCompare(operands []Node, ops []string, scope symbols.ScopeID, line int) *Compare {
	return &Compare{base: newBase(typesystem.Bool, scope, line), Operands: operands, Ops: ops}
}

func NewCall(callee Node, args []Node, kwargs map[string]Node, t typesystem.Type, scope symbols.ScopeID, line int) *Call {
	return &Call{base: newBase(t, scope, line), Callee: callee, Args: args, Kwargs: kwargs}
}

func NewMethodCall(recv Node, method string, args []Node, kwargs map[string]Node, t typesystem.Type, scope symbols.ScopeID, line int) *MethodCall {
	return &MethodCall{base: newBase(t, scope, line), Receiver: recv, Method: method, Args: args, Kwargs: kwargs}
}

func NewAttribute(recv Node, attr string, t typesystem.Type, scope symbols.ScopeID, line int) *Attribute {
	return &Attribute{base: newBase(t, scope, line), Receiver: recv, Attr: attr}
}

func NewItemAccess(recv, key Node, t typesystem.Type, scope symbols.ScopeID, line int) *ItemAccess {
	return &ItemAccess{base: newBase(t, scope, line), Receiver: recv, Key: key}
}

func NewSlice(recv, start, stop, step Node, t typesystem.Type, scope symbols.ScopeID, line int) *Slice {
	return &Slice{base: newBase(t, scope, line), Receiver: recv, Start: start, Stop: stop, Step: step}
}

func NewIf(cond Node, then, els []Node, thenScope, elseScope symbols.ScopeID, scope symbols.ScopeID, line int) *If {
	return &If{base: newBase(typesystem.Unit, scope, line), Cond: cond, Then: then, Else: els, ThenScope: thenScope, ElseScope: elseScope}
}

func NewFor(varName string, iterable Node, body []Node, bodyScope, scope symbols.ScopeID, line int) *For {
	return &For{base: newBase(typesystem.Unit, scope, line), VarName: varName, Iterable: iterable, Body: body, BodyScope: bodyScope}
}

func NewWhile(cond Node, body []Node, bodyScope, scope symbols.ScopeID, line int) *While {
	return &While{base: newBase(typesystem.Unit, scope, line), Cond: cond, Body: body, BodyScope: bodyScope}
}

func NewTry(body []Node, excepts []ExceptClause, els, fin []Node, scope symbols.ScopeID, line int) *Try {
	return &Try{base: newBase(typesystem.Unit, scope, line), Body: body, Excepts: excepts, Else: els, Finally: fin}
}

func NewRaise(kind string, msg, cause Node, scope symbols.ScopeID, line int) *Raise {
	return &Raise{base: newBase(typesystem.Unit, scope, line), Kind: kind, Msg: msg, Cause: cause}
}

func NewReturn(value Node, t typesystem.Type, scope symbols.ScopeID, line int) *Return {
	return &Return{base: newBase(t, scope, line), Value: value}
}

func NewRangeCall(start, stop, step Node, scope symbols.ScopeID, line int) *RangeCall {
	return &RangeCall{base: newBase(TList(typesystem.Int), scope, line), Start: start, Stop: stop, Step: step}
}

func NewListCall(arg Node, elem typesystem.Type, scope symbols.ScopeID, line int) *ListCall {
	return &ListCall{base: newBase(TList(elem), scope, line), Arg: arg}
}

func NewLenCall(arg Node, scope symbols.ScopeID, line int) *LenCall {
	return &LenCall{base: newBase(typesystem.Int, scope, line), Arg: arg}
}

func NewPrintCall(args []Node, sep, end string, scope symbols.ScopeID, line int) *PrintCall {
	return &PrintCall{base: newBase(typesystem.Unit, scope, line), Args: args, Sep: sep, End: end}
}

func NewIsInstanceCall(value Node, className string, scope symbols.ScopeID, line int) *IsInstanceCall {
	return &IsInstanceCall{base: newBase(typesystem.Bool, scope, line), Value: value, ClassName: className}
}

// TList is a tiny convenience wrapper so constructors above read cleanly.
func TList(elem typesystem.Type) typesystem.Type { return typesystem.TList{Elem: elem} }

func NewListLit(elems []Node, t typesystem.Type, scope symbols.ScopeID, line int) *ListLit {
	return &ListLit{base: newBase(t, scope, line), Elems: elems}
}

func NewSetLit(elems []Node, t typesystem.Type, scope symbols.ScopeID, line int) *SetLit {
	return &SetLit{base: newBase(t, scope, line), Elems: elems}
}

func NewTupleLit(elems []Node, t typesystem.Type, scope symbols.ScopeID, line int) *TupleLit {
	return &TupleLit{base: newBase(t, scope, line), Elems: elems}
}

func NewDictLit(entries []DictEntry, t typesystem.Type, scope symbols.ScopeID, line int) *DictLit {
	return &DictLit{base: newBase(t, scope, line), Entries: entries}
}

func NewComprehension(kind ComprehensionKind, element, keyExpr Node, clauses []CompClause, t typesystem.Type, scope symbols.ScopeID, line int) *Comprehension {
	return &Comprehension{base: newBase(t, scope, line), Kind: kind, Element: element, KeyExpr: keyExpr, Clauses: clauses}
}

func NewLambda(params []Param, body Node, t typesystem.Type, scope symbols.ScopeID, line int) *Lambda {
	return &Lambda{base: newBase(t, scope, line), Params: params, Body: body}
}

func NewFString(parts []FStringPart, scope symbols.ScopeID, line int) *FString {
	return &FString{base: newBase(typesystem.Str, scope, line), Parts: parts}
}

func NewTupleUnpack(targets []string, value Node, first []bool, scope symbols.ScopeID, line int) *TupleUnpack {
	return &TupleUnpack{base: newBase(typesystem.Unit, scope, line), Targets: targets, Value: value, First: first}
}

func NewAttrAssign(recv Node, attr string, value Node, scope symbols.ScopeID, line int) *AttrAssign {
	return &AttrAssign{base: newBase(typesystem.Unit, scope, line), Receiver: recv, Attr: attr, Value: value}
}

func NewAugAssign(target, op string, value Node, scope symbols.ScopeID, line int) *AugAssign {
	return &AugAssign{base: newBase(typesystem.Unit, scope, line), Target: target, Op: op, Value: value}
}

func NewWith(expr Node, varName string, body []Node, bodyScope, scope symbols.ScopeID, line int) *With {
	return &With{base: newBase(typesystem.Unit, scope, line), Expr: expr, VarName: varName, Body: body, BodyScope: bodyScope}
}

func NewImport(module, alias string, external bool, scope symbols.ScopeID, line int) *Import {
	return &Import{base: newBase(typesystem.Unit, scope, line), Module: module, Alias: alias, External: external}
}

func NewFromImport(module string, names []FromImportName, external bool, scope symbols.ScopeID, line int) *FromImport {
	return &FromImport{base: newBase(typesystem.Unit, scope, line), Module: module, Names: names, External: external}
}

func NewBreak(scope symbols.ScopeID, line int) *Break       { return &Break{base: newBase(typesystem.Unit, scope, line)} }
func NewContinue(scope symbols.ScopeID, line int) *Continue { return &Continue{base: newBase(typesystem.Unit, scope, line)} }
