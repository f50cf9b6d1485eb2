package ast

import "github.com/tanep3/Tsuchinoko/internal/token"

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (n *Identifier) expressionNode()      {}
func (n *Identifier) TokenLiteral() string { return n.Token.Lexeme }
func (n *Identifier) GetToken() token.Token { return n.Token }

// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral, NoneLiteral are the
// literal leaf nodes of spec §3 ("literal").
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntLiteral) expressionNode()       {}
func (n *IntLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IntLiteral) GetToken() token.Token { return n.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (n *FloatLiteral) expressionNode()       {}
func (n *FloatLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FloatLiteral) GetToken() token.Token { return n.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()       {}
func (n *StringLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *StringLiteral) GetToken() token.Token { return n.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) expressionNode()       {}
func (n *BoolLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *BoolLiteral) GetToken() token.Token { return n.Token }

type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) expressionNode()       {}
func (n *NoneLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NoneLiteral) GetToken() token.Token { return n.Token }

// FStringLiteral is a formatted string literal with embedded expressions
// (spec §6 "f-strings"). Parts alternate literal text and expressions in
// source order; Exprs[i] corresponds to the i-th "{}" placeholder.
type FStringLiteral struct {
	Token     token.Token
	TextParts []string
	Exprs     []Expression
}

func (n *FStringLiteral) expressionNode()       {}
func (n *FStringLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FStringLiteral) GetToken() token.Token { return n.Token }

// BinaryExpr is a binary operator application, including bitwise, shift,
// power, and matrix-multiplication (spec §6).
type BinaryExpr struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (n *BinaryExpr) expressionNode()       {}
func (n *BinaryExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *BinaryExpr) GetToken() token.Token { return n.Token }

// UnaryExpr is a prefix unary operator application (-, +, ~, not).
type UnaryExpr struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (n *UnaryExpr) expressionNode()       {}
func (n *UnaryExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *UnaryExpr) GetToken() token.Token { return n.Token }

// CompareExpr models chained comparisons a < b < c (spec §4.2): Ops[i]
// compares Operands[i] to Operands[i+1]; len(Ops) == len(Operands)-1.
type CompareExpr struct {
	Token    token.Token
	Operands []Expression
	Ops      []string
}

func (n *CompareExpr) expressionNode()       {}
func (n *CompareExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *CompareExpr) GetToken() token.Token { return n.Token }

// BoolOpExpr is a short-circuiting `and`/`or` chain.
type BoolOpExpr struct {
	Token    token.Token
	Op       string // "and" | "or"
	Operands []Expression
}

func (n *BoolOpExpr) expressionNode()       {}
func (n *BoolOpExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *BoolOpExpr) GetToken() token.Token { return n.Token }

// CallExpr is a function or constructor call, possibly with keyword args.
type CallExpr struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
	KwArgs   []KeywordArg
	StarArgs Expression // non-nil for *args expansion at the call site
}

func (n *CallExpr) expressionNode()       {}
func (n *CallExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *CallExpr) GetToken() token.Token { return n.Token }

// KeywordArg is a single `name=value` call argument.
type KeywordArg struct {
	Name  string
	Value Expression
}

// MethodCallExpr is `receiver.method(args...)`, split from a generic call
// because the IR matcher (spec §4.2) treats attribute-call specially for
// bridge classification (spec §4.3 "External classification").
type MethodCallExpr struct {
	Token    token.Token
	Receiver Expression
	Method   string
	Args     []Expression
	KwArgs   []KeywordArg
}

func (n *MethodCallExpr) expressionNode()       {}
func (n *MethodCallExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *MethodCallExpr) GetToken() token.Token { return n.Token }

// AttributeExpr is `value.attr`.
type AttributeExpr struct {
	Token token.Token
	Value Expression
	Attr  string
}

func (n *AttributeExpr) expressionNode()       {}
func (n *AttributeExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *AttributeExpr) GetToken() token.Token { return n.Token }

// IndexExpr is `value[index]`.
type IndexExpr struct {
	Token token.Token
	Value Expression
	Index Expression
}

func (n *IndexExpr) expressionNode()       {}
func (n *IndexExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IndexExpr) GetToken() token.Token { return n.Token }

// SliceExpr is `value[start:stop:step]`; any of the three may be nil.
type SliceExpr struct {
	Token             token.Token
	Value             Expression
	Start, Stop, Step Expression
}

func (n *SliceExpr) expressionNode()       {}
func (n *SliceExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *SliceExpr) GetToken() token.Token { return n.Token }

// ListExpr, SetExpr are homogeneous container literals.
type ListExpr struct {
	Token    token.Token
	Elements []Expression
}

func (n *ListExpr) expressionNode()       {}
func (n *ListExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ListExpr) GetToken() token.Token { return n.Token }

type SetExpr struct {
	Token    token.Token
	Elements []Expression
}

func (n *SetExpr) expressionNode()       {}
func (n *SetExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *SetExpr) GetToken() token.Token { return n.Token }

// TupleExpr is a fixed-arity heterogeneous tuple, including swap targets
// (a, b = b, a) when it appears on an assignment's left-hand side.
type TupleExpr struct {
	Token    token.Token
	Elements []Expression
	// StarIndex is the index of a starred "rest" element (spec §6, "tuple
	// unpack with starred rest"), or -1 if none.
	StarIndex int
}

func (n *TupleExpr) expressionNode()       {}
func (n *TupleExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *TupleExpr) GetToken() token.Token { return n.Token }

// DictEntry is one key:value pair of a dict literal/comprehension.
type DictEntry struct {
	Key   Expression
	Value Expression
}

type DictExpr struct {
	Token   token.Token
	Entries []DictEntry
}

func (n *DictExpr) expressionNode()       {}
func (n *DictExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *DictExpr) GetToken() token.Token { return n.Token }

// CompFor is one `for target in iter [if cond]*` clause of a comprehension,
// preserved in source order to keep nested-for evaluation order (spec §4.4).
type CompFor struct {
	Target Expression
	Iter   Expression
	Ifs    []Expression
}

// ListCompExpr, DictCompExpr, SetCompExpr are the three comprehension forms
// (spec §3, §4.4).
type ListCompExpr struct {
	Token   token.Token
	Element Expression
	Clauses []CompFor
}

func (n *ListCompExpr) expressionNode()       {}
func (n *ListCompExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ListCompExpr) GetToken() token.Token { return n.Token }

type SetCompExpr struct {
	Token   token.Token
	Element Expression
	Clauses []CompFor
}

func (n *SetCompExpr) expressionNode()       {}
func (n *SetCompExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *SetCompExpr) GetToken() token.Token { return n.Token }

type DictCompExpr struct {
	Token   token.Token
	Key     Expression
	Value   Expression
	Clauses []CompFor
}

func (n *DictCompExpr) expressionNode()       {}
func (n *DictCompExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *DictCompExpr) GetToken() token.Token { return n.Token }

// LambdaExpr is an anonymous single-expression function.
type LambdaExpr struct {
	Token  token.Token
	Params []Param
	Body   Expression
}

func (n *LambdaExpr) expressionNode()       {}
func (n *LambdaExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *LambdaExpr) GetToken() token.Token { return n.Token }

// IsExpr is `x is None` / `x is not None`, split out because it drives
// Option<T> narrowing (spec §3 "Narrowing rules").
type IsExpr struct {
	Token    token.Token
	Operand  Expression
	Negated  bool // "is not"
	TargetIsNone bool
}

func (n *IsExpr) expressionNode()       {}
func (n *IsExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IsExpr) GetToken() token.Token { return n.Token }
