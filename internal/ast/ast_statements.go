package ast

import "github.com/tanep3/Tsuchinoko/internal/token"

// Param is one function/lambda parameter: name, optional type annotation,
// optional default, and *args/**kwargs markers (spec §6).
type Param struct {
	Name       string
	TypeAnnot  string // empty if unannotated (only lambdas may omit it)
	Default    Expression
	IsStarArgs bool
	IsKwArgs   bool
}

// FunctionDef is `def name(params) -> ret: body` (spec §6).
type FunctionDef struct {
	Token      token.Token
	Name       string
	Params     []Param
	ReturnType string // empty means Unit
	Body       []Statement
	// IsMethod/ReceiverName are set when the matcher lowers a class body's
	// function into a method (spec §6 "single inheritance").
	IsMethod     bool
	ReceiverName string
}

func (n *FunctionDef) statementNode()      {}
func (n *FunctionDef) TokenLiteral() string { return n.Token.Lexeme }
func (n *FunctionDef) GetToken() token.Token { return n.Token }

// Field is one annotated class/dataclass field.
type Field struct {
	Name      string
	TypeAnnot string
	Default   Expression
}

// PropertyDef is an `@property` getter, with an optional paired setter
// (spec §6).
type PropertyDef struct {
	Getter *FunctionDef
	Setter *FunctionDef
}

// ClassDef is a class or dataclass-decorated class with single inheritance
// (spec §6, §9 "Inheritance").
type ClassDef struct {
	Token      token.Token
	Name       string
	BaseName   string // empty if no base class
	IsDataclass bool
	Fields     []Field
	Methods    []*FunctionDef
	Properties []*PropertyDef
}

func (n *ClassDef) statementNode()      {}
func (n *ClassDef) TokenLiteral() string { return n.Token.Lexeme }
func (n *ClassDef) GetToken() token.Token { return n.Token }

// AssignStmt is `target = value`, where target may be a Name, Attribute,
// Index, or Tuple (for unpack/swap) (spec §3).
type AssignStmt struct {
	Token     token.Token
	Target    Expression
	TypeAnnot string // non-empty for an annotated declaration
	Value     Expression
}

func (n *AssignStmt) statementNode()      {}
func (n *AssignStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *AssignStmt) GetToken() token.Token { return n.Token }

// AugAssignStmt is `target OP= value` (spec §4.2), lowered later to
// read-modify-write over the resolved lvalue.
type AugAssignStmt struct {
	Token  token.Token
	Target Expression
	Op     string // "+", "-", "*", ... (without the trailing '=')
	Value  Expression
}

func (n *AugAssignStmt) statementNode()      {}
func (n *AugAssignStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *AugAssignStmt) GetToken() token.Token { return n.Token }

// ExprStmt wraps a bare expression used as a statement (e.g. a call for
// its side effects).
type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (n *ExprStmt) statementNode()      {}
func (n *ExprStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *ExprStmt) GetToken() token.Token { return n.Token }

// ReturnStmt is `return [value]`.
type ReturnStmt struct {
	Token token.Token
	Value Expression // nil for bare `return`
}

func (n *ReturnStmt) statementNode()      {}
func (n *ReturnStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *ReturnStmt) GetToken() token.Token { return n.Token }

// PassStmt, BreakStmt, ContinueStmt are no-operand control statements.
type PassStmt struct{ Token token.Token }

func (n *PassStmt) statementNode()      {}
func (n *PassStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *PassStmt) GetToken() token.Token { return n.Token }

type BreakStmt struct{ Token token.Token }

func (n *BreakStmt) statementNode()      {}
func (n *BreakStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *BreakStmt) GetToken() token.Token { return n.Token }

type ContinueStmt struct{ Token token.Token }

func (n *ContinueStmt) statementNode()      {}
func (n *ContinueStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *ContinueStmt) GetToken() token.Token { return n.Token }

// IfStmt is `if cond: body [elif ...]* [else: orelse]`. Elif chains are
// pre-flattened by the parser into nested IfStmt.Else of length 1.
type IfStmt struct {
	Token token.Token
	Cond  Expression
	Body  []Statement
	Else  []Statement
}

func (n *IfStmt) statementNode()      {}
func (n *IfStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *IfStmt) GetToken() token.Token { return n.Token }

// ForStmt is `for target in iter: body`; a for/else clause is not parsed
// and has no field here. Range, enumerate,
// and plain iterables all parse to the same node; the matcher (spec §4.2)
// specializes range at IR-construction time.
type ForStmt struct {
	Token  token.Token
	Target Expression
	Iter   Expression
	Body   []Statement
}

func (n *ForStmt) statementNode()      {}
func (n *ForStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *ForStmt) GetToken() token.Token { return n.Token }

// WhileStmt is `while cond: body`.
type WhileStmt struct {
	Token token.Token
	Cond  Expression
	Body  []Statement
}

func (n *WhileStmt) statementNode()      {}
func (n *WhileStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *WhileStmt) GetToken() token.Token { return n.Token }

// ExceptClause is one `except Kind [as name]: body` arm of a TryStmt. Kind
// is empty for a bare catch-all (spec §7).
type ExceptClause struct {
	Kind string
	As   string
	Body []Statement
}

// TryStmt is `try: body [except ...]* [else: orelse] [finally: final]`
// (spec §6, §7).
type TryStmt struct {
	Token    token.Token
	Body     []Statement
	Excepts  []ExceptClause
	Else     []Statement
	Finally  []Statement
}

func (n *TryStmt) statementNode()      {}
func (n *TryStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *TryStmt) GetToken() token.Token { return n.Token }

// RaiseStmt is `raise Kind("message") [from cause]` (spec §6, §7).
type RaiseStmt struct {
	Token   token.Token
	Kind    string
	Message Expression
	From    Expression // nil unless "from e" is present
}

func (n *RaiseStmt) statementNode()      {}
func (n *RaiseStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *RaiseStmt) GetToken() token.Token { return n.Token }

// ImportStmt is `import module [as alias]`.
type ImportStmt struct {
	Token   token.Token
	Module  string
	Alias   string
}

func (n *ImportStmt) statementNode()      {}
func (n *ImportStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *ImportStmt) GetToken() token.Token { return n.Token }

// FromImportStmt is `from module import name [as alias], ...`.
type FromImportName struct {
	Name  string
	Alias string
}

type FromImportStmt struct {
	Token  token.Token
	Module string
	Names  []FromImportName
}

func (n *FromImportStmt) statementNode()      {}
func (n *FromImportStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *FromImportStmt) GetToken() token.Token { return n.Token }

// WithItem is one `expr [as name]` clause of a with-statement.
type WithItem struct {
	Expr Expression
	As   string
}

// WithStmt is `with item, ...: body` (spec §6 "with-scoped acquisition").
type WithStmt struct {
	Token token.Token
	Items []WithItem
	Body  []Statement
}

func (n *WithStmt) statementNode()      {}
func (n *WithStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *WithStmt) GetToken() token.Token { return n.Token }

// MainGuardStmt is `if __name__ == "__main__": body` (spec §4.2, a special
// pattern recognized before the generic IfStmt match).
type MainGuardStmt struct {
	Token token.Token
	Body  []Statement
}

func (n *MainGuardStmt) statementNode()      {}
func (n *MainGuardStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *MainGuardStmt) GetToken() token.Token { return n.Token }

// GlobalStmt declares names as referring to module scope within a function.
type GlobalStmt struct {
	Token token.Token
	Names []string
}

func (n *GlobalStmt) statementNode()      {}
func (n *GlobalStmt) TokenLiteral() string { return n.Token.Lexeme }
func (n *GlobalStmt) GetToken() token.Token { return n.Token }
