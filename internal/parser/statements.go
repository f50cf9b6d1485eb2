package parser

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.DEF:
		return p.parseFunctionDef(false, "")
	case token.CLASS:
		return p.parseClassDef()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.TRY:
		return p.parseTry()
	case token.WITH:
		return p.parseWith()
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseFromImport()
	case token.AT:
		return p.parseDataclassDecorator()
	default:
		s := p.parseSimpleStatement()
		if !p.curIs(token.EOF) && !p.curIs(token.DEDENT) {
			if p.curIs(token.NEWLINE) {
				p.advance()
			} else if p.curIs(token.SEMICOLON) {
				p.advance()
			} else {
				p.errorf(diagnostics.SyntaxError, "expected end of statement, got %q", p.cur.Lexeme)
				p.recover()
			}
		}
		return s
	}
}

// parseSimpleStatement parses the statement forms that fit on one logical
// line: assignment, augmented assignment, return, pass/break/continue,
// raise, global, or a bare expression statement.
func (p *Parser) parseSimpleStatement() ast.Statement {
	switch p.cur.Type {
	case token.RETURN:
		return p.parseReturn()
	case token.PASS:
		t := p.cur
		p.advance()
		return &ast.PassStmt{Token: t}
	case token.BREAK:
		t := p.cur
		p.advance()
		return &ast.BreakStmt{Token: t}
	case token.CONTINUE:
		t := p.cur
		p.advance()
		return &ast.ContinueStmt{Token: t}
	case token.RAISE:
		return p.parseRaise()
	case token.GLOBAL:
		return p.parseGlobal()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseReturn() ast.Statement {
	t := p.cur
	p.advance()
	if p.curIs(token.NEWLINE) || p.curIs(token.EOF) || p.curIs(token.DEDENT) || p.curIs(token.SEMICOLON) {
		return &ast.ReturnStmt{Token: t}
	}
	val := p.parseTupleOrExpr()
	return &ast.ReturnStmt{Token: t, Value: val}
}

func (p *Parser) parseRaise() ast.Statement {
	t := p.cur
	p.advance()
	stmt := &ast.RaiseStmt{Token: t}
	if p.curIs(token.NEWLINE) || p.curIs(token.EOF) {
		return stmt
	}
	// Kind("message")
	if p.curIs(token.IDENT) {
		stmt.Kind = p.cur.Lexeme
		p.advance()
		if p.curIs(token.LPAREN) {
			p.advance()
			if !p.curIs(token.RPAREN) {
				stmt.Message = p.parseExpression(LOWEST)
			}
			p.expect(token.RPAREN, "')'")
		}
	}
	if p.curIs(token.FROM) {
		p.advance()
		stmt.From = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseGlobal() ast.Statement {
	t := p.cur
	p.advance()
	stmt := &ast.GlobalStmt{Token: t}
	stmt.Names = append(stmt.Names, p.expect(token.IDENT, "identifier").Lexeme)
	for p.curIs(token.COMMA) {
		p.advance()
		stmt.Names = append(stmt.Names, p.expect(token.IDENT, "identifier").Lexeme)
	}
	return stmt
}

// parseExprOrAssignStatement handles plain expression statements, simple
// and annotated assignment, tuple targets (including swaps), and every
// augmented-assignment operator (spec §4.2).
func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	t := p.cur
	first := p.parseTupleOrExpr()

	if p.curIs(token.COLON) && isAssignableTarget(first) {
		p.advance()
		typeName := p.parseTypeAnnotation()
		if p.curIs(token.ASSIGN) {
			p.advance()
			val := p.parseTupleOrExpr()
			return &ast.AssignStmt{Token: t, Target: first, TypeAnnot: typeName, Value: val}
		}
		return &ast.AssignStmt{Token: t, Target: first, TypeAnnot: typeName}
	}

	if op, ok := augAssignOp(p.cur.Type); ok {
		p.advance()
		val := p.parseTupleOrExpr()
		return &ast.AugAssignStmt{Token: t, Target: first, Op: op, Value: val}
	}

	if p.curIs(token.ASSIGN) {
		p.advance()
		val := p.parseTupleOrExpr()
		return &ast.AssignStmt{Token: t, Target: first, Value: val}
	}

	return &ast.ExprStmt{Token: t, Expr: first}
}

func isAssignableTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.AttributeExpr, *ast.IndexExpr, *ast.TupleExpr:
		return true
	}
	return false
}

func augAssignOp(tt token.Type) (string, bool) {
	switch tt {
	case token.PLUSEQ:
		return "+", true
	case token.MINUSEQ:
		return "-", true
	case token.STAREQ:
		return "*", true
	case token.SLASHEQ:
		return "/", true
	case token.PERCENTEQ:
		return "%", true
	case token.DSTAREQ:
		return "**", true
	case token.LSHIFTEQ:
		return "<<", true
	case token.RSHIFTEQ:
		return ">>", true
	case token.AMPEQ:
		return "&", true
	case token.PIPEEQ:
		return "|", true
	case token.CARETEQ:
		return "^", true
	}
	return "", false
}

// parseTupleOrExpr parses `expr [, expr]*` as a TupleExpr when a comma
// follows, supporting both multi-assignment targets and bare tuple values,
// including the starred "rest" element (spec §6).
func (p *Parser) parseTupleOrExpr() ast.Expression {
	first := p.parseStarrableExpr()
	if !p.curIs(token.COMMA) {
		return first
	}
	tup := &ast.TupleExpr{Token: first.GetToken(), StarIndex: starIndexOf(first), Elements: []ast.Expression{first}}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.ASSIGN) || p.curIs(token.NEWLINE) || p.curIs(token.EOF) || p.curIs(token.COLON) {
			break
		}
		e := p.parseStarrableExpr()
		if si := starIndexOf(e); si == 0 {
			tup.StarIndex = len(tup.Elements)
		}
		tup.Elements = append(tup.Elements, e)
	}
	return tup
}

// parseStarrableExpr parses `*expr` (the starred "rest" element of a tuple
// unpack) or a plain expression.
func (p *Parser) parseStarrableExpr() ast.Expression {
	if p.curIs(token.STAR) {
		t := p.cur
		p.advance()
		inner := p.parseExpression(LOWEST)
		return &ast.UnaryExpr{Token: t, Op: "*rest", Operand: inner}
	}
	return p.parseExpression(LOWEST)
}

func starIndexOf(e ast.Expression) int {
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == "*rest" {
		return 0
	}
	return -1
}

func (p *Parser) parseTypeAnnotation() string {
	// Type annotations are a dotted/bracketed identifier chain, e.g.
	// list[int], Optional[str], Dict[str, int]. Captured as raw text; the
	// analyzer (C3) is responsible for turning it into a typesystem.Type.
	var out string
	depth := 0
	for {
		switch p.cur.Type {
		case token.IDENT, token.NONE:
			out += p.cur.Lexeme
			p.advance()
		case token.DOT:
			out += "."
			p.advance()
		case token.LBRACKET:
			out += "["
			depth++
			p.advance()
		case token.RBRACKET:
			out += "]"
			depth--
			p.advance()
		case token.COMMA:
			out += ", "
			p.advance()
		default:
			if depth > 0 {
				p.advance()
				continue
			}
			return out
		}
		if depth == 0 {
			if p.curIs(token.ASSIGN) || p.curIs(token.COLON) || p.curIs(token.COMMA) ||
				p.curIs(token.RPAREN) || p.curIs(token.NEWLINE) || p.curIs(token.EOF) || p.curIs(token.ARROW) {
				return out
			}
		}
	}
}
