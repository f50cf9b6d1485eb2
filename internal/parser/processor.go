// Package parser implements the recursive-descent parser of C1 (spec §4.1).
// On a syntax error it reports a diagnostic and recovers to the next
// statement boundary so a single run can surface more than one problem,
// matching the teacher's internal/parser file-per-concern split
// (expressions_*.go, statements*.go) and its processor.go entry point.
package parser

import (
	"strconv"

	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/lexer"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

type Parser struct {
	l    *lexer.Lexer
	file string
	bag  *diagnostics.Bag

	cur  token.Token
	peek token.Token
}

func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file, bag: &diagnostics.Bag{}}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(tt token.Type) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peek.Type == tt }

func (p *Parser) expect(tt token.Type, what string) token.Token {
	if !p.curIs(tt) {
		p.errorf(diagnostics.SyntaxError, "expected %s, got %q", what, p.cur.Lexeme)
		return p.cur
	}
	t := p.cur
	p.advance()
	return t
}

func (p *Parser) errorf(code diagnostics.Code, format string, args ...interface{}) {
	p.bag.Addf(code, p.cur, p.file, format, args...)
}

// recover skips tokens until the next NEWLINE/DEDENT/EOF so parsing can
// resume at the next statement, per spec §4.1.
func (p *Parser) recover() {
	for !p.curIs(token.NEWLINE) && !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		p.advance()
	}
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// Parse runs the parser to completion and returns the Program along with
// every diagnostic collected, errors included.
func Parse(source, file string) (*ast.Program, *diagnostics.Bag) {
	p := New(lexer.New(source), file)
	return p.ParseProgram(), p.bag
}

func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// parseBlock consumes `: NEWLINE INDENT stmt* DEDENT`.
func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.COLON, "':'")
	if p.curIs(token.NEWLINE) {
		p.advance()
		p.expect(token.INDENT, "indented block")
		var stmts []ast.Statement
		for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
			if p.curIs(token.NEWLINE) {
				p.advance()
				continue
			}
			s := p.parseStatement()
			if s != nil {
				stmts = append(stmts, s)
			}
		}
		if p.curIs(token.DEDENT) {
			p.advance()
		}
		return stmts
	}
	// Single-line suite: `if x: return y`
	s := p.parseSimpleStatement()
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	if s == nil {
		return nil
	}
	return []ast.Statement{s}
}

func parseIntLiteral(tok token.Token) *ast.IntLiteral {
	v, _ := strconv.ParseInt(tok.Lexeme, 0, 64)
	return &ast.IntLiteral{Token: tok, Value: v}
}

func parseFloatLiteral(tok token.Token) *ast.FloatLiteral {
	v, _ := strconv.ParseFloat(tok.Lexeme, 64)
	return &ast.FloatLiteral{Token: tok, Value: v}
}
