package parser

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

// parsePostfix builds the call/attribute/index/slice chain following a
// primary expression. A `.method(...)` access collapses to MethodCallExpr
// directly (rather than AttributeExpr wrapped in CallExpr) so the analyzer
// can classify bridge_required at the same node the spec describes (§4.3).
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case token.LPAREN:
			expr = p.parseCallArgs(expr)
		case token.DOT:
			p.advance()
			attrTok := p.cur
			attr := p.expect(token.IDENT, "attribute name").Lexeme
			if p.curIs(token.LPAREN) {
				args, kwargs := p.parseArgList()
				expr = &ast.MethodCallExpr{Token: attrTok, Receiver: expr, Method: attr, Args: args, KwArgs: kwargs}
			} else {
				expr = &ast.AttributeExpr{Token: attrTok, Value: expr, Attr: attr}
			}
		case token.LBRACKET:
			expr = p.parseSubscript(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Expression) ast.Expression {
	t := p.cur
	args, kwargs := p.parseArgList()
	return &ast.CallExpr{Token: t, Callee: callee, Args: args, KwArgs: kwargs}
}

func (p *Parser) parseArgList() ([]ast.Expression, []ast.KeywordArg) {
	p.expect(token.LPAREN, "'('")
	var args []ast.Expression
	var kwargs []ast.KeywordArg
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.STAR) {
			p.advance()
			args = append(args, &ast.UnaryExpr{Token: p.cur, Op: "*splat", Operand: p.parseExpression(LOWEST)})
		} else if p.curIs(token.IDENT) && p.peekIs(token.ASSIGN) {
			name := p.cur.Lexeme
			p.advance()
			p.advance()
			kwargs = append(kwargs, ast.KeywordArg{Name: name, Value: p.parseExpression(LOWEST)})
		} else {
			args = append(args, p.parseExpression(LOWEST))
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "')'")
	return args, kwargs
}

// parseSubscript parses `expr[index]` or `expr[start:stop:step]` (spec §6
// "slices with step, negative indices, reverse").
func (p *Parser) parseSubscript(value ast.Expression) ast.Expression {
	t := p.cur
	p.advance() // '['

	var start, stop, step ast.Expression
	isSlice := false

	if !p.curIs(token.COLON) {
		start = p.parseExpression(LOWEST)
	}
	if p.curIs(token.COLON) {
		isSlice = true
		p.advance()
		if !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) {
			stop = p.parseExpression(LOWEST)
		}
		if p.curIs(token.COLON) {
			p.advance()
			if !p.curIs(token.RBRACKET) {
				step = p.parseExpression(LOWEST)
			}
		}
	}
	p.expect(token.RBRACKET, "']'")

	if isSlice {
		return &ast.SliceExpr{Token: t, Value: value, Start: start, Stop: stop, Step: step}
	}
	return &ast.IndexExpr{Token: t, Value: value, Index: start}
}
