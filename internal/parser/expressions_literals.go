package parser

import (
	"strings"

	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/lexer"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

func newSubLexer(src string) *lexer.Lexer { return lexer.New(src) }

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.INT:
		t := p.cur
		p.advance()
		return parseIntLiteral(t)
	case token.FLOAT:
		t := p.cur
		p.advance()
		return parseFloatLiteral(t)
	case token.STRING:
		t := p.cur
		p.advance()
		return &ast.StringLiteral{Token: t, Value: t.Lexeme}
	case token.FSTRING:
		t := p.cur
		p.advance()
		return p.parseFString(t)
	case token.TRUE:
		t := p.cur
		p.advance()
		return &ast.BoolLiteral{Token: t, Value: true}
	case token.FALSE:
		t := p.cur
		p.advance()
		return &ast.BoolLiteral{Token: t, Value: false}
	case token.NONE:
		t := p.cur
		p.advance()
		return &ast.NoneLiteral{Token: t}
	case token.IDENT:
		t := p.cur
		p.advance()
		return &ast.Identifier{Token: t, Value: t.Lexeme}
	case token.LPAREN:
		p.advance()
		if p.curIs(token.RPAREN) {
			t := p.cur
			p.advance()
			return &ast.TupleExpr{Token: t, StarIndex: -1}
		}
		inner := p.parseTupleOrExpr()
		p.expect(token.RPAREN, "')'")
		return inner
	case token.LBRACKET:
		return p.parseListOrListComp()
	case token.LBRACE:
		return p.parseDictOrSetOrComp()
	case token.LAMBDA:
		return p.parseLambda()
	default:
		t := p.cur
		p.errorf(diagnostics.SyntaxError, "unexpected token %q in expression", p.cur.Lexeme)
		p.advance()
		return &ast.NoneLiteral{Token: t}
	}
}

func (p *Parser) parseLambda() ast.Expression {
	t := p.cur
	p.advance()
	var params []ast.Param
	for !p.curIs(token.COLON) && !p.curIs(token.EOF) {
		params = append(params, ast.Param{Name: p.expect(token.IDENT, "parameter").Lexeme})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.COLON, "':'")
	body := p.parseExpression(LOWEST)
	return &ast.LambdaExpr{Token: t, Params: params, Body: body}
}

// parseListOrListComp parses `[elt, ...]` or `[elt for t in it [if c]*]`
// (spec §3, §4.4).
func (p *Parser) parseListOrListComp() ast.Expression {
	t := p.cur
	p.advance() // '['
	if p.curIs(token.RBRACKET) {
		p.advance()
		return &ast.ListExpr{Token: t}
	}
	first := p.parseExpression(LOWEST)
	if p.curIs(token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACKET, "']'")
		return &ast.ListCompExpr{Token: t, Element: first, Clauses: clauses}
	}
	elems := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACKET) {
			break
		}
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACKET, "']'")
	return &ast.ListExpr{Token: t, Elements: elems}
}

// parseDictOrSetOrComp parses `{}`, `{k: v, ...}`, `{e, ...}`, and the dict
// and set comprehension forms.
func (p *Parser) parseDictOrSetOrComp() ast.Expression {
	t := p.cur
	p.advance() // '{'
	if p.curIs(token.RBRACE) {
		p.advance()
		return &ast.DictExpr{Token: t}
	}
	firstKeyOrElem := p.parseExpression(LOWEST)
	if p.curIs(token.COLON) {
		p.advance()
		firstVal := p.parseExpression(LOWEST)
		if p.curIs(token.FOR) {
			clauses := p.parseCompClauses()
			p.expect(token.RBRACE, "'}'")
			return &ast.DictCompExpr{Token: t, Key: firstKeyOrElem, Value: firstVal, Clauses: clauses}
		}
		entries := []ast.DictEntry{{Key: firstKeyOrElem, Value: firstVal}}
		for p.curIs(token.COMMA) {
			p.advance()
			if p.curIs(token.RBRACE) {
				break
			}
			k := p.parseExpression(LOWEST)
			p.expect(token.COLON, "':'")
			v := p.parseExpression(LOWEST)
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		p.expect(token.RBRACE, "'}'")
		return &ast.DictExpr{Token: t, Entries: entries}
	}

	if p.curIs(token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACE, "'}'")
		return &ast.SetCompExpr{Token: t, Element: firstKeyOrElem, Clauses: clauses}
	}

	elems := []ast.Expression{firstKeyOrElem}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACE) {
			break
		}
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.SetExpr{Token: t, Elements: elems}
}

// parseCompClauses parses `for t in it [if c]* [for t2 in it2 [if c2]*]*`,
// preserving source order (spec §4.4 "preserving the source's nested-for
// order").
func (p *Parser) parseCompClauses() []ast.CompFor {
	var clauses []ast.CompFor
	for p.curIs(token.FOR) {
		p.advance()
		target := p.parseExpression(COMPARE + 1)
		if p.curIs(token.COMMA) {
			tup := &ast.TupleExpr{Token: target.GetToken(), StarIndex: -1, Elements: []ast.Expression{target}}
			for p.curIs(token.COMMA) {
				p.advance()
				tup.Elements = append(tup.Elements, p.parseExpression(COMPARE+1))
			}
			target = tup
		}
		p.expect(token.IN, "'in'")
		iter := p.parseExpression(COMPARE + 1)
		clause := ast.CompFor{Target: target, Iter: iter}
		for p.curIs(token.IF) {
			p.advance()
			clause.Ifs = append(clause.Ifs, p.parseExpression(LOWEST))
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// parseFString splits the raw f-string contents captured by the lexer into
// literal text segments and `{expr}` segments (spec §6, §4.4).
func (p *Parser) parseFString(t token.Token) ast.Expression {
	raw := t.Lexeme
	node := &ast.FStringLiteral{Token: t}
	var textBuf strings.Builder
	i := 0
	for i < len(raw) {
		ch := raw[i]
		if ch == '{' && i+1 < len(raw) && raw[i+1] == '{' {
			textBuf.WriteByte('{')
			i += 2
			continue
		}
		if ch == '}' && i+1 < len(raw) && raw[i+1] == '}' {
			textBuf.WriteByte('}')
			i += 2
			continue
		}
		if ch == '{' {
			node.TextParts = append(node.TextParts, textBuf.String())
			textBuf.Reset()
			depth := 1
			start := i + 1
			j := start
			for j < len(raw) && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			exprSrc := raw[start:j]
			sub := New(newSubLexer(exprSrc), p.file)
			expr := sub.parseExpression(LOWEST)
			p.bag.Merge(sub.bag)
			node.Exprs = append(node.Exprs, expr)
			i = j + 1
			continue
		}
		textBuf.WriteByte(ch)
		i++
	}
	node.TextParts = append(node.TextParts, textBuf.String())
	return node
}
