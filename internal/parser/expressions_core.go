package parser

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

// Precedence levels, lowest to highest, following standard operator
// precedence for the subset (spec §6: bit operators, **, matrix-mult,
// chained comparisons).
const (
	LOWEST int = iota
	OR
	AND
	NOT
	COMPARE
	BITOR
	BITXOR
	BITAND
	SHIFT
	ADDSUB
	MULDIV
	UNARY
	POWER
	POSTFIX
)

var binPrec = map[token.Type]int{
	token.OR:       OR,
	token.AND:      AND,
	token.PIPE:     BITOR,
	token.CARET:    BITXOR,
	token.AMP:      BITAND,
	token.LSHIFT:   SHIFT,
	token.RSHIFT:   SHIFT,
	token.PLUS:     ADDSUB,
	token.MINUS:    ADDSUB,
	token.STAR:     MULDIV,
	token.SLASH:    MULDIV,
	token.PERCENT:  MULDIV,
	token.AT:       MULDIV,
	token.DSTAR:    POWER,
}

var compareOps = map[token.Type]string{
	token.EQ: "==", token.NOTEQ: "!=", token.LT: "<", token.LTE: "<=",
	token.GT: ">", token.GTE: ">=",
}

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		if _, ok := compareOps[p.cur.Type]; ok && COMPARE >= minPrec {
			left = p.parseCompareChain(left)
			continue
		}
		if p.curIs(token.IS) && COMPARE >= minPrec {
			left = p.parseIs(left)
			continue
		}
		if p.curIs(token.NOT) && p.peekIs(token.IN) && COMPARE >= minPrec {
			left = p.parseNotIn(left)
			continue
		}
		if p.curIs(token.IN) && COMPARE >= minPrec {
			left = p.parseIn(left, false)
			continue
		}

		prec, ok := binPrec[p.cur.Type]
		if !ok || prec < minPrec {
			break
		}

		if p.curIs(token.OR) || p.curIs(token.AND) {
			left = p.parseBoolOpChain(left, p.cur.Type, prec)
			continue
		}

		opTok := p.cur
		op := opTok.Lexeme
		nextMin := prec + 1
		if opTok.Type == token.DSTAR {
			nextMin = prec // right-associative
		}
		p.advance()
		right := p.parseExpression(nextMin)
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseBoolOpChain(first ast.Expression, opType token.Type, prec int) ast.Expression {
	t := p.cur
	op := p.cur.Lexeme
	operands := []ast.Expression{first}
	for p.cur.Type == opType {
		p.advance()
		operands = append(operands, p.parseExpression(prec+1))
	}
	return &ast.BoolOpExpr{Token: t, Op: op, Operands: operands}
}

func (p *Parser) parseCompareChain(first ast.Expression) ast.Expression {
	t := p.cur
	operands := []ast.Expression{first}
	var ops []string
	for {
		op, ok := compareOps[p.cur.Type]
		if !ok {
			break
		}
		p.advance()
		operands = append(operands, p.parseExpression(COMPARE+1))
		ops = append(ops, op)
	}
	return &ast.CompareExpr{Token: t, Operands: operands, Ops: ops}
}

func (p *Parser) parseIs(operand ast.Expression) ast.Expression {
	t := p.cur
	p.advance()
	negated := false
	if p.curIs(token.NOT) {
		negated = true
		p.advance()
	}
	isNone := false
	if p.curIs(token.NONE) {
		isNone = true
		p.advance()
		return &ast.IsExpr{Token: t, Operand: operand, Negated: negated, TargetIsNone: isNone}
	}
	rhs := p.parseExpression(COMPARE + 1)
	return &ast.CompareExpr{Token: t, Operands: []ast.Expression{operand, rhs}, Ops: []string{boolToIsOp(negated)}}
}

func boolToIsOp(negated bool) string {
	if negated {
		return "is not"
	}
	return "is"
}

func (p *Parser) parseIn(operand ast.Expression, negated bool) ast.Expression {
	t := p.cur
	p.advance()
	rhs := p.parseExpression(COMPARE + 1)
	op := "in"
	if negated {
		op = "not in"
	}
	return &ast.CompareExpr{Token: t, Operands: []ast.Expression{operand, rhs}, Ops: []string{op}}
}

func (p *Parser) parseNotIn(operand ast.Expression) ast.Expression {
	p.advance() // not
	return p.parseIn(operand, true)
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case token.NOT:
		t := p.cur
		p.advance()
		operand := p.parseExpression(NOT)
		return &ast.UnaryExpr{Token: t, Op: "not", Operand: operand}
	case token.MINUS, token.PLUS, token.TILDE:
		t := p.cur
		p.advance()
		operand := p.parseExpression(UNARY)
		return &ast.UnaryExpr{Token: t, Op: t.Lexeme, Operand: operand}
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}
