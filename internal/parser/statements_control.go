package parser

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

// parseIf recognizes `if __name__ == "__main__":` at module level as the
// entry-point carrier (spec §4.2) before falling back to a generic IfStmt.
// elif chains are flattened into nested IfStmt values in the Else slot.
func (p *Parser) parseIf() ast.Statement {
	t := p.cur
	p.advance()
	cond := p.parseExpression(LOWEST)

	if isMainGuard(cond) {
		body := p.parseBlock()
		return &ast.MainGuardStmt{Token: t, Body: body}
	}

	body := p.parseBlock()
	stmt := &ast.IfStmt{Token: t, Cond: cond, Body: body}

	if p.curIs(token.ELIF) {
		elifTok := p.cur
		elifStmt := p.parseElifChain(elifTok)
		stmt.Else = []ast.Statement{elifStmt}
		return stmt
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseElifChain(t token.Token) ast.Statement {
	p.advance() // consume ELIF
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock()
	stmt := &ast.IfStmt{Token: t, Cond: cond, Body: body}
	if p.curIs(token.ELIF) {
		stmt.Else = []ast.Statement{p.parseElifChain(p.cur)}
	} else if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func isMainGuard(cond ast.Expression) bool {
	cmp, ok := cond.(*ast.CompareExpr)
	if !ok || len(cmp.Ops) != 1 || cmp.Ops[0] != "==" {
		return false
	}
	name, ok := cmp.Operands[0].(*ast.Identifier)
	if !ok || name.Value != "__name__" {
		return false
	}
	lit, ok := cmp.Operands[1].(*ast.StringLiteral)
	return ok && lit.Value == "__main__"
}

func (p *Parser) parseFor() ast.Statement {
	t := p.cur
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
	iter := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return &ast.ForStmt{Token: t, Target: target, Iter: iter, Body: body}
}

func (p *Parser) parseWhile() ast.Statement {
	t := p.cur
	p.advance()
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return &ast.WhileStmt{Token: t, Cond: cond, Body: body}
}

func (p *Parser) parseTry() ast.Statement {
	t := p.cur
	p.advance()
	body := p.parseBlock()
	stmt := &ast.TryStmt{Token: t, Body: body}

	for p.curIs(token.EXCEPT) {
		p.advance()
		var clause ast.ExceptClause
		if !p.curIs(token.COLON) {
			clause.Kind = p.expect(token.IDENT, "exception kind").Lexeme
			if p.curIs(token.AS) {
				p.advance()
				clause.As = p.expect(token.IDENT, "identifier").Lexeme
			}
		}
		clause.Body = p.parseBlock()
		stmt.Excepts = append(stmt.Excepts, clause)
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	if p.curIs(token.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWith() ast.Statement {
	t := p.cur
	p.advance()
	stmt := &ast.WithStmt{Token: t}
	for {
		item := ast.WithItem{Expr: p.parseExpression(LOWEST)}
		if p.curIs(token.AS) {
			p.advance()
			item.As = p.expect(token.IDENT, "identifier").Lexeme
		}
		stmt.Items = append(stmt.Items, item)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseImport() ast.Statement {
	t := p.cur
	p.advance()
	mod := p.parseDottedName()
	stmt := &ast.ImportStmt{Token: t, Module: mod}
	if p.curIs(token.AS) {
		p.advance()
		stmt.Alias = p.expect(token.IDENT, "identifier").Lexeme
	}
	return stmt
}

func (p *Parser) parseFromImport() ast.Statement {
	t := p.cur
	p.advance()
	mod := p.parseDottedName()
	p.expect(token.IMPORT, "'import'")
	stmt := &ast.FromImportStmt{Token: t, Module: mod}
	for {
		name := p.expect(token.IDENT, "identifier").Lexeme
		fi := ast.FromImportName{Name: name}
		if p.curIs(token.AS) {
			p.advance()
			fi.Alias = p.expect(token.IDENT, "identifier").Lexeme
		}
		stmt.Names = append(stmt.Names, fi)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return stmt
}

func (p *Parser) parseDottedName() string {
	name := p.expect(token.IDENT, "identifier").Lexeme
	for p.curIs(token.DOT) {
		p.advance()
		name += "." + p.expect(token.IDENT, "identifier").Lexeme
	}
	return name
}
