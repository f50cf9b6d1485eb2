package parser

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/token"
)

func (p *Parser) parseFunctionDef(isMethod bool, receiver string) ast.Statement {
	t := p.cur
	p.advance()
	name := p.expect(token.IDENT, "function name").Lexeme
	p.expect(token.LPAREN, "'('")
	params := p.parseParamList()
	p.expect(token.RPAREN, "')'")

	retType := ""
	if p.curIs(token.ARROW) {
		p.advance()
		retType = p.parseTypeAnnotation()
	}
	body := p.parseBlock()
	return &ast.FunctionDef{
		Token: t, Name: name, Params: params, ReturnType: retType, Body: body,
		IsMethod: isMethod, ReceiverName: receiver,
	}
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		var param ast.Param
		if p.curIs(token.DSTAR) {
			p.advance()
			param.IsKwArgs = true
		} else if p.curIs(token.STAR) {
			p.advance()
			param.IsStarArgs = true
		}
		param.Name = p.expect(token.IDENT, "parameter name").Lexeme
		if p.curIs(token.COLON) {
			p.advance()
			param.TypeAnnot = p.parseTypeAnnotation()
		}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return params
}

func (p *Parser) parseClassDef() ast.Statement {
	t := p.cur
	p.advance()
	name := p.expect(token.IDENT, "class name").Lexeme
	class := &ast.ClassDef{Token: t, Name: name}

	if p.curIs(token.LPAREN) {
		p.advance()
		if !p.curIs(token.RPAREN) {
			class.BaseName = p.expect(token.IDENT, "base class name").Lexeme
		}
		p.expect(token.RPAREN, "')'")
	}

	p.expect(token.COLON, "':'")
	p.expect(token.NEWLINE, "newline")
	p.expect(token.INDENT, "indented class body")
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		if p.curIs(token.AT) {
			p.parseDecoratedMember(class)
			continue
		}
		if p.curIs(token.DEF) {
			fn := p.parseFunctionDef(true, name).(*ast.FunctionDef)
			class.Methods = append(class.Methods, fn)
			continue
		}
		// Annotated field: name: Type [= default]
		fieldName := p.expect(token.IDENT, "field name").Lexeme
		p.expect(token.COLON, "':'")
		typ := p.parseTypeAnnotation()
		field := ast.Field{Name: fieldName, TypeAnnot: typ}
		if p.curIs(token.ASSIGN) {
			p.advance()
			field.Default = p.parseExpression(LOWEST)
		}
		class.Fields = append(class.Fields, field)
		if p.curIs(token.NEWLINE) {
			p.advance()
		}
	}
	if p.curIs(token.DEDENT) {
		p.advance()
	}
	return class
}

// parseDecoratedMember handles @dataclass on the class itself (consumed by
// the caller before entering the body in well-formed programs; here it
// also tolerates @property/@x.setter found inside the body) and
// @property/@x.setter-decorated methods (spec §6).
func (p *Parser) parseDecoratedMember(class *ast.ClassDef) {
	p.advance() // '@'
	decoratorName := p.expect(token.IDENT, "decorator name").Lexeme
	isSetter := false
	if decoratorName != "property" && p.curIs(token.DOT) {
		p.advance()
		sub := p.expect(token.IDENT, "setter").Lexeme
		isSetter = sub == "setter"
	}
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	if !p.curIs(token.DEF) {
		return
	}
	fn := p.parseFunctionDef(true, class.Name).(*ast.FunctionDef)
	if decoratorName == "property" {
		class.Properties = append(class.Properties, &ast.PropertyDef{Getter: fn})
		return
	}
	if isSetter {
		for _, prop := range class.Properties {
			if prop.Getter.Name == fn.Name {
				prop.Setter = fn
				return
			}
		}
	}
	class.Methods = append(class.Methods, fn)
}

// parseDataclassDecorator is invoked by the top-level statement dispatcher
// when a bare `@dataclass` precedes a class statement.
func (p *Parser) parseDataclassDecorator() *ast.ClassDef {
	p.advance() // '@'
	p.expect(token.IDENT, "decorator name")
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	stmt := p.parseClassDef()
	cd := stmt.(*ast.ClassDef)
	cd.IsDataclass = true
	return cd
}
