// Package ast defines the source abstract syntax tree for the typed subset
// accepted by tnk (spec §3 "Source AST", §6). Every node carries its
// originating token for position-accurate diagnostics and IR provenance.
package ast

import "github.com/tanep3/Tsuchinoko/internal/token"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in an expression position.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node produced by the parser for one source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token { return token.Token{} }
