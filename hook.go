package widelips

import (
	"github.com/yazandaba/widelips/ast"
	"github.com/yazandaba/widelips/internal/diag"
	"github.com/yazandaba/widelips/internal/token"
)

// DialectHook lets a Parser subclass override what happens when the
// lazy child parser (spec.md §4.G) reaches a dialect-special reader
// byte. A single method suffices (spec.md §9 "Dialect-special
// dispatch"); the default accepts backtick, comma, and at-sign as
// operator atoms and reports everything else as an unrecognized token.
type DialectHook interface {
	ParseDialectSpecial(p *Parser, tok token.Token) *ast.Node
}

type defaultDialectHook struct{}

func (defaultDialectHook) ParseDialectSpecial(p *Parser, tok token.Token) *ast.Node {
	switch tok.Kind {
	case token.Kind('`'), token.Kind(','), token.Kind('@'):
		return p.newNode(ast.Node{Kind: ast.KindAtomOperator, Tok: tok})
	default:
		return p.onUnrecognizedToken(tok)
	}
}

func (p *Parser) onUnrecognizedToken(tok token.Token) *ast.Node {
	p.diags.Add(diag.New(p.file, tok.Line, tok.Column, diag.UnrecognizedToken, "unrecognized token"))
	return p.newNode(ast.Node{Kind: ast.KindError, Tok: tok})
}
