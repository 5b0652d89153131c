package parser

import (
	"rue/syntax"
	"rue/token"
)

// parseBlock: '{' Statement* Expr? '}'
func (p *Parser) parseBlock() {
	p.b.StartNode(syntax.Block)
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		p.b.FinishNode()
		return
	}
	for !p.check(token.RBrace) && !p.atEnd() {
		p.parseBlockMember()
	}
	p.expect(token.RBrace, "'}'")
	p.b.FinishNode()
}

// parseBlockMember parses one statement, or — when an expression is not
// followed by ';' — the block's trailing tail expression, at which point
// the loop in parseBlock naturally stops on the next iteration because
// the cursor now sits on '}'.
func (p *Parser) parseBlockMember() {
	switch p.currentKind() {
	case token.KwLet:
		p.parseLetStmt()
	case token.KwReturn:
		p.parseReturnStmt()
	default:
		cp := p.b.Checkpoint()
		p.parseExpr()
		if p.check(token.Semi) {
			p.b.StartNodeAt(cp, syntax.ExprStmt)
			p.bump() // ';'
			p.b.FinishNode()
		}
		// else: this was the block's tail expression; leave it unwrapped.
	}
}

// parseLetStmt: 'let' ident (':' Type)? '=' Expr ';'
func (p *Parser) parseLetStmt() {
	p.b.StartNode(syntax.LetStmt)
	p.bump() // 'let'
	p.expectIdent("binding name")
	if p.match(token.Colon) {
		p.parseType()
	}
	p.expect(token.Assign, "'='")
	p.parseExpr()
	p.expect(token.Semi, "';'")
	p.b.FinishNode()
}

// parseReturnStmt: 'return' Expr? ';'
func (p *Parser) parseReturnStmt() {
	p.b.StartNode(syntax.ReturnStmt)
	p.bump() // 'return'
	if !p.check(token.Semi) {
		p.parseExpr()
	}
	p.expect(token.Semi, "';'")
	p.b.FinishNode()
}
