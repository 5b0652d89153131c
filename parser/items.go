package parser

import "rue/syntax"
import "rue/token"

// parseFunctionItem: 'fun' ident '(' ParamList? ')' ('->' Type)? Block
func (p *Parser) parseFunctionItem() {
	p.b.StartNode(syntax.FunctionItem)
	p.bump() // 'fun'
	p.expectIdent("function name")
	if _, ok := p.expect(token.LParen, "'('"); ok {
		p.parseParamList()
		p.expect(token.RParen, "')'")
	}
	if p.match(token.Arrow) {
		p.parseType()
	}
	p.parseBlock()
	p.b.FinishNode()
}

// parseStructItem: 'struct' ident '{' FieldDecl* '}'
func (p *Parser) parseStructItem() {
	p.b.StartNode(syntax.StructItem)
	p.bump() // 'struct'
	p.expectIdent("struct name")
	if _, ok := p.expect(token.LBrace, "'{'"); ok {
		for !p.check(token.RBrace) && !p.atEnd() {
			p.parseFieldDecl()
		}
		p.expect(token.RBrace, "'}'")
	}
	p.b.FinishNode()
}

// parseEnumItem: 'enum' ident '{' EnumVariantDecl* '}'
func (p *Parser) parseEnumItem() {
	p.b.StartNode(syntax.EnumItem)
	p.bump() // 'enum'
	p.expectIdent("enum name")
	if _, ok := p.expect(token.LBrace, "'{'"); ok {
		for !p.check(token.RBrace) && !p.atEnd() {
			p.parseEnumVariantDecl()
		}
		p.expect(token.RBrace, "'}'")
	}
	p.b.FinishNode()
}

// parseEnumVariantDecl: ident ('{' FieldDecl* '}')? ','?
func (p *Parser) parseEnumVariantDecl() {
	p.b.StartNode(syntax.EnumVariantDecl)
	p.expectIdent("variant name")
	if p.match(token.LBrace) {
		for !p.check(token.RBrace) && !p.atEnd() {
			p.parseFieldDecl()
		}
		p.expect(token.RBrace, "'}'")
	}
	p.match(token.Comma)
	p.b.FinishNode()
}

// parseFieldDecl: ident ':' Type ','?
func (p *Parser) parseFieldDecl() {
	p.b.StartNode(syntax.FieldDecl)
	if !p.check(token.Ident) {
		p.errHere("field name")
		p.recover()
		p.b.FinishNode()
		return
	}
	p.bump()
	p.expect(token.Colon, "':'")
	p.parseType()
	p.match(token.Comma)
	p.b.FinishNode()
}

// parseParamList: Param (',' Param)*
func (p *Parser) parseParamList() {
	p.b.StartNode(syntax.ParamList)
	for !p.check(token.RParen) && !p.atEnd() {
		p.parseParam()
		if !p.check(token.RParen) {
			p.expect(token.Comma, "','")
		}
	}
	p.b.FinishNode()
}

// parseParam: ident ':' Type
func (p *Parser) parseParam() {
	p.b.StartNode(syntax.Param)
	p.expectIdent("parameter name")
	p.expect(token.Colon, "':'")
	p.parseType()
	p.b.FinishNode()
}

// parseType: ident ('[' ']')*
func (p *Parser) parseType() {
	p.b.StartNode(syntax.TypeRef)
	p.expectIdent("type name")
	for p.check(token.LBracket) {
		p.bump()
		p.expect(token.RBracket, "']'")
	}
	p.b.FinishNode()
}

func (p *Parser) expectIdent(what string) {
	if p.check(token.Ident) {
		p.bump()
		return
	}
	p.errHere(what)
}
