package parser

import (
	"rue/syntax"
	"rue/token"
)

// parseExpr is the entry point for expression parsing; operator
// precedence follows spec.md §4.2 exactly, lowest to highest:
// ||, &&, is/as, ==/!=/</>/<=/>=, +/-/++, */ // /%, unary -/!, postfix ./().
func (p *Parser) parseExpr() {
	p.parseOr()
}

func (p *Parser) peekSigKind(offset int) token.Kind {
	i := p.pos + offset
	if i < 0 || i >= len(p.sig) {
		return token.EOF
	}
	return p.all[p.sig[i]].Kind
}

func (p *Parser) parseOr() {
	cp := p.b.Checkpoint()
	p.parseAnd()
	for p.check(token.OrOr) {
		p.bump()
		p.parseAnd()
		p.b.StartNodeAt(cp, syntax.BinaryExpr)
		p.b.FinishNode()
	}
}

func (p *Parser) parseAnd() {
	cp := p.b.Checkpoint()
	p.parseIsAs()
	for p.check(token.AndAnd) {
		p.bump()
		p.parseIsAs()
		p.b.StartNodeAt(cp, syntax.BinaryExpr)
		p.b.FinishNode()
	}
}

// parseIsAs handles `e is T` / `e as T`. The right-hand side is a Type,
// not an Expr — `is`/`as` are type tests/coercions, not binary operators
// over two expressions (spec.md §4.5).
func (p *Parser) parseIsAs() {
	cp := p.b.Checkpoint()
	p.parseEquality()
	for p.check(token.KwIs) || p.check(token.KwAs) {
		kind := syntax.IsExpr
		if p.check(token.KwAs) {
			kind = syntax.AsExpr
		}
		p.bump()
		p.parseType()
		p.b.StartNodeAt(cp, kind)
		p.b.FinishNode()
	}
}

func isEqualityOp(k token.Kind) bool {
	switch k {
	case token.EqEq, token.NotEq, token.Lt, token.Gt, token.Le, token.Ge:
		return true
	default:
		return false
	}
}

func (p *Parser) parseEquality() {
	cp := p.b.Checkpoint()
	p.parseAdditive()
	for isEqualityOp(p.currentKind()) {
		p.bump()
		p.parseAdditive()
		p.b.StartNodeAt(cp, syntax.BinaryExpr)
		p.b.FinishNode()
	}
}

func isAdditiveOp(k token.Kind) bool {
	return k == token.Plus || k == token.Minus || k == token.PlusPlus
}

func (p *Parser) parseAdditive() {
	cp := p.b.Checkpoint()
	p.parseMultiplicative()
	for isAdditiveOp(p.currentKind()) {
		p.bump()
		p.parseMultiplicative()
		p.b.StartNodeAt(cp, syntax.BinaryExpr)
		p.b.FinishNode()
	}
}

func isMultiplicativeOp(k token.Kind) bool {
	return k == token.Star || k == token.Slash || k == token.Percent
}

func (p *Parser) parseMultiplicative() {
	cp := p.b.Checkpoint()
	p.parseUnary()
	for isMultiplicativeOp(p.currentKind()) {
		p.bump()
		p.parseUnary()
		p.b.StartNodeAt(cp, syntax.BinaryExpr)
		p.b.FinishNode()
	}
}

func (p *Parser) parseUnary() {
	if p.check(token.Minus) || p.check(token.Bang) {
		cp := p.b.Checkpoint()
		p.bump()
		p.parseUnary()
		p.b.StartNodeAt(cp, syntax.UnaryExpr)
		p.b.FinishNode()
		return
	}
	p.parsePostfix()
}

// parsePostfix handles `.field` and `(args)` chains, left-associative:
// `a.b(c).d` parses as FieldExpr(CallExpr(FieldExpr(a, b), [c]), d).
func (p *Parser) parsePostfix() {
	cp := p.b.Checkpoint()
	p.parsePrimary()
	for {
		switch p.currentKind() {
		case token.Dot:
			p.bump()
			p.expectIdent("field name")
			p.b.StartNodeAt(cp, syntax.FieldExpr)
			p.b.FinishNode()
		case token.LParen:
			p.bump()
			p.b.StartNode(syntax.ArgList)
			for !p.check(token.RParen) && !p.atEnd() {
				p.parseExpr()
				if !p.check(token.RParen) {
					p.expect(token.Comma, "','")
				}
			}
			p.expect(token.RParen, "')'")
			p.b.FinishNode()
			p.b.StartNodeAt(cp, syntax.CallExpr)
			p.b.FinishNode()
		default:
			return
		}
	}
}

func (p *Parser) parsePrimary() {
	switch p.currentKind() {
	case token.Int:
		p.b.StartNode(syntax.IntLiteral)
		p.bump()
		p.b.FinishNode()
	case token.HexBytes, token.Str:
		p.b.StartNode(syntax.BytesLiteral)
		p.bump()
		p.b.FinishNode()
	case token.KwNil:
		p.b.StartNode(syntax.NilLiteral)
		p.bump()
		p.b.FinishNode()
	case token.LBracket:
		p.parseListExpr()
	case token.KwIf:
		p.parseIfExpr()
	case token.Ident:
		p.parseIdentOrPathOrConstruct()
	default:
		p.errHere("expression")
		p.recover()
	}
}

// parseIdentOrPathOrConstruct disambiguates a bare identifier, an `E::V`
// enum-variant path, and a struct/enum-variant construction — the last
// only when not inside a condition position (`noConstruct`), avoiding the
// classic `if x { ... }` vs. `if (X { ... }) { ... }` struct-literal
// ambiguity.
func (p *Parser) parseIdentOrPathOrConstruct() {
	cp := p.b.Checkpoint()
	if p.peekSigKind(1) == token.ColonColon {
		p.b.StartNode(syntax.PathExpr)
		p.bump() // enum name
		p.bump() // '::'
		p.expectIdent("variant name")
		p.b.FinishNode()
	} else {
		p.b.StartNode(syntax.IdentExpr)
		p.bump()
		p.b.FinishNode()
	}
	if p.noConstruct == 0 && p.check(token.LBrace) {
		p.parseConstructTail(cp)
	}
}

func (p *Parser) parseConstructTail(cp syntax.Checkpoint) {
	p.bump() // '{'
	for !p.check(token.RBrace) && !p.atEnd() {
		p.parseFieldInit()
	}
	p.expect(token.RBrace, "'}'")
	p.b.StartNodeAt(cp, syntax.ConstructExpr)
	p.b.FinishNode()
}

func (p *Parser) parseFieldInit() {
	p.b.StartNode(syntax.FieldInit)
	p.expectIdent("field name")
	p.expect(token.Colon, "':'")
	p.parseExpr()
	p.match(token.Comma)
	p.b.FinishNode()
}

func (p *Parser) parseListExpr() {
	p.b.StartNode(syntax.ListExpr)
	p.bump() // '['
	for !p.check(token.RBracket) && !p.atEnd() {
		if p.check(token.DotDotDot) {
			p.b.StartNode(syntax.SpreadElement)
			p.bump()
			p.parseExpr()
			p.b.FinishNode()
		} else {
			p.parseExpr()
		}
		if !p.check(token.RBracket) {
			p.expect(token.Comma, "','")
		}
	}
	p.expect(token.RBracket, "']'")
	p.b.FinishNode()
}

// parseIfExpr: 'if' Expr Block ('else' (Block | IfExpr))?
func (p *Parser) parseIfExpr() {
	p.b.StartNode(syntax.IfExpr)
	p.bump() // 'if'
	p.noConstruct++
	p.parseExpr()
	p.noConstruct--
	p.parseBlock()
	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			p.parseIfExpr()
		} else {
			p.parseBlock()
		}
	}
	p.b.FinishNode()
}
