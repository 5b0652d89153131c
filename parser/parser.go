// Package parser is a hand-written recursive-descent parser (no
// combinator library) that turns a token stream into a lossless CST: a
// token cursor plus a builder that emits green-tree events, generalizing
// the teacher's Pratt-precedence expression parser (`parser.Parser`) from
// "build an AST directly" to "build a CST, then let ast/ project a typed
// view over it" (spec.md §4.2).
package parser

import (
	"rue/diag"
	"rue/syntax"
	"rue/token"
)

// syncPoints are the tokens the parser resynchronizes on after an error
// (spec.md §4.2: ';', '}', or a top-level keyword).
func isSyncPoint(k token.Kind) bool {
	switch k {
	case token.Semi, token.RBrace, token.KwFun, token.KwStruct, token.KwEnum, token.EOF:
		return true
	default:
		return false
	}
}

// Parser walks a token.Token stream and emits events into a syntax.Builder.
// Trivia (whitespace, comments) are threaded into the tree automatically:
// every significant token carries its preceding trivia run, attached just
// before the token itself is pushed, so the builder's output still sums to
// the source exactly.
type Parser struct {
	all     []token.Token // full stream including trivia
	sig     []int         // indices into all of the non-trivia tokens
	pos     int           // index into sig
	b       *syntax.Builder
	bag     *diag.Bag
	noConstruct int // >0 while parsing an if condition: suppresses `Ident {` construction parsing
}

// New builds a Parser over the full token stream (lexer.Scan output,
// including trivia). Diagnostics are appended to bag.
func New(tokens []token.Token, bag *diag.Bag) *Parser {
	p := &Parser{all: tokens, bag: bag, b: syntax.NewBuilder()}
	for i, t := range tokens {
		if !t.Kind.IsTrivia() {
			p.sig = append(p.sig, i)
		}
	}
	return p
}

func (p *Parser) current() token.Token {
	return p.all[p.sig[p.pos]]
}

func (p *Parser) currentKind() token.Kind {
	return p.current().Kind
}

func (p *Parser) atEnd() bool {
	return p.currentKind() == token.EOF
}

// bump pushes every trivia token preceding the current significant token
// into the builder, then the significant token itself, and advances.
func (p *Parser) bump() token.Token {
	tok := p.current()
	allIdx := p.sig[p.pos]
	triviaStart := 0
	if p.pos > 0 {
		triviaStart = p.sig[p.pos-1] + 1
	}
	for i := triviaStart; i < allIdx; i++ {
		p.b.Token(p.all[i])
	}
	p.b.Token(tok)
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(k token.Kind) bool {
	return p.currentKind() == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.bump()
		return true
	}
	return false
}

// expect bumps the current token if it matches k; otherwise records a
// ParseError at the current token's span and leaves the cursor in place
// so the caller's error-recovery logic can resynchronize.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.check(k) {
		return p.bump(), true
	}
	tok := p.current()
	p.bag.Add(diag.ParseError{Sp: tok.Span, Message: "expected " + what + ", found " + tok.Kind.String()})
	return tok, false
}

// errHere records a ParseError at the current token without consuming it,
// for callers that want to recover with their own logic afterward.
func (p *Parser) errHere(what string) {
	tok := p.current()
	p.bag.Add(diag.ParseError{Sp: tok.Span, Message: "expected " + what + ", found " + tok.Kind.String()})
}

// recover consumes tokens as an ErrorNode until a synchronization point,
// keeping the CST total even across malformed input (spec.md §4.2).
func (p *Parser) recover() {
	p.b.StartNode(syntax.ErrorNode)
	for !isSyncPoint(p.currentKind()) {
		p.bump()
	}
	// Consume the sync token itself when it's a terminator, so the caller
	// doesn't trip over it again.
	if p.check(token.Semi) || p.check(token.RBrace) {
		p.bump()
	}
	n := p.b.FinishNode()
	syntax.MarkRecovered(n)
}

// Parse runs the parser over the whole token stream and returns the root
// SourceFile node. The CST is total: every byte of source, including
// trivia leading up to EOF, appears in the tree.
func Parse(tokens []token.Token, bag *diag.Bag) *syntax.Node {
	p := New(tokens, bag)
	p.b.StartNode(syntax.SourceFile)
	for !p.atEnd() {
		p.parseItem()
	}
	// trailing trivia before EOF
	p.bump()
	return p.b.FinishNode()
}

func (p *Parser) parseItem() {
	switch p.currentKind() {
	case token.KwFun:
		p.parseFunctionItem()
	case token.KwStruct:
		p.parseStructItem()
	case token.KwEnum:
		p.parseEnumItem()
	default:
		p.bag.Add(diag.ParseError{Sp: p.current().Span, Message: "expected item (fun/struct/enum), found " + p.currentKind().String()})
		p.recover()
	}
}
