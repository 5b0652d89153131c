// Package token defines the lexical tokens produced by the Rue lexer.
package token

import "fmt"

// Kind classifies a Token. Unlike the teacher's string-backed TokenType,
// Kind is a small int enum — there is no keyword/punctuation table to keep
// in sync with string literals scattered across the lexer.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident
	Int       // decimal integer literal, e.g. 42, -7
	HexBytes  // 0x-prefixed byte literal, e.g. 0xAA, 0x
	Str       // double-quoted string literal (raw Bytes)

	// trivia — still emitted as tokens so the CST stays lossless.
	Whitespace
	Comment

	// punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Colon
	Dot
	DotDotDot // ...
	Arrow     // ->
	ColonColon // ::
	Assign     // =

	EqEq // ==
	NotEq
	Lt
	Gt
	Le
	Ge

	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus // ++  (bytes concatenation)

	Bang
	AndAnd
	OrOr

	// keywords
	KwFun
	KwLet
	KwIf
	KwElse
	KwEnum
	KwStruct
	KwReturn
	KwIs
	KwAs
	KwNil

	// error
	Error
)

var names = map[Kind]string{
	Invalid:    "INVALID",
	EOF:        "EOF",
	Ident:      "IDENT",
	Int:        "INT",
	HexBytes:   "HEX_BYTES",
	Str:        "STRING",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Semi:       ";",
	Colon:      ":",
	Dot:        ".",
	DotDotDot:  "...",
	Arrow:      "->",
	ColonColon: "::",
	Assign:     "=",
	EqEq:       "==",
	NotEq:      "!=",
	Lt:         "<",
	Gt:         ">",
	Le:         "<=",
	Ge:         ">=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	PlusPlus:   "++",
	Bang:       "!",
	AndAnd:     "&&",
	OrOr:       "||",
	KwFun:      "fun",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwEnum:     "enum",
	KwStruct:   "struct",
	KwReturn:   "return",
	KwIs:       "is",
	KwAs:       "as",
	KwNil:      "nil",
	Error:      "ERROR",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifier text to its keyword Kind.
var Keywords = map[string]Kind{
	"fun":    KwFun,
	"let":    KwLet,
	"if":     KwIf,
	"else":   KwElse,
	"enum":   KwEnum,
	"struct": KwStruct,
	"return": KwReturn,
	"is":     KwIs,
	"as":     KwAs,
	"nil":    KwNil,
}

// IsTrivia reports whether tokens of this kind are whitespace/comments —
// present in the token stream for losslessness but irrelevant to grammar
// decisions.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// Span is a half-open byte-offset range [Start, End) into the source text.
// Widened from the teacher's line/column pair per spec.md §6 ("Spans are
// byte offsets into the source").
type Span struct {
	Start int
	End   int
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Token is a single lexical token: its kind, source span, and raw text.
type Token struct {
	Kind Kind
	Span Span
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s, %q, [%d,%d)}", t.Kind, t.Text, t.Span.Start, t.Span.End)
}
