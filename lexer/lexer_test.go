package lexer

import (
	"testing"

	"rue/diag"
	"rue/token"
)

// significantKinds strips whitespace/comment trivia and the Text/Span
// payload, leaving just the Kind sequence — mirrors the teacher's
// lexer_test.go table-of-expected-tokens idiom (lexer_test.go
// TestOperatorsSuccess/TestScanSuccess) without re-asserting byte offsets.
func significantKinds(tokens []token.Token) []token.Kind {
	var out []token.Kind
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func scanKinds(t *testing.T, src string) ([]token.Kind, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	tokens := New(src, bag).Scan()
	return significantKinds(tokens), bag
}

func assertKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanOperators(t *testing.T) {
	got, bag := scanKinds(t, "==!=<=>=->::...++&&||")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	want := []token.Kind{
		token.EqEq, token.NotEq, token.Le, token.Ge, token.Arrow,
		token.ColonColon, token.DotDotDot, token.PlusPlus, token.AndAnd, token.OrOr,
		token.EOF,
	}
	assertKinds(t, got, want)
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	got, bag := scanKinds(t, "fun let if else enum struct return is as nil foo")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	want := []token.Kind{
		token.KwFun, token.KwLet, token.KwIf, token.KwElse, token.KwEnum,
		token.KwStruct, token.KwReturn, token.KwIs, token.KwAs, token.KwNil,
		token.Ident, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestScanIntAndHexBytesAreDisjoint(t *testing.T) {
	got, bag := scanKinds(t, "42 0xAA00")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	want := []token.Kind{token.Int, token.HexBytes, token.EOF}
	assertKinds(t, got, want)
}

func TestScanOddLengthHexIsAnError(t *testing.T) {
	_, bag := scanKinds(t, "0xA")
	if !bag.HasErrors() {
		t.Errorf("expected an odd-digit-count hex literal to raise a diagnostic")
	}
}

func TestScanNegativeNumberLiteral(t *testing.T) {
	got, bag := scanKinds(t, "-7")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	want := []token.Kind{token.Int, token.EOF}
	assertKinds(t, got, want)
}

func TestScanUnclosedStringIsAnError(t *testing.T) {
	got, bag := scanKinds(t, `"abc`)
	if !bag.HasErrors() {
		t.Errorf("expected an unclosed string literal to raise a diagnostic")
	}
	want := []token.Kind{token.Str, token.EOF}
	assertKinds(t, got, want)
}

func TestScanIllegalByteStillProducesAToken(t *testing.T) {
	got, bag := scanKinds(t, "@")
	if !bag.HasErrors() {
		t.Errorf("expected an illegal byte to raise a diagnostic")
	}
	want := []token.Kind{token.Error, token.EOF}
	assertKinds(t, got, want)
}

func TestScanLineCommentConsumedAsTrivia(t *testing.T) {
	bag := diag.NewBag()
	tokens := New("1 // trailing comment\n2", bag).Scan()
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	var sawComment bool
	for _, tok := range tokens {
		if tok.Kind == token.Comment {
			sawComment = true
			if tok.Text != "// trailing comment" {
				t.Errorf("comment text = %q, want %q", tok.Text, "// trailing comment")
			}
		}
	}
	if !sawComment {
		t.Errorf("expected a Comment token in the stream")
	}
	if got := significantKinds(tokens); len(got) != 3 || got[0] != token.Int || got[1] != token.Int || got[2] != token.EOF {
		t.Errorf("significant tokens = %v, want [INT INT EOF]", got)
	}
}
