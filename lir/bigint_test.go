package lir

import (
	"math/big"
	"testing"
)

func TestIntToAtomRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int64
	}{
		{"zero", 0},
		{"small positive", 5},
		{"small negative", -5},
		{"needs padding byte", 0x80},
		{"negative needs padding", -0x81},
		{"large positive", 1 << 40},
		{"large negative", -(1 << 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := big.NewInt(tt.n)
			atom := IntToAtom(want)
			got := AtomToInt(atom)
			if got.Cmp(want) != 0 {
				t.Errorf("round trip mismatch: want %s, got %s (atom % x)", want, got, atom)
			}
		})
	}
}

func TestIntToAtomMinimal(t *testing.T) {
	// 0x80 alone would decode as negative, so a positive atom needing its
	// top bit set must carry a leading zero byte.
	atom := IntToAtom(big.NewInt(0x80))
	if len(atom) != 2 || atom[0] != 0x00 || atom[1] != 0x80 {
		t.Errorf("expected [0x00 0x80], got % x", atom)
	}
}

func TestAtomToIntEmpty(t *testing.T) {
	if got := AtomToInt(nil); got.Sign() != 0 {
		t.Errorf("expected 0 for empty atom, got %s", got)
	}
}
