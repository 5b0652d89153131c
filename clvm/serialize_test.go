package clvm

import (
	"bytes"
	"testing"

	"rue/lir"
)

func TestSerializeEmptyAtom(t *testing.T) {
	got := Serialize(lir.NilConst)
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestSerializeSingleByteBareAtom(t *testing.T) {
	got := Serialize(lir.AtomConst([]byte{0x05}))
	want := []byte{0x05}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestSerializeLengthPrefixedAtom(t *testing.T) {
	atom := bytes.Repeat([]byte{0xab}, 2)
	got := Serialize(lir.AtomConst(atom))
	want := append([]byte{0x80 | 0x02}, atom...)
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestSerializePair(t *testing.T) {
	pair := lir.PairConst(lir.AtomConst([]byte{1}), lir.NilConst)
	got := Serialize(pair)
	want := []byte{0xff, 0x01, 0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestSizePrefixThresholds(t *testing.T) {
	tests := []struct {
		name string
		size int
		want []byte
	}{
		{"small", 0x05, []byte{0x85}},
		{"medium", 0x50, []byte{0xC0, 0x50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sizePrefix(tt.size)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("sizePrefix(%d) = % x, want % x", tt.size, got, tt.want)
			}
		})
	}
}
