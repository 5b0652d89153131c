package lir

import "math/big"

// IntToAtom encodes n as CLVM's minimal signed big-endian twos-complement
// atom (spec.md §4.8's bytecode "atom" representation doubles as Rue's Int
// value representation — Int and Bytes share one wire encoding).
func IntToAtom(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{}
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if len(b) > 0 && b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	nBytes := n.BitLen()/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	m := new(big.Int).Add(n, mod)
	b := m.Bytes()
	for len(b) < nBytes {
		b = append([]byte{0}, b...)
	}
	for len(b) > 1 && b[0] == 0xff && b[1]&0x80 != 0 {
		b = b[1:]
	}
	return b
}

// AtomToInt decodes a CLVM atom back into a signed big.Int, the inverse of
// IntToAtom. Used by optimize's constant folding.
func AtomToInt(b []byte) *big.Int {
	n := new(big.Int)
	if len(b) == 0 {
		return n
	}
	n.SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		n.Sub(n, mod)
	}
	return n
}
