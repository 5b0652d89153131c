package clvm

import "rue/lir"

// Serialize encodes c using CLVM's own wire format (spec.md §4.8): the
// empty atom is 0x80, a pair is 0xff followed by its serialized car
// then cdr, and a nonempty atom is length-prefixed (or, for a single
// byte under 0x80, written bare).
func Serialize(c *lir.Const) []byte {
	var out []byte
	writeNode(&out, c)
	return out
}

func writeNode(out *[]byte, c *lir.Const) {
	if c.IsPair {
		*out = append(*out, 0xff)
		writeNode(out, c.Left)
		writeNode(out, c.Right)
		return
	}
	writeAtom(out, c.Atom)
}

func writeAtom(out *[]byte, b []byte) {
	switch {
	case len(b) == 0:
		*out = append(*out, 0x80)
	case len(b) == 1 && b[0] < 0x80:
		*out = append(*out, b[0])
	default:
		*out = append(*out, sizePrefix(len(b))...)
		*out = append(*out, b...)
	}
}

// sizePrefix encodes an atom's byte length the same way the real CLVM
// wire format does: a variable-width prefix whose leading bits count
// how many extra length bytes follow.
func sizePrefix(size int) []byte {
	switch {
	case size < 0x40:
		return []byte{0x80 | byte(size)}
	case size < 0x2000:
		return []byte{0xC0 | byte(size>>8), byte(size)}
	case size < 0x100000:
		return []byte{0xE0 | byte(size>>16), byte(size >> 8), byte(size)}
	case size < 0x8000000:
		return []byte{0xF0 | byte(size>>24), byte(size >> 16), byte(size >> 8), byte(size)}
	default:
		return []byte{0xF8 | byte(size>>32), byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)}
	}
}
