// Package byteorpad implements ByteOrPad, a tagged byte used throughout the
// witness pipeline to mark positions in a fixed-size buffer that carry no
// real data (padding) from positions that carry a genuine input byte.
package byteorpad

import (
	"strconv"

	"github.com/tlsn-go/witnessgen/internal/field"
)

// ByteOrPad is either a real byte in [0,255] or the padding sentinel.
type ByteOrPad struct {
	b      byte
	isByte bool // false => Pad
}

// Byte constructs a ByteOrPad carrying a real byte.
func Byte(b byte) ByteOrPad { return ByteOrPad{b: b, isByte: true} }

// Pad is the padding sentinel.
var Pad = ByteOrPad{}

// IsPad reports whether v is the padding sentinel.
func (v ByteOrPad) IsPad() bool { return !v.isByte }

// ToByte projects v to a raw byte: Byte(b) -> b, Pad -> 0.
func (v ByteOrPad) ToByte() byte {
	if !v.isByte {
		return 0
	}
	return v.b
}

// ToField projects v into F: Byte(b) -> F(b), Pad -> -1.
func (v ByteOrPad) ToField() field.F {
	if !v.isByte {
		return field.MinusOne()
	}
	return field.FromByte(v.b)
}

// EqualsByte reports whether v is a real byte equal to b. Pad never equals
// any byte.
func (v ByteOrPad) EqualsByte(b byte) bool {
	return v.isByte && v.b == b
}

// Text10 renders v's field image in base 10 — the wire format the circuit's
// witness file consumes for an individually-serialized ByteOrPad.
func (v ByteOrPad) Text10() string {
	if !v.isByte {
		return field.Text10(field.MinusOne())
	}
	return strconv.Itoa(int(v.b))
}

// FromBytes converts a plain byte slice into a slice of ByteOrPad values,
// none of which are padding.
func FromBytes(raw []byte) []ByteOrPad {
	out := make([]ByteOrPad, len(raw))
	for i, b := range raw {
		out[i] = Byte(b)
	}
	return out
}

// ToBytes projects a padded slice back down to raw bytes (Pad -> 0), the
// "padded-slice -> bytes projection" the spec names.
func ToBytes(vs []ByteOrPad) []byte {
	out := make([]byte, len(vs))
	for i, v := range vs {
		out[i] = v.ToByte()
	}
	return out
}

// PadToLength returns raw padded on the right with Pad up to length n. If
// raw is already at least n bytes long, it is returned unchanged (truncated
// to n is never performed — callers must not over-supply).
func PadToLength(raw []byte, n int) []ByteOrPad {
	out := FromBytes(raw)
	for len(out) < n {
		out = append(out, Pad)
	}
	return out
}

// PadToMultiple pads raw on the right with Pad up to the next multiple of n
// (n must be > 0). If len(raw) is already a multiple of n, no padding is
// added.
func PadToMultiple(raw []byte, n int) []ByteOrPad {
	rem := len(raw) % n
	target := len(raw)
	if rem != 0 {
		target += n - rem
	}
	return PadToLength(raw, target)
}
