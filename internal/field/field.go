// Package field provides the scalar field F (the BN254 Fr field) that every
// witness signal lives in, plus the polynomial-digest primitive the HTTP and
// JSON state machines use to accumulate line/token digests.
//
// F is a thin wrapper over gnark-crypto's fr.Element. The wrapper exists so
// the rest of the module depends on a small, stable surface (Add, Mul, Neg,
// exponentiation by a uint64, and the two serializations the spec names)
// instead of reaching into gnark-crypto directly everywhere.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// F is an element of the BN254 scalar field.
type F struct {
	v fr.Element
}

// Zero returns the additive identity.
func Zero() F { return F{} }

// One returns the multiplicative identity.
func One() F {
	var f F
	f.v.SetOne()
	return f
}

// FromUint64 converts a uint64 into F.
func FromUint64(x uint64) F {
	var f F
	f.v.SetUint64(x)
	return f
}

// FromInt64 converts an int64 into F, correctly wrapping negative values.
func FromInt64(x int64) F {
	var f F
	f.v.SetInt64(x)
	return f
}

// FromByte converts a single byte into F.
func FromByte(b byte) F { return FromUint64(uint64(b)) }

// MinusOne returns the additive inverse of One — the field element ByteOrPad's
// Pad sentinel maps to.
func MinusOne() F {
	var f F
	f.v.SetOne()
	f.v.Neg(&f.v)
	return f
}

// Add returns a+b.
func Add(a, b F) F {
	var f F
	f.v.Add(&a.v, &b.v)
	return f
}

// Mul returns a*b.
func Mul(a, b F) F {
	var f F
	f.v.Mul(&a.v, &b.v)
	return f
}

// Neg returns -a.
func Neg(a F) F {
	var f F
	f.v.Neg(&a.v)
	return f
}

// ExpU64 returns base^exp.
func ExpU64(base F, exp uint64) F {
	var f F
	f.v.Exp(base.v, new(big.Int).SetUint64(exp))
	return f
}

// Equal reports whether a and b represent the same field element.
func Equal(a, b F) bool { return a.v.Equal(&b.v) }

// IsZero reports whether a is the additive identity.
func IsZero(a F) bool { return a.v.IsZero() }

// BytesLE returns the little-endian 32-byte serialization of a, as required
// by the spec's field-element data model.
func BytesLE(a F) [32]byte {
	be := a.v.Bytes() // gnark-crypto serializes big-endian
	var le [32]byte
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	return le
}

// BigInt returns the canonical (non-negative, < modulus) big.Int representation.
func BigInt(a F) *big.Int {
	var out big.Int
	a.v.BigInt(&out)
	return &out
}

// Text10 renders a in base-10, the wire format the circuit's witness file
// consumes for a serialized field element.
func Text10(a F) string { return BigInt(a).String() }

// FromText10 parses a base-10 string back into F, the inverse of Text10.
// Used when round-tripping field elements through JSON or a key-value store.
func FromText10(s string) (F, error) {
	var i big.Int
	if _, ok := i.SetString(s, 10); !ok {
		return F{}, fmt.Errorf("field: invalid base-10 value %q", s)
	}
	var f F
	f.v.SetBigInt(&i)
	return f, nil
}

// PolynomialDigest computes Σ_i bytes[i] · p^(counter+i) over F — the
// Horner-style digest both state machines use for line/token accumulation
// and that the manifest digester uses for start-lines and headers.
//
// counter = 0 starts at p^0 = 1; a nonzero counter offsets every monomial by
// p^counter, so PolynomialDigest(bytes, p, k) = p^k · PolynomialDigest(bytes, p, 0).
func PolynomialDigest(data []byte, p F, counter uint64) F {
	acc := Zero()
	monomial := ExpU64(p, counter)
	for _, b := range data {
		acc = Add(acc, Mul(monomial, FromByte(b)))
		monomial = Mul(monomial, p)
	}
	return acc
}
