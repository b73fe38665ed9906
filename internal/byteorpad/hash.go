package byteorpad

import (
	"fmt"

	"github.com/tlsn-go/witnessgen/internal/field"
)

// ChunkSize is the width of a bytepack/data_hasher block: 16 bytes, packed
// as a little-endian 128-bit number into one field element.
const ChunkSize = 16

// BytePack interprets a 16-wide ByteOrPad chunk as a little-endian 128-bit
// number: Σ_i b_i · 2^(8i). If every slot is Pad, it returns (zero, false)
// ("absent"). A Pad slot interleaved with real bytes contributes zero to the
// packed value but does NOT trigger the absent short-circuit — that only
// fires when the whole chunk is Pad. This asymmetry is intentional: it
// matches the circuit's own bytepack gate exactly (see design notes).
func BytePack(chunk [ChunkSize]ByteOrPad) (field.F, bool) {
	allPad := true
	for _, v := range chunk {
		if !v.IsPad() {
			allPad = false
			break
		}
	}
	if allPad {
		return field.Zero(), false
	}

	acc := field.Zero()
	coeff := field.One()
	two8 := field.FromUint64(256)
	for _, v := range chunk {
		if !v.IsPad() {
			acc = field.Add(acc, field.Mul(coeff, v.ToField()))
		}
		coeff = field.Mul(coeff, two8)
	}
	return acc, true
}

// DataHasher chunks padded (whose length must be a multiple of ChunkSize)
// into 16-byte blocks, packs each via BytePack, and folds a two-to-one
// sponge starting from seed: h_{k+1} = Poseidon2(h_k, packed_k). Blocks that
// are entirely padding (BytePack returns absent) are skipped — this makes
// DataHasher invariant to trailing Pad-only blocks appended to the input.
func DataHasher(padded []ByteOrPad, seed field.F) (field.F, error) {
	if len(padded)%ChunkSize != 0 {
		return field.F{}, fmt.Errorf("byteorpad: data hasher input length %d is not a multiple of %d", len(padded), ChunkSize)
	}

	h := seed
	for off := 0; off < len(padded); off += ChunkSize {
		var chunk [ChunkSize]ByteOrPad
		copy(chunk[:], padded[off:off+ChunkSize])
		packed, present := BytePack(chunk)
		if !present {
			continue
		}
		h = field.Poseidon2(h, packed)
	}
	return h, nil
}
