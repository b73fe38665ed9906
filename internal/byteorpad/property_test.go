//go:build property
// +build property

package byteorpad

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tlsn-go/witnessgen/internal/field"
)

// TestDataHasher_InvariantToTrailingPadBlock checks
// data_hasher(x ++ pad_to_16, seed) = data_hasher(x, seed) whenever the
// appended block is entirely Pad, for arbitrary x and seed.
func TestDataHasher_InvariantToTrailingPadBlock(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("trailing all-pad block does not change the digest", prop.ForAll(
		func(data []uint8, seedSeed uint64) bool {
			raw := make([]byte, len(data))
			for i, v := range data {
				raw[i] = byte(v)
			}
			seed := field.FromUint64(seedSeed)

			x := PadToMultiple(raw, ChunkSize)
			extended := append(append([]ByteOrPad{}, x...), padBlock()...)

			want, err := DataHasher(x, seed)
			if err != nil {
				return false
			}
			got, err := DataHasher(extended, seed)
			if err != nil {
				return false
			}
			return field.Equal(got, want)
		},
		gen.SliceOf(gen.UInt8()),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestBytePack_AllPadIsAbsent checks bytepack([Pad; 16]) = absent for every
// chunk made entirely of Pad slots (there's only one such chunk, but this
// guards against a future ChunkSize change breaking the invariant silently).
func TestBytePack_AllPadIsAbsent(t *testing.T) {
	var chunk [ChunkSize]ByteOrPad
	_, present := BytePack(chunk)
	if present {
		t.Fatal("an all-Pad chunk must be absent")
	}
}

func padBlock() []ByteOrPad {
	block := make([]ByteOrPad, ChunkSize)
	return block
}
