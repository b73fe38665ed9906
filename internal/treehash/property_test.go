//go:build property
// +build property

package treehash

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tlsn-go/witnessgen/internal/field"
)

const propertyM = 8

// TestCompressTreeHash_IsPureFunctionOfPAndKeys checks that compress_tree_hash
// never varies across two independent computations over the same (p, keys).
func TestCompressTreeHash_IsPureFunctionOfPAndKeys(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("compress_tree_hash is pure", prop.ForAll(
		func(names []string, pSeed uint64) bool {
			keys, ok := uniqueStringKeys(names)
			if !ok {
				return true
			}
			p := field.FromUint64(pSeed)

			r1, err := ChosenSequence(p, keys, propertyM)
			if err != nil {
				return true
			}
			r2, err := ChosenSequence(p, keys, propertyM)
			if err != nil {
				return false
			}
			return field.Equal(CompressTreeHash(r1, p), CompressTreeHash(r2, p))
		},
		gen.SliceOfN(3, gen.AlphaString()),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestCompressTreeHash_SensitiveToKeyPermutation checks that permuting a
// sequence of distinct keys changes the resulting hash.
func TestCompressTreeHash_SensitiveToKeyPermutation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("permuting distinct keys changes compress_tree_hash", prop.ForAll(
		func(a, b, c string) bool {
			keys, ok := uniqueStringKeys([]string{a, b, c})
			if !ok || len(keys) != 3 {
				return true
			}
			p := field.FromUint64(131)

			original, err := ChosenSequence(p, keys, propertyM)
			if err != nil {
				return true
			}
			permuted, err := ChosenSequence(p, []Key{keys[2], keys[0], keys[1]}, propertyM)
			if err != nil {
				return true
			}
			return !field.Equal(CompressTreeHash(original, p), CompressTreeHash(permuted, p))
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// uniqueStringKeys drops empty and duplicate names, since permutation
// sensitivity only holds for distinct keys.
func uniqueStringKeys(names []string) ([]Key, bool) {
	seen := map[string]bool{}
	var keys []Key
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		keys = append(keys, StringKey(n))
	}
	return keys, len(keys) >= 2
}
