// Package treehash implements the tree-hash commitment of a chosen JSON key
// path (C5): building the RawJsonMachine that encodes a specific path, and
// compressing it into a single field element.
package treehash

import (
	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/jsonmachine"
	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

// KeyKind distinguishes the two JsonKey variants: an object-key string or
// an array index.
type KeyKind int

const (
	KeyString KeyKind = iota
	KeyIndex
)

// Key is JsonKey from the spec: an untagged union of an object-key string
// and an array index, used to address one step of a JSON path.
type Key struct {
	Kind  KeyKind
	Str   string
	Index uint64
}

// StringKey builds a JsonKey::String.
func StringKey(s string) Key { return Key{Kind: KeyString, Str: s} }

// IndexKey builds a JsonKey::Num.
func IndexKey(i uint64) Key { return Key{Kind: KeyIndex, Index: i} }

// ChosenSequence builds the RawJsonMachine (jsonmachine.Raw) whose stack and
// tree_hash fields encode keys, a path of length len(keys) <= m. Positions
// past len(keys) remain (0,0). It errors if len(keys) > m.
func ChosenSequence(p field.F, keys []Key, m int) (jsonmachine.Raw, error) {
	if len(keys) > m {
		return jsonmachine.Raw{}, witnesserr.JSONKeyf("key sequence too long: length %d overflows max stack height %d", len(keys), m)
	}

	stack := make([][2]field.F, m)
	tree := make([][2]field.F, m)
	for i := 0; i < m; i++ {
		stack[i] = [2]field.F{field.Zero(), field.Zero()}
		tree[i] = [2]field.F{field.Zero(), field.Zero()}
	}
	for i, k := range keys {
		switch k.Kind {
		case KeyString:
			stack[i] = [2]field.F{field.One(), field.One()}
			tree[i] = [2]field.F{field.PolynomialDigest([]byte(k.Str), p, 0), field.Zero()}
		case KeyIndex:
			stack[i] = [2]field.F{field.FromUint64(2), field.FromUint64(k.Index)}
			tree[i] = [2]field.F{field.Zero(), field.Zero()}
		}
	}

	return jsonmachine.Raw{
		PolynomialInput: p,
		Stack:           stack,
		TreeHash:        tree,
	}, nil
}

// CompressTreeHash folds raw's stack+key-hash triples into one digest:
// Σ_i stack[i].0·p^(3i) + stack[i].1·p^(3i+1) + tree_hash[i].0·p^(3i+2).
// tree_hash[i].1 (the value slot) is intentionally omitted — the primitive
// value is committed separately.
func CompressTreeHash(raw jsonmachine.Raw, p field.F) field.F {
	acc := field.Zero()
	for i := range raw.Stack {
		base := uint64(3 * i)
		acc = field.Add(acc, field.Mul(field.ExpU64(p, base), raw.Stack[i][0]))
		acc = field.Add(acc, field.Mul(field.ExpU64(p, base+1), raw.Stack[i][1]))
		acc = field.Add(acc, field.Mul(field.ExpU64(p, base+2), raw.TreeHash[i][0]))
	}
	return acc
}
