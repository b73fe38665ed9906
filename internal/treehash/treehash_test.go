package treehash

import (
	"testing"

	"github.com/tlsn-go/witnessgen/internal/byteorpad"
	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/jsonmachine"
)

func TestValueDigestWalksPath(t *testing.T) {
	input := []byte(`{"data": {"items": [{"profile": {"name": "Taylor Swift"}}]}}`)
	keys := []Key{StringKey("data"), StringKey("items"), IndexKey(0), StringKey("profile"), StringKey("name")}

	got, err := ValueDigest(input, keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "Taylor Swift" {
		t.Fatalf("got %q, want %q", got, "Taylor Swift")
	}
}

func TestCompressTreeHashIsPureAndSensitiveToOrderAndRandomizer(t *testing.T) {
	p := field.FromUint64(131)
	keys := []Key{StringKey("data"), StringKey("items"), IndexKey(0)}

	r1, err := ChosenSequence(p, keys, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := ChosenSequence(p, keys, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !field.Equal(CompressTreeHash(r1, p), CompressTreeHash(r2, p)) {
		t.Fatalf("compress_tree_hash must be a pure function of (p, keys)")
	}

	otherP := field.FromUint64(997)
	rOtherP, err := ChosenSequence(otherP, keys, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Equal(CompressTreeHash(r1, p), CompressTreeHash(rOtherP, otherP)) {
		t.Fatalf("changing p must change compress_tree_hash")
	}

	permuted := []Key{StringKey("items"), StringKey("data"), IndexKey(0)}
	rPermuted, err := ChosenSequence(p, permuted, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Equal(CompressTreeHash(r1, p), CompressTreeHash(rPermuted, p)) {
		t.Fatalf("permuting keys must change compress_tree_hash")
	}

	moved := []Key{StringKey("data"), IndexKey(0), StringKey("items")}
	rMoved, err := ChosenSequence(p, moved, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Equal(CompressTreeHash(r1, p), CompressTreeHash(rMoved, p)) {
		t.Fatalf("moving a key to a different slot must change compress_tree_hash")
	}
}

func TestParserHitsChosenPath(t *testing.T) {
	input := `{ "data" : { "items" : [ { "data" : "Artist" , "profile" : { "name" : "Taylor Swift" } } ] } }`
	p := field.FromUint64(131)
	const m = 5

	targetKeys := []Key{StringKey("data"), StringKey("items"), IndexKey(0), StringKey("profile"), StringKey("name")}
	target, err := ChosenSequence(p, targetKeys, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantHash := CompressTreeHash(target, p)
	wantValue := field.PolynomialDigest([]byte("Taylor Swift"), p, 0)

	padded := byteorpad.FromBytes([]byte(input))
	_, raws, err := jsonmachine.RunMachine(padded, m, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hit := false
	for _, r := range raws {
		if !field.Equal(CompressTreeHash(r, p), wantHash) {
			continue
		}
		for _, th := range r.TreeHash {
			if field.Equal(th[1], wantValue) {
				hit = true
			}
		}
	}
	if !hit {
		t.Fatalf("expected at least one snapshot to hit the chosen path with the target value")
	}
}
