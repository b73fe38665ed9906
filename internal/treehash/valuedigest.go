package treehash

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

// ValueDigest walks a conventional JSON DOM (via encoding/json, preserving
// arbitrary-precision numbers as json.Number) following keys by object-key
// string or array index, and returns the canonical byte serialization of
// the terminal value: numbers via their canonical JSON string, strings
// as-is, booleans as "true"/"false", null as "null".
func ValueDigest(plaintext []byte, keys []Key) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, witnesserr.Schema(err)
	}

	cur := root
	for _, k := range keys {
		switch k.Kind {
		case KeyString:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, witnesserr.JSONKeyf("expected a JSON object to look up key %q", k.Str)
			}
			v, ok := obj[k.Str]
			if !ok {
				return nil, witnesserr.JSONKeyf("key %q not found", k.Str)
			}
			cur = v
		case KeyIndex:
			arr, ok := cur.([]any)
			if !ok {
				return nil, witnesserr.JSONKeyf("expected a JSON array to index %d", k.Index)
			}
			if k.Index >= uint64(len(arr)) {
				return nil, witnesserr.JSONKeyf("array index %d out of bounds (length %d)", k.Index, len(arr))
			}
			cur = arr[k.Index]
		}
	}

	switch v := cur.(type) {
	case json.Number:
		return []byte(v.String()), nil
	case string:
		return []byte(v), nil
	case bool:
		return []byte(strconv.FormatBool(v)), nil
	case nil:
		return []byte("null"), nil
	default:
		return nil, witnesserr.JSONKeyf("terminal value at path is an object or array, not a primitive")
	}
}
