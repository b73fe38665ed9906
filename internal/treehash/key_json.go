package treehash

import (
	"encoding/json"
	"fmt"

	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

// UnmarshalJSON decodes the manifest schema's untagged JsonKey union: a
// JSON string becomes an object-key, a JSON integer becomes an array index.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = StringKey(s)
		return nil
	}

	var i uint64
	if err := json.Unmarshal(data, &i); err == nil {
		*k = IndexKey(i)
		return nil
	}

	return witnesserr.Schema(fmt.Errorf("json key must be a string or a non-negative integer, got %s", data))
}

// MarshalJSON encodes a Key back to its untagged JSON form, the inverse of
// UnmarshalJSON.
func (k Key) MarshalJSON() ([]byte, error) {
	switch k.Kind {
	case KeyString:
		return json.Marshal(k.Str)
	default:
		return json.Marshal(k.Index)
	}
}
