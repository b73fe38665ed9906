package httpmachine

import (
	"github.com/tlsn-go/witnessgen/internal/byteorpad"
	"github.com/tlsn-go/witnessgen/internal/field"
)

// Run drives a fresh Machine over the whole of padded and returns one Raw
// snapshot per input byte.
func Run(padded []byteorpad.ByteOrPad, p field.F) []Raw {
	m := New()
	out := make([]Raw, len(padded))
	for i, v := range padded {
		out[i] = m.Step(v, p)
	}
	return out
}

// Walk drives a fresh Machine over padded, invoking fn with each byte's raw
// snapshot as it is produced, without holding the whole sequence in memory.
// It stops and returns fn's error immediately if fn returns one.
func Walk(padded []byteorpad.ByteOrPad, p field.F, fn func(index int, r Raw) error) error {
	m := New()
	for i, v := range padded {
		if err := fn(i, m.Step(v, p)); err != nil {
			return err
		}
	}
	return nil
}
