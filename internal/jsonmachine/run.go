package jsonmachine

import (
	"github.com/tlsn-go/witnessgen/internal/byteorpad"
	"github.com/tlsn-go/witnessgen/internal/field"
)

// Run drives a fresh Machine of height m over the whole of padded and
// returns one Raw snapshot per input byte. On error, snapshots already
// produced are discarded, matching the propagation policy: no partial
// results survive a failing byte.
func Run(padded []byteorpad.ByteOrPad, m int, p field.F) ([]Raw, error) {
	_, out, err := RunMachine(padded, m, p)
	return out, err
}

// RunMachine is Run but also returns the machine in its post-loop state, so
// callers can inspect the final location/label stacks directly.
func RunMachine(padded []byteorpad.ByteOrPad, m int, p field.F) (*Machine, []Raw, error) {
	mc, err := New(m)
	if err != nil {
		return nil, nil, err
	}
	out := make([]Raw, len(padded))
	for i, v := range padded {
		r, err := mc.Step(v, p)
		if err != nil {
			return nil, nil, err
		}
		out[i] = r
	}
	return mc, out, nil
}

// Walk drives a fresh Machine of height m over padded, invoking fn with
// each byte's raw snapshot as it is produced, without holding the whole
// sequence in memory. It stops at the first error, whether from the
// machine itself or from fn.
func Walk(padded []byteorpad.ByteOrPad, m int, p field.F, fn func(index int, r Raw) error) error {
	mc, err := New(m)
	if err != nil {
		return err
	}
	for i, v := range padded {
		r, err := mc.Step(v, p)
		if err != nil {
			return err
		}
		if err := fn(i, r); err != nil {
			return err
		}
	}
	return nil
}
