package jsonmachine

// Label is the exported view of a label_stack slot.
type Label struct {
	Key   string
	Value string
}

// Locations returns a copy of the current location stack, length M.
func (mc *Machine) Locations() []Location {
	out := make([]Location, len(mc.location))
	copy(out, mc.location)
	return out
}

// Labels returns a copy of the current label stack, length M.
func (mc *Machine) Labels() []Label {
	out := make([]Label, len(mc.labels))
	for i, l := range mc.labels {
		out[i] = Label{Key: l.Key, Value: l.Value}
	}
	return out
}

// IsNone reports whether l is the unoccupied sentinel.
func (l Location) IsNone() bool { return l.kind == locNone }
