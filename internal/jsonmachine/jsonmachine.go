// Package jsonmachine implements the bounded-depth structural byte machine
// that walks a JSON document one byte at a time, maintaining a location
// stack (object-key / object-value / array-index) and a parallel label
// stack of in-flight key/value tokens.
package jsonmachine

import (
	"github.com/tlsn-go/witnessgen/internal/byteorpad"
	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

const (
	byteQuote   = '"'
	byteBackslash = '\\'
	byteLBrace  = '{'
	byteRBrace  = '}'
	byteLBrack  = '['
	byteRBrack  = ']'
	byteColon   = ':'
	byteComma   = ','
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type locKind int

const (
	locNone locKind = iota
	locObjectKey
	locObjectValue
	locArrayIndex
)

// Location is the spec's Location sum type: None, ObjectKey, ObjectValue, or
// ArrayIndex(i).
type Location struct {
	kind locKind
	idx  uint64
}

// NoneLoc is the empty/unoccupied slot value.
var NoneLoc = Location{kind: locNone}

// ToFieldPair is the (F, F) encoding §4.4's location encoding table names.
func (l Location) ToFieldPair() (field.F, field.F) {
	switch l.kind {
	case locObjectKey:
		return field.One(), field.Zero()
	case locObjectValue:
		return field.One(), field.One()
	case locArrayIndex:
		return field.FromUint64(2), field.FromUint64(l.idx)
	default:
		return field.Zero(), field.Zero()
	}
}

type statusKind int

const (
	statusNone statusKind = iota
	statusString
	statusPrimitive
)

type status struct {
	kind    statusKind
	buf     string
	escaped bool
}

// label is one label_stack slot: the current key/value token text at a
// given depth.
type label struct {
	Key   string
	Value string
}

// Machine is the JSON structural machine's mutable state.
type Machine struct {
	m        int
	status   status
	location []Location
	labels   []label
}

// New returns a fresh machine with a stack of m slots (M from the spec). It
// errors if m <= 0 — Go has no const generics to bound this at compile
// time.
func New(m int) (*Machine, error) {
	if m <= 0 {
		return nil, witnesserr.JSONParserf("max stack height must be positive, got %d", m)
	}
	loc := make([]Location, m)
	for i := range loc {
		loc[i] = NoneLoc
	}
	return &Machine{m: m, location: loc, labels: make([]label, m)}, nil
}

// pointer is the index of the first None slot, or m if full.
func (mc *Machine) pointer() int {
	for i, l := range mc.location {
		if l.kind == locNone {
			return i
		}
	}
	return mc.m
}

func (mc *Machine) currentLocation(ptr int) Location {
	if ptr == 0 {
		return NoneLoc
	}
	return mc.location[ptr-1]
}

// Raw is the RawJsonMachine projection: the per-byte witness snapshot.
type Raw struct {
	PolynomialInput  field.F
	Stack            [][2]field.F // len M
	TreeHash         [][2]field.F // len M
	ParsingString    field.F
	ParsingPrimitive field.F
	Escaped          field.F
	Monomial         field.F
}

func boolF(v bool) field.F {
	if v {
		return field.One()
	}
	return field.Zero()
}

func (mc *Machine) raw(p field.F) Raw {
	stack := make([][2]field.F, mc.m)
	tree := make([][2]field.F, mc.m)
	for i := 0; i < mc.m; i++ {
		a, b := mc.location[i].ToFieldPair()
		stack[i] = [2]field.F{a, b}
		tree[i] = [2]field.F{
			field.PolynomialDigest([]byte(mc.labels[i].Key), p, 0),
			field.PolynomialDigest([]byte(mc.labels[i].Value), p, 0),
		}
	}

	r := Raw{
		PolynomialInput:  p,
		Stack:            stack,
		TreeHash:         tree,
		ParsingString:    boolF(mc.status.kind == statusString),
		ParsingPrimitive: boolF(mc.status.kind == statusPrimitive),
		Escaped:          boolF(mc.status.kind == statusString && mc.status.escaped),
	}
	if l := len(mc.status.buf); l > 0 && mc.status.kind != statusNone {
		r.Monomial = field.ExpU64(p, uint64(l-1))
	} else {
		r.Monomial = field.Zero()
	}
	return r
}

func (mc *Machine) clearDepth(i int) {
	mc.location[i] = NoneLoc
	mc.labels[i] = label{}
}

func (mc *Machine) clearValueHalf(i int) {
	mc.labels[i].Value = ""
}

// clearLabel wipes both the key and value half of a label-stack slot,
// mirroring the reference parser's clear_array_index_label: the comma
// transitions and primitive termination start a fresh key/value pair, not
// just a fresh value, so both halves must go.
func (mc *Machine) clearLabel(i int) {
	mc.labels[i] = label{}
}

// Step advances the machine by one byte, given p (the polynomial
// randomizer), and returns the raw snapshot taken after the transition, or
// an error on a structural violation or stack overflow.
func (mc *Machine) Step(v byteorpad.ByteOrPad, p field.F) (Raw, error) {
	c := v.ToByte()
	ptr := mc.pointer()
	loc := mc.currentLocation(ptr)
	old := mc.status

	newStatus, err := mc.stringPrimitivePhase(c, old, loc, ptr)
	if err != nil {
		return Raw{}, err
	}
	mc.status = newStatus

	if newStatus.kind == statusNone {
		if err := mc.structuralPhase(c, loc, ptr); err != nil {
			return Raw{}, err
		}
	} else {
		// A live token: write it to the label stack at the pre-byte
		// location (structural phase never runs alongside a live token).
		mc.writeToken(newStatus.buf, loc, ptr)
	}

	return mc.raw(p), nil
}

// stringPrimitivePhase implements the "String transitions" table plus the
// digit-continuation rule of the "Structural transitions" table footnote
// (":" while inside a string/primitive is ordinary content).
func (mc *Machine) stringPrimitivePhase(c byte, old status, loc Location, ptr int) (status, error) {
	switch old.kind {
	case statusString:
		switch {
		case c == byteQuote && !old.escaped:
			if loc.kind == locObjectValue || loc.kind == locArrayIndex {
				mc.clearValueHalf(ptr - 1)
			}
			return status{kind: statusNone}, nil
		case c == byteQuote && old.escaped:
			return status{kind: statusString, buf: old.buf + string(c), escaped: false}, nil
		case c == byteBackslash && !old.escaped:
			return status{kind: statusString, buf: old.buf, escaped: true}, nil
		default:
			return status{kind: statusString, buf: old.buf + string(c), escaped: false}, nil
		}

	case statusPrimitive:
		switch {
		case c == byteQuote:
			return status{}, witnesserr.JSONParserf("unexpected quote while parsing a numeric token")
		case isDigit(c):
			return status{kind: statusPrimitive, buf: old.buf + string(c)}, nil
		case c == byteColon:
			return status{kind: statusPrimitive, buf: old.buf + string(c)}, nil
		default:
			if ptr > 0 && (loc.kind == locObjectValue || loc.kind == locArrayIndex) {
				mc.clearLabel(ptr - 1)
			}
			return status{kind: statusNone}, nil
		}

	default: // statusNone
		switch {
		case c == byteQuote:
			return status{kind: statusString}, nil
		case isDigit(c):
			return status{kind: statusPrimitive, buf: string(c)}, nil
		default:
			return status{kind: statusNone}, nil
		}
	}
}

func (mc *Machine) writeToken(token string, loc Location, ptr int) {
	if ptr == 0 {
		return
	}
	switch loc.kind {
	case locObjectKey:
		mc.labels[ptr-1].Key = token
		mc.labels[ptr-1].Value = ""
	case locObjectValue, locArrayIndex:
		mc.labels[ptr-1].Value = token
	}
}

// structuralPhase implements the "Structural transitions" table. It only
// runs when status == None after stringPrimitivePhase.
func (mc *Machine) structuralPhase(c byte, loc Location, ptr int) error {
	switch c {
	case byteLBrace:
		if !(loc.kind == locNone || loc.kind == locObjectValue || loc.kind == locArrayIndex) {
			return witnesserr.JSONParserf("'{' not valid after current location")
		}
		return mc.push(ptr, Location{kind: locObjectKey})

	case byteRBrace:
		if loc.kind != locObjectValue {
			return witnesserr.JSONParserf("'}' not valid after current location")
		}
		mc.clearDepth(ptr - 1)
		return nil

	case byteLBrack:
		if !(loc.kind == locNone || loc.kind == locObjectValue || loc.kind == locArrayIndex) {
			return witnesserr.JSONParserf("'[' not valid after current location")
		}
		return mc.push(ptr, Location{kind: locArrayIndex, idx: 0})

	case byteRBrack:
		if loc.kind != locArrayIndex {
			return witnesserr.JSONParserf("']' not valid after current location")
		}
		mc.clearDepth(ptr - 1)
		return nil

	case byteColon:
		if loc.kind != locObjectKey {
			return witnesserr.JSONParserf("':' not valid after current location")
		}
		mc.location[ptr-1] = Location{kind: locObjectValue}
		return nil

	case byteComma:
		switch loc.kind {
		case locObjectValue:
			mc.location[ptr-1] = Location{kind: locObjectKey}
			mc.clearLabel(ptr - 1)
			return nil
		case locArrayIndex:
			mc.location[ptr-1] = Location{kind: locArrayIndex, idx: loc.idx + 1}
			mc.clearLabel(ptr - 1)
			return nil
		default:
			return witnesserr.JSONParserf("',' not valid after current location")
		}
	}
	// Any other byte with status None is not structural: whitespace, or
	// stray content outside a token. No-op.
	return nil
}

func (mc *Machine) push(ptr int, l Location) error {
	if ptr >= mc.m {
		return witnesserr.JSONParserf("stack overflow: max height %d exceeded", mc.m)
	}
	mc.location[ptr] = l
	mc.labels[ptr] = label{}
	return nil
}
