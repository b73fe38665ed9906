// Package httpmachine implements the line-oriented byte state machine that
// classifies an HTTP/1.1 message (start-line, headers, body) one byte at a
// time, accumulating a rolling polynomial digest of whatever line is
// currently in flight.
package httpmachine

import (
	"github.com/tlsn-go/witnessgen/internal/byteorpad"
	"github.com/tlsn-go/witnessgen/internal/field"
)

const (
	byteSpace = ' '
	byteCR    = '\r'
	byteLF    = '\n'
	byteColon = ':'
)

type startLoc int

const (
	startBeginning startLoc = iota + 1
	startMiddle
	startEnd
)

type headerPart int

const (
	headerName headerPart = iota + 1
	headerValue
)

type lineSub int

const (
	lineCR lineSub = iota + 1
	lineCRLF
	lineCRLFCR
)

type statusTag int

const (
	tagParsingStart statusTag = iota
	tagParsingHeader
	tagParsingBody
	tagLineStatus
)

// status is HttpStatus from the spec's data model: a hand-rolled sum type
// since Go has no enum-with-payload. Only the fields relevant to tag are
// meaningful.
type status struct {
	tag    statusTag
	start  startLoc
	header headerPart
	line   lineSub
}

func parsingStart(loc startLoc) status    { return status{tag: tagParsingStart, start: loc} }
func parsingHeader(part headerPart) status { return status{tag: tagParsingHeader, header: part} }
func parsingBody() status                 { return status{tag: tagParsingBody} }
func lineStatus(s lineSub) status         { return status{tag: tagLineStatus, line: s} }

// Machine is the HTTP line machine's mutable state: the spec's header_num,
// status, line_digest, and line_monomial (line_monomial is derived on demand
// from lineCounter rather than carried, see Step).
type Machine struct {
	headerNum   uint64
	status      status
	lineDigest  field.F
	lineCounter uint64
	p           field.F // randomizer for the in-flight Step call
}

// New returns a fresh machine positioned at the start of a message
// (ParsingStart(Beginning), header_num = 0, line_digest = 0).
func New() *Machine {
	return &Machine{status: parsingStart(startBeginning)}
}

// Raw is the 8-signal RawHttpMachine projection the spec names: the view a
// circuit witness actually consumes, with every HttpStatus sub-location
// collapsed to a small integer.
type Raw struct {
	ParsingStart field.F
	// ParsingHeader carries header_num — the 1-based count of header lines
	// seen so far — not a boolean, independently of status; it is nonzero
	// from the first header line onward and drops back to 0 on the LF that
	// ends the header block and enters the body.
	ParsingHeader     field.F
	ParsingFieldName  field.F
	ParsingFieldValue field.F
	ParsingBody       field.F
	LineStatus        field.F
	LineDigest        field.F
	LineMonomial      field.F
}

func b(v bool) field.F {
	if v {
		return field.One()
	}
	return field.Zero()
}

func (m *Machine) raw() Raw {
	r := Raw{
		ParsingHeader:     field.FromUint64(m.headerNum),
		ParsingFieldName:  b(m.status.tag == tagParsingHeader && m.status.header == headerName),
		ParsingFieldValue: b(m.status.tag == tagParsingHeader && m.status.header == headerValue),
		ParsingBody:       b(m.status.tag == tagParsingBody),
		LineDigest:        m.lineDigest,
	}
	if m.status.tag == tagParsingStart {
		r.ParsingStart = field.FromInt64(int64(m.status.start))
	}
	if m.status.tag == tagLineStatus {
		r.LineStatus = field.FromInt64(int64(m.status.line))
	}
	if m.lineCounter == 0 {
		r.LineMonomial = field.Zero()
	} else {
		r.LineMonomial = field.ExpU64(m.p, m.lineCounter)
	}
	return r
}

func (m *Machine) reset() {
	m.lineDigest = field.Zero()
	m.lineCounter = 0
}

func (m *Machine) accumulate(v byteorpad.ByteOrPad, p field.F) {
	coeff := field.ExpU64(p, m.lineCounter)
	m.lineDigest = field.Add(m.lineDigest, field.Mul(coeff, v.ToField()))
	m.lineCounter++
}

// Step advances the machine by one byte, given p (the polynomial
// randomizer used for this message), and returns the raw snapshot taken
// immediately after the transition.
func (m *Machine) Step(v byteorpad.ByteOrPad, p field.F) Raw {
	m.p = p
	c := v.ToByte()
	st := m.status

	switch {
	case c == byteSpace && st.tag == tagParsingStart && st.start == startBeginning:
		m.status = parsingStart(startMiddle)
		m.accumulate(v, p)

	case c == byteSpace && st.tag == tagParsingStart && st.start == startMiddle:
		m.status = parsingStart(startEnd)
		m.accumulate(v, p)

	case c == byteCR && ((st.tag == tagParsingStart && st.start == startEnd) ||
		(st.tag == tagParsingHeader && st.header == headerValue)):
		m.status = lineStatus(lineCR)
		m.reset()

	case c == byteLF && st.tag == tagLineStatus && st.line == lineCR:
		m.status = lineStatus(lineCRLF)
		m.reset()

	case c == byteCR && st.tag == tagLineStatus && st.line == lineCRLF:
		m.status = lineStatus(lineCRLFCR)
		m.reset()

	case c == byteLF && st.tag == tagLineStatus && st.line == lineCRLFCR:
		m.status = parsingBody()
		m.headerNum = 0
		m.reset()

	case st.tag == tagLineStatus && st.line == lineCRLF:
		// Any byte other than CR (the CRLFCR-chain case above, already
		// handled) starts a new header line.
		m.status = parsingHeader(headerName)
		m.headerNum++
		m.accumulate(v, p)

	case c == byteColon && st.tag == tagParsingHeader && st.header == headerName:
		m.status = parsingHeader(headerValue)
		m.accumulate(v, p)

	case st.tag == tagParsingBody:
		// no-op: body bytes are not tracked by the line machine.

	default:
		m.status = st
		m.accumulate(v, p)
	}

	return m.raw()
}
