package httpmachine

import "bytes"

var crlf = []byte("\r\n")
var crlfcrlf = []byte("\r\n\r\n")

// splitLines partitions a raw HTTP message into its start-line, its header
// lines (still colon-joined, not parsed into name/value), and its body —
// the same three regions C3's transition table classifies byte by byte.
func splitLines(raw []byte) (startLine []byte, headers [][]byte, body []byte) {
	idx := bytes.Index(raw, crlfcrlf)
	var headerBlock []byte
	if idx < 0 {
		headerBlock = raw
	} else {
		headerBlock = raw[:idx]
		body = raw[idx+len(crlfcrlf):]
	}
	lines := bytes.Split(headerBlock, crlf)
	if len(lines) == 0 {
		return nil, nil, body
	}
	return lines[0], lines[1:], body
}

// StartLine returns the message's start-line, without the terminating CRLF.
func StartLine(raw []byte) []byte {
	sl, _, _ := splitLines(raw)
	return sl
}

// Header returns the i-th header line (0-indexed, in wire order), without
// the terminating CRLF. The bool is false if i is out of range.
func Header(raw []byte, i int) ([]byte, bool) {
	_, headers, _ := splitLines(raw)
	if i < 0 || i >= len(headers) {
		return nil, false
	}
	return headers[i], true
}

// Body returns the message body: everything after the blank line that ends
// the header block.
func Body(raw []byte) []byte {
	_, _, body := splitLines(raw)
	return body
}

// HeaderByName returns the 0-based count of headers preceding the first
// header whose pre-colon name matches name exactly (byte-wise), and that
// header's full line (name and value, no trailing CRLF). ok is false if no
// header matches, in which case the returned line is empty.
func HeaderByName(raw []byte, name string) (index int, line []byte, ok bool) {
	_, headers, _ := splitLines(raw)
	for i, h := range headers {
		colon := bytes.IndexByte(h, ':')
		if colon < 0 {
			continue
		}
		if string(h[:colon]) == name {
			return i, h, true
		}
	}
	return 0, nil, false
}
