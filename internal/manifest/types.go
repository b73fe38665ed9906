// Package manifest implements the request/response manifest (C6's input)
// and the manifest digester that binds it to a ciphertext digest.
package manifest

import "github.com/tlsn-go/witnessgen/internal/treehash"

// Header is one (name, value) pair. Manifests always carry headers as an
// ordered slice — never a Go map — so wire and on-disk iteration order is a
// structural invariant rather than an implementation accident (see §9's map
// iteration order note).
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Request is the manifest's request half.
type Request struct {
	Method  string   `json:"method"`
	URL     string   `json:"url"`
	Version string   `json:"version,omitempty"`
	Headers []Header `json:"headers"`
}

// Response is the manifest's response half.
type Response struct {
	Status  int      `json:"status"`
	Version string   `json:"version,omitempty"`
	Message string   `json:"message,omitempty"`
	Headers []Header `json:"headers"`
	Body    Body     `json:"body"`
}

// Body holds the chosen JSON path into the response body.
type Body struct {
	JSON []treehash.Key `json:"json"`
}

// Manifest binds a request description to a response description.
type Manifest struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

const (
	defaultVersion = "HTTP/1.1"
	defaultMessage = "OK"
)

// applyDefaults fills in the version/message defaults the external schema
// names: request.version and response.version default to "HTTP/1.1",
// response.message defaults to "OK".
func (m *Manifest) applyDefaults() {
	if m.Request.Version == "" {
		m.Request.Version = defaultVersion
	}
	if m.Response.Version == "" {
		m.Response.Version = defaultVersion
	}
	if m.Response.Message == "" {
		m.Response.Message = defaultMessage
	}
}
