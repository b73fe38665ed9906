package manifest

import (
	"testing"

	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/treehash"
)

const sampleManifestJSON = `{
  "request": {
    "method": "GET",
    "url": "https://example.com/api",
    "headers": [
      {"name": "Host", "value": "example.com"}
    ]
  },
  "response": {
    "status": 200,
    "headers": [
      {"name": "content-type", "value": "application/json"}
    ],
    "body": {
      "json": ["data", "items", 0, "profile", "name"]
    }
  }
}`

func TestDecodeAppliesDefaultsAndPreservesHeaderOrder(t *testing.T) {
	m, err := Decode([]byte(sampleManifestJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Request.Version != "HTTP/1.1" {
		t.Fatalf("expected request version default, got %q", m.Request.Version)
	}
	if m.Response.Version != "HTTP/1.1" || m.Response.Message != "OK" {
		t.Fatalf("expected response defaults, got version=%q message=%q", m.Response.Version, m.Response.Message)
	}
	if len(m.Response.Body.JSON) != 5 {
		t.Fatalf("expected 5 json path elements, got %d", len(m.Response.Body.JSON))
	}
	if m.Response.Body.JSON[2].Kind != treehash.KeyIndex {
		t.Fatalf("expected the third path element to decode as an array index")
	}
}

func TestDecodeRejectsMissingRequiredFields(t *testing.T) {
	_, err := Decode([]byte(`{"request": {}}`))
	if err == nil {
		t.Fatalf("expected schema validation error")
	}
}

func TestDigestIsDeterministicAndHeaderSensitive(t *testing.T) {
	m, err := Decode([]byte(sampleManifestJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := field.FromUint64(0xC0FFEE)

	out1, err := Digest(m, d, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out2, err := Digest(m, d, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range out1 {
		if !field.Equal(out1[i], out2[i]) {
			t.Fatalf("digest must be deterministic at index %d", i)
		}
	}

	extended := m
	extended.Request.Headers = []Header{m.Request.Headers[0], {Name: "X-Extra", Value: "1"}}
	out3, err := Digest(extended, d, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Equal(out1[4], out3[4]) {
		t.Fatalf("adding a header must change the header-sum public input")
	}
}
