package manifest

import (
	"fmt"

	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/treehash"
)

// PublicInputs is the ten-element public-input vector C6 produces.
type PublicInputs [10]field.F

func h(x field.F) field.F { return field.Poseidon1(x) }

func headerDigest(hdr Header, d field.F) field.F {
	return field.PolynomialDigest([]byte(fmt.Sprintf("%s: %s", hdr.Name, hdr.Value)), d, 0)
}

// Digest binds m to the ciphertext digest d, producing the ten-element
// public-input vector: start-line digests, per-header digests folded into a
// single sum, and the chosen JSON path's compressed tree hash — everything
// hashed once more through Poseidon so the vector is a fixed-width
// commitment rather than a variable-length list.
func Digest(m Manifest, d field.F, maxStackHeight int) (PublicInputs, error) {
	reqStart := field.PolynomialDigest([]byte(fmt.Sprintf("%s %s %s", m.Request.Method, m.Request.URL, m.Request.Version)), d, 0)
	respStart := field.PolynomialDigest([]byte(fmt.Sprintf("%s %d %s", m.Response.Version, m.Response.Status, m.Response.Message)), d, 0)

	headerSum := field.Add(h(reqStart), h(respStart))
	for _, hdr := range m.Request.Headers {
		headerSum = field.Add(headerSum, h(headerDigest(hdr, d)))
	}
	for _, hdr := range m.Response.Headers {
		headerSum = field.Add(headerSum, h(headerDigest(hdr, d)))
	}

	chosen, err := treehash.ChosenSequence(d, m.Response.Body.JSON, maxStackHeight)
	if err != nil {
		return PublicInputs{}, err
	}
	jsonSeq := treehash.CompressTreeHash(chosen, d)

	headerCount := len(m.Request.Headers) + len(m.Response.Headers)

	var out PublicInputs
	out[0] = field.Zero()
	out[1] = field.One()
	out[2] = field.One()
	out[3] = field.One()
	out[4] = headerSum
	out[5] = field.FromInt64(int64(2 + headerCount))
	out[6] = field.Zero()
	out[7] = field.One()
	out[8] = field.Zero()
	out[9] = h(jsonSeq)
	return out, nil
}
