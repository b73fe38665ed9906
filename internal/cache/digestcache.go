package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/tlsn-go/witnessgen/internal/config"
	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/logger"
	"github.com/tlsn-go/witnessgen/internal/manifest"
	"github.com/tlsn-go/witnessgen/internal/metrics"
)

// DigestCache memoizes manifest.Digest results keyed by the ciphertext
// digest and the manifest's own shape (request/response headers, the chosen
// JSON path, and the runtime stack-height bound), so repeated witness
// requests over the same captured traffic skip Poseidon recomputation.
type DigestCache struct {
	backend Backend
}

// New builds a DigestCache from cfg's backend selection ("memory", "bbolt",
// or "redis"), wrapped in an S3-FIFO eviction layer bounded by
// cfg.CacheCapacity. m, used for hit/miss/eviction counters, may be nil.
func New(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*DigestCache, error) {
	var backing Backend
	switch cfg.CacheBackend {
	case "bbolt":
		b, err := newBboltBackend(cfg.CacheFile, log)
		if err != nil {
			return nil, err
		}
		backing = b
	case "redis":
		backing = newRedisBackend(cfg.CacheRedisAddr, log)
	default:
		backing = newMemoryBackend()
	}
	return &DigestCache{backend: newS3FIFOBackend(backing, cfg.CacheCapacity, m, log)}, nil
}

// cachedInputs is the JSON wire form of manifest.PublicInputs: each field
// element as a base-10 string, since gnark-crypto's fr.Element carries no
// json.Marshaler.
type cachedInputs [10]string

// Get returns the cached digest for (d, m, maxStackHeight), if present.
func (c *DigestCache) Get(d field.F, m manifest.Manifest, maxStackHeight int) (manifest.PublicInputs, bool) {
	key, err := fingerprint(d, m, maxStackHeight)
	if err != nil {
		return manifest.PublicInputs{}, false
	}
	raw, ok := c.backend.Get(key)
	if !ok {
		return manifest.PublicInputs{}, false
	}

	var wire cachedInputs
	if err := json.Unmarshal(raw, &wire); err != nil {
		return manifest.PublicInputs{}, false
	}
	var out manifest.PublicInputs
	for i, s := range wire {
		v, err := field.FromText10(s)
		if err != nil {
			return manifest.PublicInputs{}, false
		}
		out[i] = v
	}
	return out, true
}

// Put stores out under (d, m, maxStackHeight).
func (c *DigestCache) Put(d field.F, m manifest.Manifest, maxStackHeight int, out manifest.PublicInputs) {
	key, err := fingerprint(d, m, maxStackHeight)
	if err != nil {
		return
	}

	var wire cachedInputs
	for i, v := range out {
		wire[i] = field.Text10(v)
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return
	}
	c.backend.Set(key, raw)
}

// Close releases any resources held by the backing store.
func (c *DigestCache) Close() error { return c.backend.Close() }

// fingerprint derives a stable cache key from the ciphertext digest and the
// manifest shape. The manifest is re-marshaled to JSON and run through RFC
// 8785 canonicalization (gowebpki/jcs) so two manifests that differ only in
// incidental JSON formatting — number representation, float vs int encoding
// — still land on the same key; it is then folded through SHA-256 purely to
// bound the key length, not for any security property.
func fingerprint(d field.F, m manifest.Manifest, maxStackHeight int) (string, error) {
	raw, err := json.Marshal(struct {
		Manifest       manifest.Manifest `json:"manifest"`
		MaxStackHeight int               `json:"maxStackHeight"`
	}{m, maxStackHeight})
	if err != nil {
		return "", fmt.Errorf("cache: marshal manifest: %w", err)
	}

	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("cache: canonicalize manifest: %w", err)
	}

	sum := sha256.Sum256(append([]byte(field.Text10(d)+"|"), canon...))
	return hex.EncodeToString(sum[:]), nil
}
