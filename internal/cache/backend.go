// Package cache memoizes manifest digest computations.
//
// Recomputing a manifest's ten-element public-input vector means re-running
// Poseidon over every header and the full chosen JSON path — cheap once,
// wasteful when the same captured traffic is witnessed repeatedly (retries,
// re-verification, batch replay). DigestCache sits in front of that
// computation keyed by the ciphertext digest and the manifest shape.
package cache

// Backend is the persistent key-value store a DigestCache's S3-FIFO layer
// sits in front of. Keys and values are opaque byte strings; DigestCache
// owns serialization of the cached PublicInputs.
type Backend interface {
	// Get returns the cached value for key, if present.
	Get(key string) (value []byte, ok bool)

	// Set stores key → value. Overwrites any existing entry silently.
	Set(key string, value []byte)

	// Delete removes key, if present.
	Delete(key string)

	// Close releases any resources held by the backend (file handles,
	// connections). Must be called when the cache is shut down.
	Close() error
}
