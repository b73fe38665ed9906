// Package metrics provides lightweight, lock-minimal performance counters
// for the witness generation pipeline.
//
// Counters use sync/atomic so hot paths (byte-machine stepping, digest
// computation) incur no mutex contention. Latency statistics use a single
// mutex per dimension; they are updated at most once per manifest processed.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds all runtime counters for a running witness generator.
// The zero value is valid and ready to use; prefer New() for clarity.
type Metrics struct {
	// Byte machine counters
	HTTPBytesParsed atomic.Int64
	JSONBytesParsed atomic.Int64
	HTTPParses      atomic.Int64
	JSONParses      atomic.Int64

	// Manifest/witness counters
	ManifestsDecoded atomic.Int64
	DigestsComputed  atomic.Int64
	SchemaRejections atomic.Int64
	JSONParserErrors atomic.Int64
	JSONKeyErrors    atomic.Int64
	StackOverflows   atomic.Int64

	// Cache counters
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
	CacheEvicts atomic.Int64

	// Latency statistics (mutex-guarded because they accumulate floats)
	parseMu   sync.Mutex
	parseStat latencyStats

	digestMu   sync.Mutex
	digestStat latencyStats

	startTime time.Time
}

// New returns a new Metrics with the start time recorded.
func New() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordParseLatency records the duration of one full HTTP+JSON parse pass
// over a captured ciphertext.
func (m *Metrics) RecordParseLatency(d time.Duration) {
	m.parseMu.Lock()
	m.parseStat.record(float64(d.Microseconds()) / 1000.0)
	m.parseMu.Unlock()
}

// RecordDigestLatency records the duration of one manifest digest
// computation (the ten-element public-input vector).
func (m *Metrics) RecordDigestLatency(d time.Duration) {
	m.digestMu.Lock()
	m.digestStat.record(float64(d.Microseconds()) / 1000.0)
	m.digestMu.Unlock()
}

// Snapshot returns a point-in-time copy of all metrics, safe for JSON encoding.
func (m *Metrics) Snapshot() Snapshot {
	m.parseMu.Lock()
	parse := m.parseStat.snapshot()
	m.parseMu.Unlock()

	m.digestMu.Lock()
	digest := m.digestStat.snapshot()
	m.digestMu.Unlock()

	return Snapshot{
		Bytes: ByteSnapshot{
			HTTPParsed: m.HTTPBytesParsed.Load(),
			JSONParsed: m.JSONBytesParsed.Load(),
		},
		Parses: ParseSnapshot{
			HTTP: m.HTTPParses.Load(),
			JSON: m.JSONParses.Load(),
		},
		Manifests: ManifestSnapshot{
			Decoded:          m.ManifestsDecoded.Load(),
			DigestsComputed:  m.DigestsComputed.Load(),
			SchemaRejections: m.SchemaRejections.Load(),
			JSONParserErrors: m.JSONParserErrors.Load(),
			JSONKeyErrors:    m.JSONKeyErrors.Load(),
			StackOverflows:   m.StackOverflows.Load(),
		},
		Cache: CacheSnapshot{
			Hits:   m.CacheHits.Load(),
			Misses: m.CacheMisses.Load(),
			Evicts: m.CacheEvicts.Load(),
		},
		Latency: LatencyGroup{
			ParseMs:  parse,
			DigestMs: digest,
		},
		UptimeSecs: time.Since(m.startTime).Seconds(),
	}
}

// --- JSON-serialisable snapshot types ---

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Bytes      ByteSnapshot     `json:"bytes"`
	Parses     ParseSnapshot    `json:"parses"`
	Manifests  ManifestSnapshot `json:"manifests"`
	Cache      CacheSnapshot    `json:"cache"`
	Latency    LatencyGroup     `json:"latency"`
	UptimeSecs float64          `json:"uptimeSecs"`
}

// ByteSnapshot holds total bytes stepped through each byte machine.
type ByteSnapshot struct {
	HTTPParsed int64 `json:"httpParsed"`
	JSONParsed int64 `json:"jsonParsed"`
}

// ParseSnapshot holds the number of completed machine runs.
type ParseSnapshot struct {
	HTTP int64 `json:"http"`
	JSON int64 `json:"json"`
}

// ManifestSnapshot holds manifest-level counters.
type ManifestSnapshot struct {
	Decoded          int64 `json:"decoded"`
	DigestsComputed  int64 `json:"digestsComputed"`
	SchemaRejections int64 `json:"schemaRejections"`
	JSONParserErrors int64 `json:"jsonParserErrors"`
	JSONKeyErrors    int64 `json:"jsonKeyErrors"`
	StackOverflows   int64 `json:"stackOverflows"`
}

// CacheSnapshot holds digest cache counters.
type CacheSnapshot struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Evicts int64 `json:"evicts"`
}

// LatencyGroup groups the two latency dimensions.
type LatencyGroup struct {
	ParseMs  LatencySnapshot `json:"parseMs"`
	DigestMs LatencySnapshot `json:"digestMs"`
}

// LatencySnapshot is a min/mean/max summary for one latency dimension.
type LatencySnapshot struct {
	Count  int64   `json:"count"`
	MinMs  float64 `json:"minMs"`
	MeanMs float64 `json:"meanMs"`
	MaxMs  float64 `json:"maxMs"`
}

// --- internal accumulator ---

type latencyStats struct {
	count int64
	sum   float64
	min   float64
	max   float64
}

func (s *latencyStats) record(ms float64) {
	s.count++
	s.sum += ms
	if s.count == 1 || ms < s.min {
		s.min = ms
	}
	if ms > s.max {
		s.max = ms
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (s *latencyStats) snapshot() LatencySnapshot {
	if s.count == 0 {
		return LatencySnapshot{}
	}
	return LatencySnapshot{
		Count:  s.count,
		MinMs:  round2(s.min),
		MeanMs: round2(s.sum / float64(s.count)),
		MaxMs:  round2(s.max),
	}
}
