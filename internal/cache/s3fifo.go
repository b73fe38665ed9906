// s3fifo.go wraps a Backend with an in-memory S3-FIFO eviction layer,
// bounding both the hot in-memory footprint and the on-disk store size.
//
// # Algorithm
//
// S3-FIFO ("Simple, Scalable, FIFO-based cache eviction", Yang et al., 2023)
// uses two FIFO queues and a bounded ghost set:
//
//   - S (small, ~10% of capacity): probationary queue.
//     All new keys are inserted here.
//   - M (main, ~90% of capacity): protected queue.
//     Keys promoted from S after at least one access (freq > 0) land here.
//   - G (ghost): a circular-buffer set of keys recently evicted from S,
//     bounded to 2× sTarget (at least 4). A key found in G on insert bypasses S and goes
//     directly to M.
//
// Per-object state: saturating frequency counter (uint8, max 3). Incremented
// on every Get hit; reset to 0 on M promotion.
//
// # Eviction
//
//	S → evict oldest head:
//	  freq > 0 → promote to M tail (reset freq); if M now over target, evict M head.
//	  freq == 0 → remove from memory, add key to G, delete from the backing store.
//
//	M → evict oldest head:
//	  Remove from memory, delete from the backing store. M evictions do not add to G.
//
// # Concurrency
//
// All public methods acquire a single mutex for in-memory state. Backend I/O
// is performed without holding c.mu, via goroutines for deletions and direct
// calls for reads/writes on the hot path.
package cache

import (
	"container/list"
	"sync"

	"github.com/tlsn-go/witnessgen/internal/logger"
	"github.com/tlsn-go/witnessgen/internal/metrics"
)

type s3fifoEntry struct {
	value []byte
	freq  uint8         // saturating counter in [0, 3]
	elem  *list.Element // back-pointer into sQueue or mQueue
	inM   bool          // true → lives in mQueue, false → sQueue
}

// s3fifoBackend wraps a Backend with an S3-FIFO in-memory eviction layer.
type s3fifoBackend struct {
	mu sync.Mutex

	capacity int
	sTarget  int
	ghostCap int

	entries map[string]*s3fifoEntry

	sQueue *list.List
	mQueue *list.List

	ghostBuf   []string
	ghostSet   map[string]struct{}
	ghostHead  int
	ghostCount int

	backing Backend
	metrics *metrics.Metrics
	log     *logger.Logger
}

// newS3FIFOBackend returns a Backend that applies S3-FIFO eviction in front
// of backing. capacity is the maximum number of items kept in memory (and on
// disk); values < 2 are clamped to 2. m may be nil.
func newS3FIFOBackend(backing Backend, capacity int, m *metrics.Metrics, log *logger.Logger) Backend {
	if capacity < 2 {
		capacity = 2
	}
	sTarget := capacity / 10
	if sTarget < 1 {
		sTarget = 1
	}
	ghostCap := 2 * sTarget
	if ghostCap < 4 {
		ghostCap = 4
	}
	log.Infof("open", "S3-FIFO digest cache capacity=%d sTarget=%d ghostCap=%d", capacity, sTarget, ghostCap)
	return &s3fifoBackend{
		capacity: capacity,
		sTarget:  sTarget,
		ghostCap: ghostCap,
		entries:  make(map[string]*s3fifoEntry, capacity),
		sQueue:   list.New(),
		mQueue:   list.New(),
		ghostBuf: make([]string, ghostCap),
		ghostSet: make(map[string]struct{}, ghostCap),
		backing:  backing,
		metrics:  m,
		log:      log,
	}
}

// Get returns the value for key.
// Memory hit: freq counter incremented.
// Memory miss: the backing store is consulted; a hit there is re-warmed into
// memory.
func (c *s3fifoBackend) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if e.freq < 3 {
			e.freq++
		}
		v := e.value
		c.mu.Unlock()
		c.recordHit()
		return v, true
	}
	c.mu.Unlock()

	value, ok := c.backing.Get(key)
	if !ok {
		c.recordMiss()
		return nil, false
	}
	c.insertLocked(key, value)
	c.recordHit()
	return value, true
}

// Set stores key → value in memory and in the backing store.
// If the key is already in memory, only the value is updated (queue position
// unchanged).
func (c *s3fifoBackend) Set(key string, value []byte) {
	c.insertLocked(key, value)
	c.backing.Set(key, value)
}

// Delete removes key from memory and from the backing store.
func (c *s3fifoBackend) Delete(key string) {
	c.mu.Lock()
	c.removeFromMemory(key)
	c.mu.Unlock()
	c.backing.Delete(key)
}

// Close closes the backing store. In-memory state is discarded.
func (c *s3fifoBackend) Close() error { return c.backing.Close() }

func (c *s3fifoBackend) recordHit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Add(1)
	}
}

func (c *s3fifoBackend) recordMiss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Add(1)
	}
}

func (c *s3fifoBackend) recordEvict() {
	if c.metrics != nil {
		c.metrics.CacheEvicts.Add(1)
	}
}

// insertLocked performs the in-memory S3-FIFO insert/update.
func (c *s3fifoBackend) insertLocked(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		return
	}

	inM := c.ghostContains(key)
	var elem *list.Element
	if inM {
		elem = c.mQueue.PushBack(key)
	} else {
		elem = c.sQueue.PushBack(key)
	}
	c.entries[key] = &s3fifoEntry{value: value, freq: 0, elem: elem, inM: inM}

	for c.sQueue.Len()+c.mQueue.Len() > c.capacity {
		c.evictOne()
	}
}

// evictOne removes one entry, following the S3-FIFO policy.
// Must be called with c.mu held.
func (c *s3fifoBackend) evictOne() {
	if c.sQueue.Len() > 0 {
		c.evictFromS()
		return
	}
	c.evictFromM()
}

// evictFromS pops the oldest entry from S and either promotes it to M or
// evicts it fully. Must be called with c.mu held.
func (c *s3fifoBackend) evictFromS() {
	front := c.sQueue.Front()
	if front == nil {
		return
	}
	key, ok := front.Value.(string)
	if !ok {
		c.sQueue.Remove(front)
		return
	}
	c.sQueue.Remove(front)

	e, ok := c.entries[key]
	if !ok {
		return
	}

	if e.freq > 0 {
		e.freq = 0
		e.inM = true
		e.elem = c.mQueue.PushBack(key)
		mTarget := c.capacity - c.sTarget
		if c.mQueue.Len() > mTarget {
			c.evictFromM()
		}
	} else {
		delete(c.entries, key)
		c.ghostAdd(key)
		c.recordEvict()
		go c.backing.Delete(key)
	}
}

// evictFromM pops the oldest entry from M and evicts it fully.
// Must be called with c.mu held.
func (c *s3fifoBackend) evictFromM() {
	front := c.mQueue.Front()
	if front == nil {
		return
	}
	key, ok := front.Value.(string)
	if !ok {
		c.mQueue.Remove(front)
		return
	}
	c.mQueue.Remove(front)
	delete(c.entries, key)
	c.recordEvict()
	go c.backing.Delete(key)
}

// removeFromMemory removes key from whichever queue it lives in and from the
// entries map. A no-op if the key is not resident. Must be called with c.mu
// held.
func (c *s3fifoBackend) removeFromMemory(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	if e.inM {
		c.mQueue.Remove(e.elem)
	} else {
		c.sQueue.Remove(e.elem)
	}
	delete(c.entries, key)
}

func (c *s3fifoBackend) ghostContains(key string) bool {
	_, ok := c.ghostSet[key]
	return ok
}

// ghostAdd inserts key into the bounded circular ghost buffer, evicting the
// oldest entry if full. Must be called with c.mu held.
func (c *s3fifoBackend) ghostAdd(key string) {
	if _, exists := c.ghostSet[key]; exists {
		return
	}

	if c.ghostCount == c.ghostCap {
		oldest := c.ghostBuf[c.ghostHead]
		delete(c.ghostSet, oldest)
		c.ghostHead = (c.ghostHead + 1) % c.ghostCap
		c.ghostCount--
	}

	writeIdx := (c.ghostHead + c.ghostCount) % c.ghostCap
	c.ghostBuf[writeIdx] = key
	c.ghostSet[key] = struct{}{}
	c.ghostCount++
}
