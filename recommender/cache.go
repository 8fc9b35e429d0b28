package recommender

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"

	"tourrec/repository"
)

// Snapshot pairs a catalog read with the similarity matrix built from it.
// Matrix indices are positions in Items; they mean nothing outside this
// snapshot.
type Snapshot struct {
	Items  []repository.TourItem
	Matrix [][]float64
}

// SimilarityCache keeps the most recent snapshot, keyed by a catalog content
// fingerprint. A hit skips the O(N²) rebuild; any catalog edit changes the
// fingerprint and invalidates. Two concurrent misses may both rebuild, the
// later Put wins — both snapshots are equally valid for the same fingerprint.
type SimilarityCache struct {
	mu          sync.RWMutex
	fingerprint string
	snapshot    *Snapshot
}

func NewSimilarityCache() *SimilarityCache {
	return &SimilarityCache{}
}

func (c *SimilarityCache) Get(fingerprint string) (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.fingerprint != fingerprint {
		return nil, false
	}
	return c.snapshot, true
}

func (c *SimilarityCache) Put(fingerprint string, snapshot *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fingerprint = fingerprint
	c.snapshot = snapshot
}

// Fingerprint hashes the ordered tour ids and their updated-at watermarks.
// Inserts, deletes and edits all change it.
func Fingerprint(items []repository.TourItem) string {
	h := sha256.New()
	for _, item := range items {
		h.Write([]byte(item.ID))
		h.Write([]byte{'|'})
		h.Write([]byte(strconv.FormatInt(item.UpdatedAt.UnixNano(), 10)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
