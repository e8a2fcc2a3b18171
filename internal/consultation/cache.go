package consultation

import (
	"context"
	"log"
	"sync"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Lister is the slice of the backend client the cache needs.
type Lister interface {
	ListConsultations(ctx context.Context) ([]clinicapi.Consultation, error)
}

// RefreshMetrics records cache refresh outcomes. May be nil.
type RefreshMetrics interface {
	RecordCacheRefresh(ctx context.Context, resource string, stale bool)
}

// Cache holds the consultation display list. Every refresh is a full replace
// of the previous snapshot, never a merge. Overlapping refreshes are ordered
// by a monotonically increasing token: a response that arrives after a newer
// refresh has already been applied is discarded.
type Cache struct {
	api     Lister
	metrics RefreshMetrics

	mu      sync.Mutex
	records []Record
	seq     uint64
	applied uint64
}

func NewCache(api Lister, metrics RefreshMetrics) *Cache {
	return &Cache{api: api, metrics: metrics}
}

// Refresh replaces the list with the backend's snapshot. Transport failure
// falls back to an empty list so the display renders an empty state instead
// of stale or broken data; the failure is logged, not surfaced.
func (c *Cache) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	list, err := c.api.ListConsultations(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token <= c.applied {
		log.Printf("Discarding stale consultation refresh (token %d, applied %d)", token, c.applied)
		if c.metrics != nil {
			c.metrics.RecordCacheRefresh(ctx, "consultations", true)
		}
		return
	}
	c.applied = token

	if err != nil {
		log.Printf("Error fetching consultations: %v", err)
		c.records = nil
	} else {
		records := make([]Record, len(list))
		for i, wire := range list {
			records[i] = FromWire(wire)
		}
		c.records = records
	}

	if c.metrics != nil {
		c.metrics.RecordCacheRefresh(ctx, "consultations", false)
	}
}

// All returns a copy of the current snapshot.
func (c *Cache) All() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the record at index, if in range.
func (c *Cache) Get(index int) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.records) {
		return Record{}, false
	}
	return c.records[index], true
}

// Len reports the snapshot size; it feeds the dashboard files counter.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// IndexByID locates a record by backend ID after a re-fetch may have
// reordered the list.
func (c *Cache) IndexByID(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, rec := range c.records {
		if rec.ID == id {
			return i, true
		}
	}
	return 0, false
}
