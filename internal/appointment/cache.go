package appointment

import (
	"context"
	"log"
	"sync"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Lister is the slice of the backend client the caches need.
type Lister interface {
	ListAppointments(ctx context.Context) ([]clinicapi.Appointment, error)
	ListRecords(ctx context.Context) ([]clinicapi.AcceptedRecord, error)
}

// RefreshMetrics records cache refresh outcomes. May be nil.
type RefreshMetrics interface {
	RecordCacheRefresh(ctx context.Context, resource string, stale bool)
}

// Cache holds the two appointment-side display lists: pending appointment
// requests and accepted records. Accepted appointments are dropped from the
// request list on refresh; accepting one moves it to the records collection,
// so showing it in both would double it up. Refreshes are full replaces,
// ordered by a monotonic token so a late response never overwrites a newer
// snapshot.
type Cache struct {
	api     Lister
	metrics RefreshMetrics

	mu           sync.Mutex
	appointments []clinicapi.Appointment
	records      []clinicapi.AcceptedRecord
	seq          uint64
	applied      uint64
}

func NewCache(api Lister, metrics RefreshMetrics) *Cache {
	return &Cache{api: api, metrics: metrics}
}

// Refresh replaces both lists with the backend's snapshots. Either fetch
// failing falls back to an empty list for that resource.
func (c *Cache) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	appts, apptErr := c.api.ListAppointments(ctx)
	recs, recErr := c.api.ListRecords(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token <= c.applied {
		log.Printf("Discarding stale appointment refresh (token %d, applied %d)", token, c.applied)
		if c.metrics != nil {
			c.metrics.RecordCacheRefresh(ctx, "appointments", true)
		}
		return
	}
	c.applied = token

	if apptErr != nil {
		log.Printf("Error fetching appointments: %v", apptErr)
		c.appointments = nil
	} else {
		kept := make([]clinicapi.Appointment, 0, len(appts))
		for _, apt := range appts {
			if apt.Status == clinicapi.StatusAccepted {
				continue
			}
			kept = append(kept, apt)
		}
		c.appointments = kept
	}

	if recErr != nil {
		log.Printf("Error fetching accepted records: %v", recErr)
		c.records = nil
	} else {
		c.records = recs
	}

	if c.metrics != nil {
		c.metrics.RecordCacheRefresh(ctx, "appointments", false)
	}
}

// FetchAppointments returns the backend's full appointment list, accepted
// ones included, for slot availability checks.
func (c *Cache) FetchAppointments(ctx context.Context) ([]clinicapi.Appointment, error) {
	return c.api.ListAppointments(ctx)
}

// Appointments returns a copy of the pending request list.
func (c *Cache) Appointments() []clinicapi.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]clinicapi.Appointment, len(c.appointments))
	copy(out, c.appointments)
	return out
}

// Records returns a copy of the accepted records list.
func (c *Cache) Records() []clinicapi.AcceptedRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]clinicapi.AcceptedRecord, len(c.records))
	copy(out, c.records)
	return out
}

// ByID locates a pending appointment by backend ID.
func (c *Cache) ByID(id string) (clinicapi.Appointment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, apt := range c.appointments {
		if apt.ID == id {
			return apt, true
		}
	}
	return clinicapi.Appointment{}, false
}

// AppointmentCount feeds the dashboard appointments counter.
func (c *Cache) AppointmentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.appointments)
}

// RecordCount feeds the dashboard records counter.
func (c *Cache) RecordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
