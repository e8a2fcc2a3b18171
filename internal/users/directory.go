package users

import (
	"context"
	"log"
	"sync"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Account statuses in the admin directory.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

// Lister is the slice of the backend client the directory needs.
type Lister interface {
	ListAdminUsers(ctx context.Context) ([]clinicapi.AdminUser, error)
}

// RefreshMetrics records cache refresh outcomes. May be nil.
type RefreshMetrics interface {
	RecordCacheRefresh(ctx context.Context, resource string, stale bool)
}

// Directory caches the staff account list for the profile section. Same
// refresh discipline as the other caches: full replace, monotonic token,
// empty list on transport failure.
type Directory struct {
	api     Lister
	metrics RefreshMetrics

	mu      sync.Mutex
	users   []clinicapi.AdminUser
	seq     uint64
	applied uint64
}

func NewDirectory(api Lister, metrics RefreshMetrics) *Directory {
	return &Directory{api: api, metrics: metrics}
}

func (d *Directory) Refresh(ctx context.Context) {
	d.mu.Lock()
	d.seq++
	token := d.seq
	d.mu.Unlock()

	list, err := d.api.ListAdminUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if token <= d.applied {
		log.Printf("Discarding stale user directory refresh (token %d, applied %d)", token, d.applied)
		if d.metrics != nil {
			d.metrics.RecordCacheRefresh(ctx, "users", true)
		}
		return
	}
	d.applied = token

	if err != nil {
		log.Printf("Error fetching admin users: %v", err)
		d.users = nil
	} else {
		d.users = list
	}

	if d.metrics != nil {
		d.metrics.RecordCacheRefresh(ctx, "users", false)
	}
}

// All returns a copy of the current account list.
func (d *Directory) All() []clinicapi.AdminUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]clinicapi.AdminUser, len(d.users))
	copy(out, d.users)
	return out
}

// ByUsername looks an account up in the cached list.
func (d *Directory) ByUsername(username string) (clinicapi.AdminUser, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Username == username {
			return u, true
		}
	}
	return clinicapi.AdminUser{}, false
}

// Len feeds the dashboard users counter.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}
