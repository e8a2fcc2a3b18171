package consultation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

type mockLister struct {
	mu       sync.Mutex
	listFunc func(ctx context.Context) ([]clinicapi.Consultation, error)
}

func (m *mockLister) ListConsultations(ctx context.Context) ([]clinicapi.Consultation, error) {
	m.mu.Lock()
	fn := m.listFunc
	m.mu.Unlock()
	return fn(ctx)
}

func (m *mockLister) set(fn func(ctx context.Context) ([]clinicapi.Consultation, error)) {
	m.mu.Lock()
	m.listFunc = fn
	m.mu.Unlock()
}

func TestRefresh_FullReplace(t *testing.T) {
	lister := &mockLister{}
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{
			{ID: "c1", Concern: "Fever", DateTime: "2025-03-10T09:30"},
			{ID: "c2", Concern: "Cough"},
		}, nil
	})

	cache := NewCache(lister, nil)
	cache.Refresh(context.Background())

	if cache.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", cache.Len())
	}

	rec, ok := cache.Get(0)
	if !ok {
		t.Fatal("Expected record at index 0")
	}
	if rec.DateOfVisit != "2025-03-10" || rec.TimeOfVisit != "09:30" {
		t.Errorf("Expected split date/time, got %q / %q", rec.DateOfVisit, rec.TimeOfVisit)
	}
	if rec.ReasonForVisit != "Fever" {
		t.Errorf("Expected reasonForVisit alias, got %q", rec.ReasonForVisit)
	}

	// Second snapshot replaces, never merges.
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{{ID: "c3"}}, nil
	})
	cache.Refresh(context.Background())
	if cache.Len() != 1 {
		t.Errorf("Expected full replace to 1 record, got %d", cache.Len())
	}
}

func TestRefresh_MissingDateTime(t *testing.T) {
	lister := &mockLister{}
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{{ID: "c1"}}, nil
	})

	cache := NewCache(lister, nil)
	cache.Refresh(context.Background())

	rec, _ := cache.Get(0)
	if rec.DateOfVisit != "" || rec.TimeOfVisit != "" {
		t.Errorf("Expected empty derived fields, got %q / %q", rec.DateOfVisit, rec.TimeOfVisit)
	}
}

func TestRefresh_TransportFailureFallsOpen(t *testing.T) {
	lister := &mockLister{}
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{{ID: "c1"}}, nil
	})

	cache := NewCache(lister, nil)
	cache.Refresh(context.Background())
	if cache.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", cache.Len())
	}

	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return nil, errors.New("connection refused")
	})
	cache.Refresh(context.Background())

	if cache.Len() != 0 {
		t.Errorf("Expected empty list after transport failure, got %d", cache.Len())
	}
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	lister := &mockLister{}
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})

	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		close(slowStarted)
		<-slowRelease
		return []clinicapi.Consultation{{ID: "old"}}, nil
	})

	cache := NewCache(lister, nil)

	done := make(chan struct{})
	go func() {
		cache.Refresh(context.Background())
		close(done)
	}()
	<-slowStarted

	// A newer refresh completes while the first is still in flight.
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{{ID: "new"}}, nil
	})
	cache.Refresh(context.Background())

	close(slowRelease)
	<-done

	rec, ok := cache.Get(0)
	if !ok || rec.ID != "new" {
		t.Errorf("Expected the newer snapshot to win, got %+v (ok=%v)", rec, ok)
	}
}

func TestIndexByID(t *testing.T) {
	lister := &mockLister{}
	lister.set(func(ctx context.Context) ([]clinicapi.Consultation, error) {
		return []clinicapi.Consultation{{ID: "c1"}, {ID: "c2"}}, nil
	})

	cache := NewCache(lister, nil)
	cache.Refresh(context.Background())

	idx, ok := cache.IndexByID("c2")
	if !ok || idx != 1 {
		t.Errorf("Expected index 1 for c2, got %d (ok=%v)", idx, ok)
	}
	if _, ok := cache.IndexByID("missing"); ok {
		t.Error("Expected IndexByID to miss for unknown ID")
	}
}
