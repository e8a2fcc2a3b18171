package consultation

import (
	"context"
	"fmt"
	"log"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/messaging"
)

// API is the slice of the backend client the service needs.
type API interface {
	ListConsultations(ctx context.Context) ([]clinicapi.Consultation, error)
	CreateConsultation(ctx context.Context, c clinicapi.Consultation) error
	UpdateConsultation(ctx context.Context, id string, c clinicapi.Consultation) error
	DeleteConsultation(ctx context.Context, id string) error
}

// Service coordinates consultation record mutations against the backend,
// keeping the cache and the view state in step.
type Service struct {
	api       API
	cache     *Cache
	views     *Views
	publisher messaging.PublisherInterface
}

func NewService(api API, cache *Cache, views *Views, publisher messaging.PublisherInterface) *Service {
	return &Service{
		api:       api,
		cache:     cache,
		views:     views,
		publisher: publisher,
	}
}

// Create sends a new consultation record to the backend, refreshes the
// cache and returns to the list view.
func (s *Service) Create(ctx context.Context, input FormInput) error {
	rec := NewRecord(input)

	if err := s.api.CreateConsultation(ctx, rec.ToWire()); err != nil {
		log.Printf("Failed to create consultation record: %v", err)
		return fmt.Errorf("failed to create consultation record: %w", err)
	}

	s.publishEvent(ctx, messaging.EventConsultationCreated, rec)

	s.cache.Refresh(ctx)
	s.views.ShowList()
	return nil
}

// Update serializes the current draft back to the backend shape, PUTs it,
// re-fetches and lands on the detail view of the same logical record. The
// record is re-located by ID because a refresh may reorder the list.
func (s *Service) Update(ctx context.Context) error {
	draft, ok := s.views.Draft()
	if !ok {
		log.Printf("Update requested with no active edit draft")
		return ErrNoSelection
	}

	if draft.ID == "" {
		log.Printf("Update requested for a record without an ID")
		return ErrNoSelection
	}

	if err := s.api.UpdateConsultation(ctx, draft.ID, draft.ToWire()); err != nil {
		log.Printf("Failed to update consultation record %s: %v", draft.ID, err)
		return fmt.Errorf("failed to update consultation record: %w", err)
	}

	s.publishEvent(ctx, messaging.EventConsultationUpdated, *draft)

	s.cache.Refresh(ctx)

	idx, ok := s.cache.IndexByID(draft.ID)
	if !ok {
		// Record vanished between the PUT and the re-fetch.
		s.views.ShowList()
		return nil
	}
	s.views.ShowDetail(idx)
	return nil
}

// Delete removes the selected record on the backend, refreshes and
// returns to the list view with the selection cleared.
func (s *Service) Delete(ctx context.Context) error {
	rec, ok := s.views.SelectedRecord()
	if !ok {
		log.Printf("Delete requested with no selected record")
		return ErrNoSelection
	}

	if rec.ID == "" {
		log.Printf("Delete requested for a record without an ID")
		return ErrNoSelection
	}

	if err := s.api.DeleteConsultation(ctx, rec.ID); err != nil {
		log.Printf("Failed to delete consultation record %s: %v", rec.ID, err)
		return fmt.Errorf("failed to delete consultation record: %w", err)
	}

	s.publishEvent(ctx, messaging.EventConsultationDeleted, rec)

	s.cache.Refresh(ctx)
	s.views.ClearAndShowList()
	return nil
}

func (s *Service) publishEvent(ctx context.Context, eventType string, rec Record) {
	if s.publisher == nil {
		return
	}
	event := messaging.ConsultationEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.ConsultationEventData{
			RecordID:    rec.ID,
			StudentID:   rec.StudentID,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			DateOfVisit: rec.DateOfVisit,
			TimeOfVisit: rec.TimeOfVisit,
		},
	}
	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
