package appointment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/messaging"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// API is the slice of the backend client the service needs.
type API interface {
	Lister
	CreateRecord(ctx context.Context, rec clinicapi.AcceptedRecord) error
	AcceptAppointment(ctx context.Context, id string) error
	DeleteAppointment(ctx context.Context, id string) error
}

// Service coordinates appointment decisions against the backend.
type Service struct {
	api       API
	cache     *Cache
	publisher messaging.PublisherInterface
}

func NewService(api API, cache *Cache, publisher messaging.PublisherInterface) *Service {
	return &Service{api: api, cache: cache, publisher: publisher}
}

// Accept copies the appointment into the accepted records collection, then
// marks it accepted. Both writes must land before the caches refresh; if
// either fails the caches keep their current snapshot so the row stays
// actionable.
func (s *Service) Accept(ctx context.Context, id string) error {
	apt, ok := s.cache.ByID(id)
	if !ok {
		log.Printf("Accept requested for unknown appointment %s", id)
		return ErrAppointmentNotFound
	}

	record := clinicapi.AcceptedRecord{
		StudentID: apt.StudentID,
		LastName:  apt.LastName,
		FirstName: apt.FirstName,
		Concern:   apt.Concern,
		Nurse:     apt.Nurse,
		DateTime:  apt.DateTime,
		Email:     apt.Email,
	}

	if err := s.api.CreateRecord(ctx, record); err != nil {
		log.Printf("Failed to create accepted record for appointment %s: %v", id, err)
		return fmt.Errorf("failed to accept appointment: %w", err)
	}

	if err := s.api.AcceptAppointment(ctx, id); err != nil {
		log.Printf("Failed to mark appointment %s accepted: %v", id, err)
		return fmt.Errorf("failed to accept appointment: %w", err)
	}

	s.publishEvent(ctx, messaging.EventAppointmentAccepted, apt, clinicapi.StatusAccepted)
	s.cache.Refresh(ctx)
	return nil
}

// Delete removes the appointment on the backend and refreshes.
func (s *Service) Delete(ctx context.Context, id string) error {
	apt, ok := s.cache.ByID(id)
	if !ok {
		log.Printf("Delete requested for unknown appointment %s", id)
		return ErrAppointmentNotFound
	}

	if err := s.api.DeleteAppointment(ctx, id); err != nil {
		log.Printf("Failed to delete appointment %s: %v", id, err)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.publishEvent(ctx, messaging.EventAppointmentDeleted, apt, apt.Status)
	s.cache.Refresh(ctx)
	return nil
}

func (s *Service) publishEvent(ctx context.Context, eventType string, apt clinicapi.Appointment, status string) {
	if s.publisher == nil {
		return
	}
	event := messaging.AppointmentEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.AppointmentEventData{
			AppointmentID: apt.ID,
			StudentID:     apt.StudentID,
			FirstName:     apt.FirstName,
			LastName:      apt.LastName,
			Nurse:         apt.Nurse,
			DateTime:      apt.DateTime,
			Status:        status,
		},
	}
	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
