package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

type mockAPI struct {
	mu           sync.Mutex
	appointments []clinicapi.Appointment
	records      []clinicapi.AcceptedRecord

	createRecordErr error
	acceptErr       error
	deleteErr       error

	acceptedIDs []string
	deletedIDs  []string
}

func (m *mockAPI) ListAppointments(ctx context.Context) ([]clinicapi.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]clinicapi.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *mockAPI) ListRecords(ctx context.Context) ([]clinicapi.AcceptedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]clinicapi.AcceptedRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockAPI) CreateRecord(ctx context.Context, rec clinicapi.AcceptedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createRecordErr != nil {
		return m.createRecordErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockAPI) AcceptAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.acceptErr != nil {
		return m.acceptErr
	}
	m.acceptedIDs = append(m.acceptedIDs, id)
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Status = clinicapi.StatusAccepted
		}
	}
	return nil
}

func (m *mockAPI) DeleteAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments = append(m.appointments[:i], m.appointments[i+1:]...)
			break
		}
	}
	return nil
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []string
}

func (m *mockEventPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, routingKey)
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

func pendingAppointment(id string) clinicapi.Appointment {
	return clinicapi.Appointment{
		ID:        id,
		StudentID: "2025-001",
		LastName:  "Reyes",
		FirstName: "Ana",
		Email:     "ana@example.com",
		Concern:   "Fever",
		Nurse:     "Nurse Cruz 2025-03-10",
		DateTime:  "2025-03-10_09:00",
		Status:    clinicapi.StatusPending,
	}
}

func newTestService(t *testing.T, api *mockAPI) (*Service, *Cache, *mockEventPublisher) {
	t.Helper()

	cache := NewCache(api, nil)
	cache.Refresh(context.Background())

	publisher := &mockEventPublisher{}
	return NewService(api, cache, publisher), cache, publisher
}

func TestRefresh_DropsAcceptedAppointments(t *testing.T) {
	accepted := pendingAppointment("a2")
	accepted.Status = clinicapi.StatusAccepted

	api := &mockAPI{appointments: []clinicapi.Appointment{
		pendingAppointment("a1"),
		accepted,
	}}

	cache := NewCache(api, nil)
	cache.Refresh(context.Background())

	appts := cache.Appointments()
	if len(appts) != 1 || appts[0].ID != "a1" {
		t.Errorf("Expected only the pending appointment, got %+v", appts)
	}
}

func TestAccept_MovesAppointmentToRecords(t *testing.T) {
	api := &mockAPI{appointments: []clinicapi.Appointment{pendingAppointment("a1")}}
	service, cache, publisher := newTestService(t, api)

	if err := service.Accept(context.Background(), "a1"); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	if len(api.acceptedIDs) != 1 || api.acceptedIDs[0] != "a1" {
		t.Errorf("Expected accept call for a1, got %v", api.acceptedIDs)
	}
	if cache.AppointmentCount() != 0 {
		t.Errorf("Expected appointment dropped from requests, got %d", cache.AppointmentCount())
	}
	if cache.RecordCount() != 1 {
		t.Fatalf("Expected 1 accepted record, got %d", cache.RecordCount())
	}

	rec := cache.Records()[0]
	if rec.StudentID != "2025-001" || rec.DateTime != "2025-03-10_09:00" {
		t.Errorf("Expected record copied from appointment, got %+v", rec)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events) != 1 || publisher.events[0] != "appointment.accepted" {
		t.Errorf("Expected appointment.accepted event, got %v", publisher.events)
	}
}

func TestAccept_RecordWriteFailureLeavesCacheUntouched(t *testing.T) {
	api := &mockAPI{appointments: []clinicapi.Appointment{pendingAppointment("a1")}}
	service, cache, _ := newTestService(t, api)

	api.mu.Lock()
	api.createRecordErr = errors.New("backend down")
	api.mu.Unlock()

	if err := service.Accept(context.Background(), "a1"); err == nil {
		t.Fatal("Expected accept error")
	}

	if len(api.acceptedIDs) != 0 {
		t.Error("Expected no accept call after record write failed")
	}
	if cache.AppointmentCount() != 1 {
		t.Errorf("Expected appointment still listed, got %d", cache.AppointmentCount())
	}
}

func TestAccept_UnknownAppointment(t *testing.T) {
	api := &mockAPI{}
	service, _, _ := newTestService(t, api)

	if err := service.Accept(context.Background(), "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("Expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestDelete_RemovesAppointment(t *testing.T) {
	api := &mockAPI{appointments: []clinicapi.Appointment{
		pendingAppointment("a1"),
		pendingAppointment("a2"),
	}}
	service, cache, publisher := newTestService(t, api)

	if err := service.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if cache.AppointmentCount() != 1 {
		t.Errorf("Expected 1 appointment left, got %d", cache.AppointmentCount())
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events) != 1 || publisher.events[0] != "appointment.deleted" {
		t.Errorf("Expected appointment.deleted event, got %v", publisher.events)
	}
}
