package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Consultation record events
	EventConsultationCreated = "consultation.created"
	EventConsultationUpdated = "consultation.updated"
	EventConsultationDeleted = "consultation.deleted"

	// Appointment events
	EventAppointmentBooked   = "appointment.booked"
	EventAppointmentAccepted = "appointment.accepted"
	EventAppointmentDeleted  = "appointment.deleted"

	// Admin user events
	EventUserRegistered = "user.registered"
	EventUserApproved   = "user.approved"
	EventUserDeleted    = "user.deleted"
)

const serviceName = "clinic-admin-gateway"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NewBaseEvent builds the envelope for a published event.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: serviceName,
	}
}

// ConsultationEvent represents a consultation record lifecycle event
type ConsultationEvent struct {
	BaseEvent
	Data ConsultationEventData `json:"data"`
}

type ConsultationEventData struct {
	RecordID    string `json:"record_id,omitempty"`
	StudentID   string `json:"student_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfVisit string `json:"date_of_visit"`
	TimeOfVisit string `json:"time_of_visit"`
}

// AppointmentEvent represents an appointment lifecycle event
type AppointmentEvent struct {
	BaseEvent
	Data AppointmentEventData `json:"data"`
}

type AppointmentEventData struct {
	AppointmentID string `json:"appointment_id"`
	StudentID     string `json:"student_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Nurse         string `json:"nurse"`
	DateTime      string `json:"date_time"`
	Status        string `json:"status"`
}

// UserEvent represents an admin user lifecycle event
type UserEvent struct {
	BaseEvent
	Data UserEventData `json:"data"`
}

type UserEventData struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status,omitempty"`
}
