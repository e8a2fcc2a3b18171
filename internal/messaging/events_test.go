package messaging

import (
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	event := NewBaseEvent(EventConsultationCreated)

	if event.EventType != "consultation.created" {
		t.Errorf("Expected event type consultation.created, got %q", event.EventType)
	}
	if event.EventID == "" {
		t.Error("Expected a generated event ID")
	}
	if event.ServiceName != serviceName {
		t.Errorf("Expected service name %q, got %q", serviceName, event.ServiceName)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Errorf("Expected a fresh timestamp, got %v", event.Timestamp)
	}

	other := NewBaseEvent(EventConsultationCreated)
	if other.EventID == event.EventID {
		t.Error("Expected distinct event IDs per event")
	}
}
