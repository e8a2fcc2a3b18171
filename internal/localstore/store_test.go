package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	store := New(path)

	in := []clinicapi.Appointment{
		{ID: "a1", FirstName: "Ana", LastName: "Reyes", Nurse: "Nurse Cruz", DateTime: "2025-03-10_09:00", Status: "Pending"},
		{ID: "a2", FirstName: "Ben", LastName: "Santos", Nurse: "Nurse Cruz", DateTime: "2025-03-10_10:00", Status: "Rejected"},
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	out := store.Load()
	if len(out) != 2 {
		t.Fatalf("Expected 2 appointments, got %d", len(out))
	}
	if out[0].DateTime != "2025-03-10_09:00" {
		t.Errorf("Unexpected dateTime: %q", out[0].DateTime)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent.json"))

	out := store.Load()
	if out == nil || len(out) != 0 {
		t.Errorf("Expected empty list for missing file, got %v", out)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to seed corrupt file: %v", err)
	}

	store := New(path)
	out := store.Load()
	if len(out) != 0 {
		t.Errorf("Expected empty list for corrupt file, got %d entries", len(out))
	}
}
