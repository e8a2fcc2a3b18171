package localstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Store keeps the last-fetched appointment list in a single JSON file. It is
// a client-side cache only, never authoritative; the backend list always wins.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Save replaces the snapshot with the given list.
func (s *Store) Save(appointments []clinicapi.Appointment) error {
	data, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	log.Printf("Saved %d appointments to snapshot %s", len(appointments), filepath.Base(s.path))
	return nil
}

// Load returns the saved snapshot. A missing or corrupt file yields an empty
// list; the caller re-fetches from the backend anyway.
func (s *Store) Load() []clinicapi.Appointment {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read snapshot %s: %v", s.path, err)
		}
		return []clinicapi.Appointment{}
	}

	var appointments []clinicapi.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		log.Printf("Discarding corrupt snapshot %s: %v", s.path, err)
		return []clinicapi.Appointment{}
	}
	return appointments
}
