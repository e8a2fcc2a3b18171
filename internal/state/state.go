package state

import "sync"

// Top-level UI sections. Exactly one is active at a time.
const (
	SectionDashboard    = "dashboard"
	SectionFiles        = "files"
	SectionAppointments = "appointments"
	SectionRecords      = "records"
	SectionProfile      = "profile"
)

var sections = map[string]struct{}{
	SectionDashboard:    {},
	SectionFiles:        {},
	SectionAppointments: {},
	SectionRecords:      {},
	SectionProfile:      {},
}

// AppState is the explicit application-state object: the active section and
// the consultation selection. The original kept these as free module-level
// variables; holding them behind accessors keeps every mutation in one place.
type AppState struct {
	mu       sync.RWMutex
	section  string
	selected int
	hasSel   bool
}

// New returns an AppState with the dashboard active and nothing selected.
func New() *AppState {
	return &AppState{section: SectionDashboard, selected: -1}
}

// ActivateSection records name as the active section. Idempotent. An unknown
// name is still recorded, but no panel matches it, so nothing renders as
// active; that degraded state is acceptable and raises no error.
func (s *AppState) ActivateSection(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = name
}

// CurrentSection returns the last-activated section identifier.
func (s *AppState) CurrentSection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.section
}

// SectionActive reports whether the named panel should render as active.
// Only known sections ever match.
func (s *AppState) SectionActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, known := sections[name]; !known {
		return false
	}
	return s.section == name
}

// Select records index as the record under detail/edit view, replacing any
// previous selection.
func (s *AppState) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = index
	s.hasSel = true
}

// Selected returns the selection index, and false when no record is open.
func (s *AppState) Selected() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSel {
		return 0, false
	}
	return s.selected, true
}

// ClearSelection drops the selection, returning the UI to list semantics.
func (s *AppState) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = -1
	s.hasSel = false
}

// KnownSection reports whether name is one of the defined sections.
func KnownSection(name string) bool {
	_, ok := sections[name]
	return ok
}
