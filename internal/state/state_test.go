package state

import "testing"

func TestActivateSection_ExactlyOneActive(t *testing.T) {
	s := New()

	s.ActivateSection(SectionFiles)

	if s.CurrentSection() != SectionFiles {
		t.Errorf("Expected current section files, got %q", s.CurrentSection())
	}

	active := 0
	for _, name := range []string{SectionDashboard, SectionFiles, SectionAppointments, SectionRecords, SectionProfile} {
		if s.SectionActive(name) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("Expected exactly one active section, got %d", active)
	}
}

func TestActivateSection_Idempotent(t *testing.T) {
	s := New()
	s.ActivateSection(SectionRecords)
	s.ActivateSection(SectionRecords)

	if !s.SectionActive(SectionRecords) {
		t.Error("Expected records section to stay active")
	}
}

func TestActivateSection_UnknownName(t *testing.T) {
	s := New()
	s.ActivateSection("reports")

	// The unknown name is recorded but no panel matches it.
	if s.CurrentSection() != "reports" {
		t.Errorf("Expected current section reports, got %q", s.CurrentSection())
	}
	for _, name := range []string{SectionDashboard, SectionFiles, SectionAppointments, SectionRecords, SectionProfile} {
		if s.SectionActive(name) {
			t.Errorf("Expected no active panel, but %q is active", name)
		}
	}
	if s.SectionActive("reports") {
		t.Error("Unknown section must never render as active")
	}
}

func TestSelection_Lifecycle(t *testing.T) {
	s := New()

	if _, ok := s.Selected(); ok {
		t.Error("Expected no selection initially")
	}

	s.Select(3)
	idx, ok := s.Selected()
	if !ok || idx != 3 {
		t.Errorf("Expected selection 3, got %d (ok=%v)", idx, ok)
	}

	// Selecting a new record replaces the old index.
	s.Select(0)
	idx, ok = s.Selected()
	if !ok || idx != 0 {
		t.Errorf("Expected selection 0, got %d (ok=%v)", idx, ok)
	}

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Error("Expected selection cleared")
	}
}
