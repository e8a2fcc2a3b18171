package booking

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/localstore"
)

type mockAPI struct {
	mu           sync.Mutex
	appointments []clinicapi.Appointment
	listErr      error
	createErr    error
	created      []clinicapi.Appointment
}

func (m *mockAPI) ListAppointments(ctx context.Context) ([]clinicapi.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]clinicapi.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *mockAPI) CreateAppointment(ctx context.Context, apt clinicapi.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, apt)
	m.appointments = append(m.appointments, apt)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, api *mockAPI) *Engine {
	t.Helper()

	store := localstore.New(filepath.Join(t.TempDir(), "appointments.json"))
	engine := NewEngine(api, store, nil, nil)
	engine.now = fixedNow
	engine.year, engine.month = 2025, time.March
	return engine
}

func completeForm() Form {
	return Form{
		StudentID: "2025-001",
		LastName:  "Reyes",
		FirstName: "Ana",
		Email:     "ana@example.com",
		Concern:   "Fever",
		NurseName: "Nurse Cruz",
		NurseDate: "2025-03-20",
	}
}

func TestSelectDate_RejectsPast(t *testing.T) {
	engine := newTestEngine(t, &mockAPI{})

	if err := engine.SelectDate("2025-03-14"); !errors.Is(err, ErrPastDate) {
		t.Errorf("Expected ErrPastDate, got %v", err)
	}
	if err := engine.SelectDate("2025-03-15"); err != nil {
		t.Errorf("Expected today to be selectable, got %v", err)
	}
	if err := engine.SelectDate("not-a-date"); err == nil {
		t.Error("Expected malformed date to be rejected")
	}
}

func TestSelectDate_ClearsSlot(t *testing.T) {
	api := &mockAPI{}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "09:00", "Nurse Cruz 2025-03-20"); err != nil {
		t.Fatalf("SelectSlot failed: %v", err)
	}

	if err := engine.SelectDate("2025-03-21"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}

	date, slot := engine.Selection()
	if date != "2025-03-21" || slot != "" {
		t.Errorf("Expected slot cleared on date change, got %q / %q", date, slot)
	}
}

func TestSelectSlot_ConflictOnlyForSameNurseAndKey(t *testing.T) {
	nurse := "Nurse Cruz 2025-03-20"
	rejected := clinicapi.Appointment{Nurse: nurse, DateTime: "2025-03-20_09:00", Status: clinicapi.StatusRejected}
	pending := clinicapi.Appointment{Nurse: nurse, DateTime: "2025-03-20_10:00", Status: clinicapi.StatusPending}
	otherNurse := clinicapi.Appointment{Nurse: "Nurse Diaz 2025-03-20", DateTime: "2025-03-20_11:00", Status: clinicapi.StatusPending}

	api := &mockAPI{appointments: []clinicapi.Appointment{rejected, pending, otherNurse}}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}

	// Rejected bookings release the slot.
	if err := engine.SelectSlot(context.Background(), "09:00", nurse); err != nil {
		t.Errorf("Expected rejected booking to free the slot, got %v", err)
	}
	// Pending bookings hold it.
	if err := engine.SelectSlot(context.Background(), "10:00", nurse); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Expected ErrSlotTaken, got %v", err)
	}
	// Another nurse's booking does not block this one.
	if err := engine.SelectSlot(context.Background(), "11:00", nurse); err != nil {
		t.Errorf("Expected other nurse's slot not to conflict, got %v", err)
	}
}

func TestSelectSlot_RequiresDateAndValidSlot(t *testing.T) {
	engine := newTestEngine(t, &mockAPI{})

	if err := engine.SelectSlot(context.Background(), "09:00", "n"); !errors.Is(err, ErrNoDate) {
		t.Errorf("Expected ErrNoDate, got %v", err)
	}

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "16:00", "n"); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Expected ErrInvalidSlot for out-of-hours slot, got %v", err)
	}
}

func TestSubmit_BooksAndResetsSelection(t *testing.T) {
	api := &mockAPI{}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "09:00", completeForm().Nurse()); err != nil {
		t.Fatalf("SelectSlot failed: %v", err)
	}

	if err := engine.Submit(context.Background(), completeForm()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(api.created) != 1 {
		t.Fatalf("Expected 1 appointment created, got %d", len(api.created))
	}
	apt := api.created[0]
	if apt.DateTime != "2025-03-20_09:00" {
		t.Errorf("Expected composite key, got %q", apt.DateTime)
	}
	if apt.Status != clinicapi.StatusPending {
		t.Errorf("Expected Pending status, got %q", apt.Status)
	}
	if apt.Nurse != "Nurse Cruz 2025-03-20" {
		t.Errorf("Expected combined nurse label, got %q", apt.Nurse)
	}

	date, slot := engine.Selection()
	if date != "" || slot != "" {
		t.Errorf("Expected selection reset after submit, got %q / %q", date, slot)
	}

	snapshot := engine.store.Load()
	if len(snapshot) != 1 || snapshot[0].DateTime != "2025-03-20_09:00" {
		t.Errorf("Expected appointment in local snapshot, got %+v", snapshot)
	}
}

func TestSubmit_SnapshotIsBackendList(t *testing.T) {
	api := &mockAPI{
		appointments: []clinicapi.Appointment{{
			ID:       "apt-1",
			Nurse:    "Nurse Santos 2025-03-21",
			DateTime: "2025-03-21_10:00",
			Status:   clinicapi.StatusPending,
		}},
	}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "09:00", completeForm().Nurse()); err != nil {
		t.Fatalf("SelectSlot failed: %v", err)
	}
	if err := engine.Submit(context.Background(), completeForm()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The snapshot is the backend's full re-fetched list, not just the
	// booking built locally.
	snapshot := engine.store.Load()
	if len(snapshot) != 2 {
		t.Fatalf("Expected snapshot to mirror backend list of 2, got %d", len(snapshot))
	}
	found := false
	for _, apt := range snapshot {
		if apt.ID == "apt-1" {
			found = true
		}
	}
	if !found {
		t.Error("Expected pre-existing backend booking in snapshot")
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	engine := newTestEngine(t, &mockAPI{})

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}

	form := completeForm()
	form.Email = ""
	if err := engine.Submit(context.Background(), form); !errors.Is(err, ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields, got %v", err)
	}

	// No slot selected yet.
	if err := engine.Submit(context.Background(), completeForm()); !errors.Is(err, ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields without a slot, got %v", err)
	}
}

func TestSubmit_FailureLeavesSelectionUntouched(t *testing.T) {
	api := &mockAPI{}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "09:00", completeForm().Nurse()); err != nil {
		t.Fatalf("SelectSlot failed: %v", err)
	}

	api.mu.Lock()
	api.createErr = errors.New("backend down")
	api.mu.Unlock()

	if err := engine.Submit(context.Background(), completeForm()); err == nil {
		t.Fatal("Expected submit error")
	}

	date, slot := engine.Selection()
	if date != "2025-03-20" || slot != "09:00" {
		t.Errorf("Expected selection preserved after failure, got %q / %q", date, slot)
	}
	if len(engine.store.Load()) != 0 {
		t.Error("Expected no snapshot entry after failed submit")
	}
}

func TestSubmit_ConflictAtSubmitTime(t *testing.T) {
	api := &mockAPI{}
	engine := newTestEngine(t, api)

	if err := engine.SelectDate("2025-03-20"); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := engine.SelectSlot(context.Background(), "09:00", completeForm().Nurse()); err != nil {
		t.Fatalf("SelectSlot failed: %v", err)
	}

	// Another booking lands between slot pick and submit.
	api.mu.Lock()
	api.appointments = append(api.appointments, clinicapi.Appointment{
		Nurse:    completeForm().Nurse(),
		DateTime: "2025-03-20_09:00",
		Status:   clinicapi.StatusPending,
	})
	api.mu.Unlock()

	if err := engine.Submit(context.Background(), completeForm()); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Expected ErrSlotTaken at submit time, got %v", err)
	}
	if len(api.created) != 0 {
		t.Error("Expected no appointment created on conflict")
	}
}

func TestSlots_HourlyRange(t *testing.T) {
	slots := Slots()
	if len(slots) != 8 {
		t.Fatalf("Expected 8 hourly slots, got %d", len(slots))
	}
	if slots[0] != "08:00" || slots[7] != "15:00" {
		t.Errorf("Expected 08:00 through 15:00, got %v", slots)
	}
	if ValidSlot("08:30") {
		t.Error("Expected half-hour value to be invalid")
	}
}
