package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/localstore"
	"github.com/ccsfp-clinic/clinic-gateway/internal/messaging"
)

var (
	ErrPastDate      = errors.New("cannot book a past date")
	ErrInvalidSlot   = errors.New("not a clinic time slot")
	ErrSlotTaken     = errors.New("time slot already booked for this nurse")
	ErrNoDate        = errors.New("no date selected")
	ErrMissingFields = errors.New("all booking fields are required")
)

// API is the slice of the backend client the engine needs.
type API interface {
	ListAppointments(ctx context.Context) ([]clinicapi.Appointment, error)
	CreateAppointment(ctx context.Context, apt clinicapi.Appointment) error
}

// ConflictMetrics records rejected bookings. May be nil.
type ConflictMetrics interface {
	RecordBookingConflict(ctx context.Context, nurse string)
}

// Form carries the booking fields as submitted.
type Form struct {
	StudentID string
	LastName  string
	FirstName string
	Email     string
	Concern   string
	NurseName string
	NurseDate string
}

// Nurse is the combined label the backend stores.
func (f Form) Nurse() string {
	return f.NurseName + " " + f.NurseDate
}

func (f Form) complete() bool {
	return f.StudentID != "" && f.LastName != "" && f.FirstName != "" &&
		f.Email != "" && f.Concern != "" && f.NurseName != "" && f.NurseDate != ""
}

// Engine drives the booking calendar: month navigation, date and slot
// selection, and submission. Changing the date clears the chosen slot so a
// slot can never silently apply to a different day than it was picked for.
type Engine struct {
	api       API
	store     *localstore.Store
	publisher messaging.PublisherInterface
	metrics   ConflictMetrics
	now       func() time.Time

	mu           sync.Mutex
	year         int
	month        time.Month
	selectedDate string
	selectedSlot string
}

func NewEngine(api API, store *localstore.Store, publisher messaging.PublisherInterface, metrics ConflictMetrics) *Engine {
	e := &Engine{
		api:       api,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
	today := e.now()
	e.year, e.month = today.Year(), today.Month()
	return e
}

// Month returns the displayed month.
func (e *Engine) Month() (int, time.Month) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.year, e.month
}

// Grid returns the 42-cell layout for the displayed month.
func (e *Engine) Grid() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return MonthGrid(e.year, e.month, e.now(), e.selectedDate)
}

// PrevMonth moves the display one month back.
func (e *Engine) PrevMonth() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.year, e.month = shiftMonth(e.year, e.month, -1)
}

// NextMonth moves the display one month forward.
func (e *Engine) NextMonth() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.year, e.month = shiftMonth(e.year, e.month, 1)
}

func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// SelectDate picks a day on the calendar. Past days are rejected; any
// previously chosen slot is cleared.
func (e *Engine) SelectDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if date < e.now().Format(dateLayout) {
		return ErrPastDate
	}
	e.selectedDate = date
	e.selectedSlot = ""
	return nil
}

// SelectSlot picks a time slot on the selected date, checking availability
// for the nurse against the backend's current appointment list.
func (e *Engine) SelectSlot(ctx context.Context, slot, nurse string) error {
	if !ValidSlot(slot) {
		return ErrInvalidSlot
	}

	e.mu.Lock()
	date := e.selectedDate
	e.mu.Unlock()
	if date == "" {
		return ErrNoDate
	}

	appts, err := e.api.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if SlotTaken(appts, nurse, date, slot) {
		if e.metrics != nil {
			e.metrics.RecordBookingConflict(ctx, nurse)
		}
		return ErrSlotTaken
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selectedDate != date {
		// Date changed while the availability check was in flight.
		return ErrNoDate
	}
	e.selectedSlot = slot
	return nil
}

// Selection returns the chosen date and slot.
func (e *Engine) Selection() (date, slot string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedDate, e.selectedSlot
}

// Submit sends the booking to the backend. Availability is re-checked at
// submit time since another booking may have landed after the slot was
// picked. On success the selection resets and the snapshot is replaced with
// the backend's re-fetched list; on failure everything stays as it was so
// the visitor can correct and retry.
func (e *Engine) Submit(ctx context.Context, form Form) error {
	if !form.complete() {
		return ErrMissingFields
	}

	e.mu.Lock()
	date, slot := e.selectedDate, e.selectedSlot
	e.mu.Unlock()
	if date == "" || slot == "" {
		return ErrMissingFields
	}

	appts, err := e.api.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if SlotTaken(appts, form.Nurse(), date, slot) {
		if e.metrics != nil {
			e.metrics.RecordBookingConflict(ctx, form.Nurse())
		}
		return ErrSlotTaken
	}

	apt := clinicapi.Appointment{
		StudentID: form.StudentID,
		LastName:  form.LastName,
		FirstName: form.FirstName,
		Email:     form.Email,
		Concern:   form.Concern,
		Nurse:     form.Nurse(),
		DateTime:  CompositeKey(date, slot),
		Status:    clinicapi.StatusPending,
	}

	if err := e.api.CreateAppointment(ctx, apt); err != nil {
		log.Printf("Failed to create appointment: %v", err)
		return fmt.Errorf("failed to book appointment: %w", err)
	}

	e.publishEvent(ctx, apt)
	e.refreshSnapshot(ctx)

	e.mu.Lock()
	e.selectedDate = ""
	e.selectedSlot = ""
	e.mu.Unlock()
	return nil
}

func (e *Engine) publishEvent(ctx context.Context, apt clinicapi.Appointment) {
	if e.publisher == nil {
		return
	}
	event := messaging.AppointmentEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentBooked),
		Data: messaging.AppointmentEventData{
			StudentID: apt.StudentID,
			FirstName: apt.FirstName,
			LastName:  apt.LastName,
			Nurse:     apt.Nurse,
			DateTime:  apt.DateTime,
			Status:    apt.Status,
		},
	}
	if err := e.publisher.Publish(ctx, messaging.EventAppointmentBooked, event); err != nil {
		log.Printf("Failed to publish %s event: %v", messaging.EventAppointmentBooked, err)
	}
}

// refreshSnapshot replaces the stored snapshot with the backend's current
// list, so entries carry backend-assigned IDs and include bookings made
// from elsewhere.
func (e *Engine) refreshSnapshot(ctx context.Context) {
	if e.store == nil {
		return
	}
	appts, err := e.api.ListAppointments(ctx)
	if err != nil {
		log.Printf("Failed to refresh appointment snapshot: %v", err)
		return
	}
	if err := e.store.Save(appts); err != nil {
		log.Printf("Failed to save appointment snapshot: %v", err)
	}
}
