package booking

import (
	"fmt"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Clinic hours: hourly slots from 08:00 through 15:00.
const (
	firstSlotHour = 8
	lastSlotHour  = 15
)

// Slots returns the bookable time slots in 24-hour form.
func Slots() []string {
	out := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

// ValidSlot reports whether value is one of the clinic's slots.
func ValidSlot(value string) bool {
	for _, s := range Slots() {
		if s == value {
			return true
		}
	}
	return false
}

// CompositeKey joins a date and slot into the backend's dateTime value.
func CompositeKey(date, slot string) string {
	return date + "_" + slot
}

// SlotTaken reports whether the nurse already holds a live booking for the
// date and slot. Rejected appointments release their slot.
func SlotTaken(appts []clinicapi.Appointment, nurse, date, slot string) bool {
	key := CompositeKey(date, slot)
	for _, apt := range appts {
		if apt.Nurse == nurse && apt.DateTime == key && apt.Status != clinicapi.StatusRejected {
			return true
		}
	}
	return false
}

// Availability maps each slot to whether the nurse can still take it on the
// given date.
func Availability(appts []clinicapi.Appointment, nurse, date string) map[string]bool {
	out := make(map[string]bool, lastSlotHour-firstSlotHour+1)
	for _, slot := range Slots() {
		out[slot] = !SlotTaken(appts, nurse, date, slot)
	}
	return out
}
