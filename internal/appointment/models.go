package appointment

import (
	"strings"

	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
)

// SplitKey breaks the composite dateTime key ("2025-03-10_09:00") into its
// date and slot parts. A value without the separator is all date.
func SplitKey(dateTime string) (date, slot string) {
	parts := strings.SplitN(dateTime, "_", 2)
	date = parts[0]
	if len(parts) > 1 {
		slot = parts[1]
	}
	return date, slot
}

// DisplayDateTime renders the composite key for the tables, with the slot
// in 12-hour form.
func DisplayDateTime(dateTime string) string {
	date, slot := SplitKey(dateTime)
	if slot == "" {
		return date
	}
	return date + " " + consultation.FormatTime24To12(slot)
}
