package appointment

import (
	"sort"
	"strings"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Sort orders for the accepted records table.
const (
	SortLatest = "latest"
	SortOldest = "oldest"
)

// FilterAppointments narrows the pending request list. The query matches
// name, student ID and email case-insensitively; status and nurse filter
// exactly when set.
func FilterAppointments(appts []clinicapi.Appointment, query, status, nurse string) []clinicapi.Appointment {
	query = strings.ToLower(query)
	out := make([]clinicapi.Appointment, 0, len(appts))
	for _, apt := range appts {
		if status != "" && apt.Status != status {
			continue
		}
		if nurse != "" && apt.Nurse != nurse {
			continue
		}
		if query != "" && !matchesQuery(query, apt.FirstName, apt.LastName, apt.StudentID, apt.Email) {
			continue
		}
		out = append(out, apt)
	}
	return out
}

// FilterRecords narrows and orders the accepted records table. The
// composite dateTime key is zero-padded, so lexicographic order is
// chronological order.
func FilterRecords(recs []clinicapi.AcceptedRecord, query, order string) []clinicapi.AcceptedRecord {
	query = strings.ToLower(query)
	out := make([]clinicapi.AcceptedRecord, 0, len(recs))
	for _, rec := range recs {
		if query != "" && !matchesQuery(query, rec.FirstName, rec.LastName, rec.StudentID, rec.Email) {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldest {
			return out[i].DateTime < out[j].DateTime
		}
		return out[i].DateTime > out[j].DateTime
	})
	return out
}

// Nurses returns the distinct nurse labels present in the request list,
// in first-seen order, for the filter dropdown.
func Nurses(appts []clinicapi.Appointment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, apt := range appts {
		if apt.Nurse == "" || seen[apt.Nurse] {
			continue
		}
		seen[apt.Nurse] = true
		out = append(out, apt.Nurse)
	}
	return out
}

func matchesQuery(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
