package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// MockBackend is an in-memory stand-in for the clinic REST backend. It
// keeps consultations, appointments, records and admin users in memory and
// serves the same routes with the same wire shapes.
type MockBackend struct {
	mu            sync.Mutex
	consultations []clinicapi.Consultation
	appointments  []clinicapi.Appointment
	records       []clinicapi.AcceptedRecord
	users         []clinicapi.AdminUser
	passwords     map[string]string
	nextID        int

	server *httptest.Server
}

// NewMockBackend starts the fake backend. The server shuts down with the
// test.
func NewMockBackend(t *testing.T) *MockBackend {
	t.Helper()

	b := &MockBackend{passwords: make(map[string]string), nextID: 1}
	b.server = httptest.NewServer(http.HandlerFunc(b.route))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the backend base URL for a clinicapi.Client.
func (b *MockBackend) URL() string {
	return b.server.URL
}

// SeedAppointment adds an appointment, assigning it an ID.
func (b *MockBackend) SeedAppointment(apt clinicapi.Appointment) clinicapi.Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	if apt.ID == "" {
		apt.ID = b.newIDLocked()
	}
	b.appointments = append(b.appointments, apt)
	return apt
}

// SeedConsultation adds a consultation record, assigning it an ID.
func (b *MockBackend) SeedConsultation(rec clinicapi.Consultation) clinicapi.Consultation {
	b.mu.Lock()
	defer b.mu.Unlock()
	if rec.ID == "" {
		rec.ID = b.newIDLocked()
	}
	b.consultations = append(b.consultations, rec)
	return rec
}

// SeedUser adds a staff account with a password for login.
func (b *MockBackend) SeedUser(user clinicapi.AdminUser, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append(b.users, user)
	b.passwords[user.Username] = password
}

// Consultations returns the stored consultation records.
func (b *MockBackend) Consultations() []clinicapi.Consultation {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]clinicapi.Consultation, len(b.consultations))
	copy(out, b.consultations)
	return out
}

// Appointments returns the stored appointments.
func (b *MockBackend) Appointments() []clinicapi.Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]clinicapi.Appointment, len(b.appointments))
	copy(out, b.appointments)
	return out
}

// Records returns the stored accepted records.
func (b *MockBackend) Records() []clinicapi.AcceptedRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]clinicapi.AcceptedRecord, len(b.records))
	copy(out, b.records)
	return out
}

func (b *MockBackend) newIDLocked() string {
	id := fmt.Sprintf("id-%d", b.nextID)
	b.nextID++
	return id
}

func (b *MockBackend) route(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/consultations" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, b.consultations)
	case path == "/consultations" && r.Method == http.MethodPost:
		var rec clinicapi.Consultation
		if !readJSON(w, r, &rec) {
			return
		}
		rec.ID = b.newIDLocked()
		b.consultations = append(b.consultations, rec)
		writeJSON(w, http.StatusCreated, rec)
	case strings.HasPrefix(path, "/consultations/") && r.Method == http.MethodPut:
		id := strings.TrimPrefix(path, "/consultations/")
		var rec clinicapi.Consultation
		if !readJSON(w, r, &rec) {
			return
		}
		for i := range b.consultations {
			if b.consultations[i].ID == id {
				rec.ID = id
				b.consultations[i] = rec
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Consultation not found")
	case strings.HasPrefix(path, "/consultations/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/consultations/")
		for i := range b.consultations {
			if b.consultations[i].ID == id {
				b.consultations = append(b.consultations[:i], b.consultations[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Consultation not found")

	case path == "/appointments" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, b.appointments)
	case path == "/appointments" && r.Method == http.MethodPost:
		var apt clinicapi.Appointment
		if !readJSON(w, r, &apt) {
			return
		}
		for _, existing := range b.appointments {
			if existing.Nurse == apt.Nurse && existing.DateTime == apt.DateTime &&
				existing.Status != clinicapi.StatusRejected {
				writeDetail(w, http.StatusBadRequest, "This time slot is already booked")
				return
			}
		}
		apt.ID = b.newIDLocked()
		b.appointments = append(b.appointments, apt)
		writeJSON(w, http.StatusCreated, apt)
	case strings.HasSuffix(path, "/accept") && r.Method == http.MethodPatch:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/appointments/"), "/accept")
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments[i].Status = clinicapi.StatusAccepted
				writeJSON(w, http.StatusOK, b.appointments[i])
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Appointment not found")
	case strings.HasPrefix(path, "/appointments/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/appointments/")
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments = append(b.appointments[:i], b.appointments[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Appointment not found")

	case path == "/records" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, b.records)
	case path == "/records" && r.Method == http.MethodPost:
		var rec clinicapi.AcceptedRecord
		if !readJSON(w, r, &rec) {
			return
		}
		b.records = append(b.records, rec)
		writeJSON(w, http.StatusCreated, rec)

	case path == "/admin-users" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, b.users)
	case path == "/register" && r.Method == http.MethodPost:
		var req clinicapi.RegisterRequest
		if !readJSON(w, r, &req) {
			return
		}
		for _, u := range b.users {
			if u.Username == req.Username {
				writeDetail(w, http.StatusBadRequest, "Username already exists")
				return
			}
		}
		b.users = append(b.users, clinicapi.AdminUser{
			FullName: req.FullName,
			Username: req.Username,
			Email:    req.Email,
			Status:   "Pending",
		})
		b.passwords[req.Username] = req.Password
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
	case path == "/approve-user" && r.Method == http.MethodPost:
		var req struct {
			Username string `json:"username"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		for i := range b.users {
			if b.users[i].Username == req.Username {
				b.users[i].Status = "Approved"
				writeJSON(w, http.StatusOK, b.users[i])
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "User not found")
	case strings.HasPrefix(path, "/delete-user/") && r.Method == http.MethodDelete:
		username := strings.TrimPrefix(path, "/delete-user/")
		for i := range b.users {
			if b.users[i].Username == username {
				b.users = append(b.users[:i], b.users[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "User not found")
	case path == "/login" && r.Method == http.MethodPost:
		var req clinicapi.LoginRequest
		if !readJSON(w, r, &req) {
			return
		}
		if b.passwords[req.Username] != req.Password || req.Password == "" {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		for _, u := range b.users {
			if u.Username == req.Username && u.Status != "Approved" {
				writeDetail(w, http.StatusForbidden, "Account pending approval")
				return
			}
		}
		writeJSON(w, http.StatusOK, clinicapi.LoginResult{Message: "Login successful", Role: "admin"})

	default:
		writeDetail(w, http.StatusNotFound, "Not found")
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
