package appointment

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/confirm"
)

// Handler exposes the appointment decisions. Table rendering happens in the
// web package; these endpoints carry the mutations.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/appointments/{id}/accept", h.Accept).Methods("POST")
	r.HandleFunc("/appointments/{id}/delete", h.Delete).Methods("POST")
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Accept(r.Context(), id); err != nil {
		log.Printf("Failed to accept appointment: %v", err)

		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to accept appointment", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/appointments", http.StatusSeeOther)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if confirm.Required(r) {
		confirm.Prompt(w, "Delete this appointment request? This cannot be undone.",
			r.URL.Path, "/admin/appointments")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Printf("Failed to delete appointment: %v", err)

		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete appointment", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/appointments", http.StatusSeeOther)
}
