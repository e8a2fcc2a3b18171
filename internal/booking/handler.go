package booking

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler exposes the public booking actions. The page itself is rendered
// by the web package.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/booking/prev-month", h.PrevMonth).Methods("POST")
	r.HandleFunc("/booking/next-month", h.NextMonth).Methods("POST")
	r.HandleFunc("/booking/select-date", h.SelectDate).Methods("POST")
	r.HandleFunc("/booking/select-slot", h.SelectSlot).Methods("POST")
	r.HandleFunc("/booking/submit", h.Submit).Methods("POST")
}

func (h *Handler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	h.engine.PrevMonth()
	http.Redirect(w, r, "/booking", http.StatusSeeOther)
}

func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.engine.NextMonth()
	http.Redirect(w, r, "/booking", http.StatusSeeOther)
}

func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.SelectDate(r.FormValue("date")); err != nil {
		log.Printf("Rejected date selection: %v", err)

		if errors.Is(err, ErrPastDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/booking", http.StatusSeeOther)
}

func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	err := h.engine.SelectSlot(r.Context(), r.FormValue("slot"), r.FormValue("nurse"))
	if err != nil {
		log.Printf("Rejected slot selection: %v", err)

		switch {
		case errors.Is(err, ErrSlotTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrNoDate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to check slot availability", http.StatusBadGateway)
		}
		return
	}
	http.Redirect(w, r, "/booking", http.StatusSeeOther)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	form := Form{
		StudentID: r.FormValue("studentId"),
		LastName:  r.FormValue("lastName"),
		FirstName: r.FormValue("firstName"),
		Email:     r.FormValue("email"),
		Concern:   r.FormValue("concern"),
		NurseName: r.FormValue("nurseName"),
		NurseDate: r.FormValue("nurseDate"),
	}

	if err := h.engine.Submit(r.Context(), form); err != nil {
		log.Printf("Failed to submit booking: %v", err)

		switch {
		case errors.Is(err, ErrMissingFields):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrSlotTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "failed to book appointment", http.StatusBadGateway)
		}
		return
	}

	http.Redirect(w, r, "/booking?booked=1", http.StatusSeeOther)
}
