package export

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
)

// Handler serves the selected consultation record as a Word download.
type Handler struct {
	views *consultation.Views
}

func NewHandler(views *consultation.Views) *Handler {
	return &Handler{views: views}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/files/export", h.Export).Methods("GET")
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.views.SelectedRecord()
	if !ok {
		http.Error(w, "no consultation record selected", http.StatusBadRequest)
		return
	}

	doc, err := WordDocument(rec)
	if err != nil {
		log.Printf("Failed to export consultation record: %v", err)
		http.Error(w, "failed to export consultation record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(rec)))
	if _, err := w.Write(doc); err != nil {
		log.Printf("Failed to write export response: %v", err)
	}
}
