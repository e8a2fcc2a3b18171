package consultation

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/confirm"
)

// Handler exposes the consultation record actions. GET rendering of the
// files section happens in the web package; these endpoints carry the
// mutations and view transitions, each redirecting back to the section.
type Handler struct {
	service *Service
	views   *Views
}

func NewHandler(service *Service, views *Views) *Handler {
	return &Handler{service: service, views: views}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/files/records/{index}", h.ShowDetail).Methods("GET")
	r.HandleFunc("/files/create", h.Create).Methods("POST")
	r.HandleFunc("/files/back", h.Back).Methods("POST")
	r.HandleFunc("/files/edit", h.Edit).Methods("POST")
	r.HandleFunc("/files/cancel-edit", h.CancelEdit).Methods("POST")
	r.HandleFunc("/files/update", h.Update).Methods("POST")
	r.HandleFunc("/files/delete", h.Delete).Methods("POST")
	r.HandleFunc("/files/preview", h.OpenPreview).Methods("POST")
	r.HandleFunc("/files/preview/close", h.ClosePreview).Methods("POST")
}

func (h *Handler) ShowDetail(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid record index", http.StatusBadRequest)
		return
	}
	h.views.ShowDetail(idx)
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if err := h.service.Create(r.Context(), ParseForm(r)); err != nil {
		log.Printf("Failed to create consultation record: %v", err)
		http.Error(w, "failed to create consultation record", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.views.ShowList()
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	h.views.ShowEdit()
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.views.CancelEdit()
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if !h.views.ApplyDraft(ParseForm(r)) {
		http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
		return
	}

	if err := h.service.Update(r.Context()); err != nil {
		log.Printf("Failed to update consultation record: %v", err)

		if errors.Is(err, ErrNoSelection) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to update consultation record", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if confirm.Required(r) {
		confirm.Prompt(w, "Delete this consultation record? This cannot be undone.",
			"/admin/files/delete", "/admin/files")
		return
	}

	if err := h.service.Delete(r.Context()); err != nil {
		log.Printf("Failed to delete consultation record: %v", err)

		if errors.Is(err, ErrNoSelection) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to delete consultation record", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) OpenPreview(w http.ResponseWriter, r *http.Request) {
	h.views.OpenPreview()
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

func (h *Handler) ClosePreview(w http.ResponseWriter, r *http.Request) {
	h.views.ClosePreview()
	http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
}

// ParseForm reads the consultation form fields from the request. Checkbox
// values arrive only when checked, so absence means false.
func ParseForm(r *http.Request) FormInput {
	age, _ := strconv.Atoi(r.FormValue("age"))
	return FormInput{
		StudentID:       r.FormValue("studentId"),
		FirstName:       r.FormValue("firstName"),
		MiddleInitial:   r.FormValue("middleInitial"),
		LastName:        r.FormValue("lastName"),
		Age:             age,
		Gender:          r.FormValue("gender"),
		GradeSection:    r.FormValue("gradeSection"),
		DateOfBirth:     r.FormValue("dateOfBirth"),
		Address:         r.FormValue("address"),
		ParentGuardian:  r.FormValue("parentGuardian"),
		ContactNumber:   r.FormValue("contactNumber"),
		DateOfVisit:     r.FormValue("dateOfVisit"),
		TimeOfVisit:     r.FormValue("timeOfVisit"),
		ReasonForVisit:  r.FormValue("reasonForVisit"),
		Temperature:     r.FormValue("temperature"),
		PulseRate:       r.FormValue("pulseRate"),
		BloodPressure:   r.FormValue("bloodPressure"),
		RespiratoryRate: r.FormValue("respiratoryRate"),
		Assessment:      r.FormValue("assessment"),
		Diagnosis:       r.FormValue("diagnosis"),
		ActionsTaken: clinicapi.ActionsTaken{
			RestedInClinic:         r.FormValue("restedInClinic") != "",
			GivenFirstAid:          r.FormValue("givenFirstAid") != "",
			AdministeredMedication: r.FormValue("administeredMedication") != "",
			MedicationDetails:      r.FormValue("medicationDetails"),
			SentHome:               r.FormValue("sentHome") != "",
			Referred:               r.FormValue("referred") != "",
			ReferredTo:             r.FormValue("referredTo"),
			Others:                 r.FormValue("others") != "",
			OthersDetails:          r.FormValue("othersDetails"),
		},
		Recommendations: r.FormValue("recommendations"),
		NurseName:       r.FormValue("nurseName"),
		NurseSignature:  r.FormValue("nurseSignature"),
		NurseDate:       r.FormValue("nurseDate"),
	}
}
