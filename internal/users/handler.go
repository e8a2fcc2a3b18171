package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/confirm"
)

// SessionIssuer writes and clears the admin session cookie.
type SessionIssuer interface {
	Issue(w http.ResponseWriter, username, role string) error
	Clear(w http.ResponseWriter)
}

// Handler exposes registration, login and the staff directory actions.
type Handler struct {
	service  *Service
	sessions SessionIssuer
}

func NewHandler(service *Service, sessions SessionIssuer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterPublicRoutes wires the routes that need no session.
func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
	r.HandleFunc("/register", h.Register).Methods("POST")
}

// RegisterAdminRoutes wires the session-protected directory actions.
func (h *Handler) RegisterAdminRoutes(r *mux.Router) {
	r.HandleFunc("/users/{username}/approve", h.Approve).Methods("POST")
	r.HandleFunc("/users/{username}/delete", h.Delete).Methods("POST")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	role, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrLoginFailed) {
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			return
		}
		log.Printf("Login error: %v", err)
		http.Error(w, "login service unavailable", http.StatusBadGateway)
		return
	}

	switch role {
	case RoleAdmin, RoleStaff, RoleNurse:
	default:
		log.Printf("Login for %q returned unknown role %q", username, role)
		http.Redirect(w, r, "/login?error=role", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Issue(w, username, role); err != nil {
		log.Printf("Failed to issue session: %v", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	// Staff land on the same dashboard; the profile section stays
	// admin-only via the role gate on its route.
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if confirm.Required(r) {
		confirm.Prompt(w, "Sign out of the clinic admin?", "/logout", "/admin/dashboard")
		return
	}

	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := clinicapi.RegisterRequest{
		FullName: r.FormValue("fullName"),
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		log.Printf("Failed to register user: %v", err)

		switch {
		case errors.Is(err, ErrMissingFullName),
			errors.Is(err, ErrMissingUsername),
			errors.Is(err, ErrMissingEmail),
			errors.Is(err, ErrMissingPassword):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to register user", http.StatusBadGateway)
		}
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.service.Approve(r.Context(), username); err != nil {
		log.Printf("Failed to approve user: %v", err)

		switch {
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "failed to approve user", http.StatusBadGateway)
		}
		return
	}

	http.Redirect(w, r, "/admin/profile", http.StatusSeeOther)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if confirm.Required(r) {
		confirm.Prompt(w, "Delete the account "+username+"? This cannot be undone.",
			r.URL.Path, "/admin/profile")
		return
	}

	if err := h.service.Delete(r.Context(), username); err != nil {
		log.Printf("Failed to delete user: %v", err)

		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete user", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/profile", http.StatusSeeOther)
}
