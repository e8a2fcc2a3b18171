package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

type stubSessions struct {
	issued  []string
	cleared int
}

func (s *stubSessions) Issue(w http.ResponseWriter, username, role string) error {
	s.issued = append(s.issued, username+"/"+role)
	return nil
}

func (s *stubSessions) Clear(w http.ResponseWriter) {
	s.cleared++
}

func newTestHandler(api *mockAPI) (*Handler, *stubSessions) {
	directory := NewDirectory(api, nil)
	directory.Refresh(context.Background())
	sessions := &stubSessions{}
	return NewHandler(NewService(api, directory, nil), sessions), sessions
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginHandler_KnownRolesRedirectToDashboard(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleStaff, RoleNurse} {
		api := &mockAPI{loginResult: &clinicapi.LoginResult{Message: "ok", Role: role}}
		handler, sessions := newTestHandler(api)

		rec := httptest.NewRecorder()
		handler.Login(rec, postForm("/login", url.Values{"username": {"ana"}, "password": {"pw"}}))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("Expected redirect for role %q, got %d", role, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/admin/dashboard" {
			t.Errorf("Expected dashboard redirect for role %q, got %q", role, loc)
		}
		if len(sessions.issued) != 1 || sessions.issued[0] != "ana/"+role {
			t.Errorf("Expected session issued with role %q, got %v", role, sessions.issued)
		}
	}
}

func TestLoginHandler_UnknownRole(t *testing.T) {
	api := &mockAPI{loginResult: &clinicapi.LoginResult{Message: "ok", Role: "intern"}}
	handler, sessions := newTestHandler(api)

	rec := httptest.NewRecorder()
	handler.Login(rec, postForm("/login", url.Values{"username": {"ana"}, "password": {"pw"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=role" {
		t.Errorf("Expected unknown-role redirect, got %q", loc)
	}
	if len(sessions.issued) != 0 {
		t.Errorf("Expected no session for unknown role, got %v", sessions.issued)
	}
}

func TestLogoutHandler_RequiresConfirmation(t *testing.T) {
	handler, sessions := newTestHandler(&mockAPI{})

	rec := httptest.NewRecorder()
	handler.Logout(rec, postForm("/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected confirmation page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign out") {
		t.Error("Expected sign-out prompt in confirmation page")
	}
	if sessions.cleared != 0 {
		t.Error("Expected session untouched before confirmation")
	}

	rec = httptest.NewRecorder()
	handler.Logout(rec, postForm("/logout", url.Values{"confirm": {"yes"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect after confirmed logout, got %d", rec.Code)
	}
	if sessions.cleared != 1 {
		t.Error("Expected session cleared after confirmation")
	}
}

func TestDeleteHandler_RequiresConfirmation(t *testing.T) {
	api := &mockAPI{users: []clinicapi.AdminUser{{Username: "bob", Status: StatusApproved}}}
	handler, _ := newTestHandler(api)

	r := mux.NewRouter()
	admin := r.PathPrefix("/admin").Subrouter()
	handler.RegisterAdminRoutes(admin)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, postForm("/admin/users/bob/delete", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected confirmation page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/admin/users/bob/delete"`) {
		t.Error("Expected confirmation form re-posting the delete action")
	}
	if len(api.deleted) != 0 {
		t.Error("Expected no deletion before confirmation")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, postForm("/admin/users/bob/delete", url.Values{"confirm": {"yes"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect after confirmed delete, got %d", rec.Code)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "bob" {
		t.Errorf("Expected bob deleted, got %v", api.deleted)
	}
}
