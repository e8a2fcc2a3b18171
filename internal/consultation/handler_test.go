package consultation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
	"github.com/ccsfp-clinic/clinic-gateway/internal/state"
	"github.com/ccsfp-clinic/clinic-gateway/internal/testutil"
)

type handlerFixture struct {
	backend *testutil.MockBackend
	cache   *consultation.Cache
	views   *consultation.Views
	router  *mux.Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	backend := testutil.NewMockBackend(t)
	client := clinicapi.NewClient(backend.URL())

	app := state.New()
	cache := consultation.NewCache(client, nil)
	views := consultation.NewViews(cache, app)
	service := consultation.NewService(client, cache, views, testutil.NewMockPublisher())

	r := mux.NewRouter()
	admin := r.PathPrefix("/admin").Subrouter()
	consultation.NewHandler(service, views).RegisterRoutes(admin)

	return &handlerFixture{backend: backend, cache: cache, views: views, router: r}
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateRoute_SavesRecord(t *testing.T) {
	f := newHandlerFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, postForm("/admin/files/create", url.Values{
		"studentId":      {"2021-00123"},
		"firstName":      {"Ana"},
		"lastName":       {"Reyes"},
		"dateOfVisit":    {"2025-03-10"},
		"timeOfVisit":    {"09:30"},
		"reasonForVisit": {"Fever"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect after create, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/files" {
		t.Errorf("Expected redirect to files section, got %q", loc)
	}

	stored := f.backend.Consultations()
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored record, got %d", len(stored))
	}
	if stored[0].Concern != "Fever" || stored[0].DateTime != "2025-03-10T09:30" {
		t.Errorf("Expected mapped wire fields, got %+v", stored[0])
	}
	if f.cache.Len() != 1 {
		t.Errorf("Expected cache refreshed after create, got %d", f.cache.Len())
	}
}

func TestDeleteRoute_RequiresConfirmation(t *testing.T) {
	f := newHandlerFixture(t)
	f.backend.SeedConsultation(clinicapi.Consultation{FirstName: "Ana"})
	f.cache.Refresh(context.Background())
	f.views.ShowDetail(0)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, postForm("/admin/files/delete", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected confirmation page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/admin/files/delete"`) {
		t.Error("Expected confirmation form re-posting the delete")
	}
	if len(f.backend.Consultations()) != 1 {
		t.Error("Expected record untouched before confirmation")
	}

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, postForm("/admin/files/delete", url.Values{"confirm": {"yes"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect after confirmed delete, got %d", rec.Code)
	}
	if len(f.backend.Consultations()) != 0 {
		t.Error("Expected record deleted after confirmation")
	}
}
