package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ccsfp-clinic/clinic-gateway/internal/appointment"
	"github.com/ccsfp-clinic/clinic-gateway/internal/auth"
	"github.com/ccsfp-clinic/clinic-gateway/internal/booking"
	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
	"github.com/ccsfp-clinic/clinic-gateway/internal/dashboard"
	"github.com/ccsfp-clinic/clinic-gateway/internal/export"
	"github.com/ccsfp-clinic/clinic-gateway/internal/localstore"
	"github.com/ccsfp-clinic/clinic-gateway/internal/state"
	"github.com/ccsfp-clinic/clinic-gateway/internal/telemetry"
	"github.com/ccsfp-clinic/clinic-gateway/internal/testutil"
	"github.com/ccsfp-clinic/clinic-gateway/internal/users"
	"github.com/ccsfp-clinic/clinic-gateway/internal/web"
	"github.com/gorilla/mux"
)

type routerFixture struct {
	router   *mux.Router
	sessions *auth.Sessions
	chart    *dashboard.Chart
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	backend := testutil.NewMockBackend(t)
	client := clinicapi.NewClient(backend.URL())
	publisher := testutil.NewMockPublisher()

	app := state.New()
	consultCache := consultation.NewCache(client, nil)
	consultViews := consultation.NewViews(consultCache, app)
	apptCache := appointment.NewCache(client, nil)
	directory := users.NewDirectory(client, nil)

	consultService := consultation.NewService(client, consultCache, consultViews, publisher)
	apptService := appointment.NewService(client, apptCache, publisher)
	userService := users.NewService(client, directory, publisher)
	engine := booking.NewEngine(client, localstore.New(t.TempDir()+"/appointments.json"), publisher, nil)

	stats := dashboard.NewStats(
		consultCache,
		dashboard.CounterFunc(apptCache.AppointmentCount),
		dashboard.CounterFunc(apptCache.RecordCount),
		directory,
	)
	chart := dashboard.NewChart()

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		t.Fatalf("InitMetrics failed: %v", err)
	}

	sessions := auth.NewSessions("test-secret")
	server := web.NewServer(app, consultCache, consultViews, apptCache, directory, engine, stats, chart)

	router := web.SetupRouter(web.Handlers{
		Server:        server,
		Sessions:      sessions,
		Metrics:       metrics,
		Consultations: consultation.NewHandler(consultService, consultViews),
		Appointments:  appointment.NewHandler(apptService),
		Booking:       booking.NewHandler(engine),
		Users:         users.NewHandler(userService, sessions),
		Export:        export.NewHandler(consultViews),
	})
	return &routerFixture{router: router, sessions: sessions, chart: chart}
}

func (f *routerFixture) sessionCookie(t *testing.T, username, role string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := f.sessions.Issue(rec, username, role); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}
	return cookies[0]
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", rec.Code)
	}
}

func TestRouter_RootRedirectsToLogin(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect from /, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
}

func TestRouter_AdminRequiresSession(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect without session, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
}

func TestRouter_AdminPagesWithSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.sessionCookie(t, "admin", users.RoleAdmin)

	for _, path := range []string{"/admin/dashboard", "/admin/files", "/admin/appointments", "/admin/records", "/admin/profile"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 from %s with session, got %d", path, rec.Code)
		}
	}
}

func TestRouter_ProfileIsAdminOnly(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.sessionCookie(t, "nurse1", users.RoleNurse)

	req := httptest.NewRequest(http.MethodGet, "/admin/profile", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for staff on profile, got %d", rec.Code)
	}

	// Staff navigation carries no profile link either.
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from dashboard, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `href="/admin/profile"`) {
		t.Error("Expected no profile link for staff role")
	}
}

func TestRouter_DashboardRendersChart(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.sessionCookie(t, "admin", users.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from dashboard, got %d", rec.Code)
	}
	if f.chart.Rendered() == "" {
		t.Error("Expected chart rendered once the dashboard section is active")
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("Expected SVG chart in dashboard body")
	}
}

func TestRouter_LoginPageUnknownRoleMessage(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?error=role", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from login page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unrecognized role") {
		t.Error("Expected unknown-role message on login page")
	}
}

func TestRouter_BookingPageIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from public booking page, got %d", rec.Code)
	}
}
