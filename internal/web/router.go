package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/ccsfp-clinic/clinic-gateway/internal/appointment"
	"github.com/ccsfp-clinic/clinic-gateway/internal/auth"
	"github.com/ccsfp-clinic/clinic-gateway/internal/booking"
	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
	"github.com/ccsfp-clinic/clinic-gateway/internal/export"
	"github.com/ccsfp-clinic/clinic-gateway/internal/telemetry"
	"github.com/ccsfp-clinic/clinic-gateway/internal/users"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Server        *Server
	Sessions      *auth.Sessions
	Metrics       *telemetry.Metrics
	Consultations *consultation.Handler
	Appointments  *appointment.Handler
	Booking       *booking.Handler
	Users         *users.Handler
	Export        *export.Handler
}

// SetupRouter initializes all routes for the gateway. The admin pages and
// actions sit behind the session middleware; login, registration and the
// student booking page stay public.
func SetupRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-admin-gateway"))
	r.Use(metricsMiddleware(h.Metrics))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-admin-gateway"}`))
	}).Methods("GET")

	// Public pages
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	}).Methods("GET")
	r.HandleFunc("/login", h.Server.LoginPage).Methods("GET")
	r.HandleFunc("/register", h.Server.RegisterPage).Methods("GET")
	r.HandleFunc("/booking", h.Server.BookingPage).Methods("GET")

	// Public actions
	h.Users.RegisterPublicRoutes(r)
	h.Booking.RegisterRoutes(r)

	// Session-protected admin surface
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.MiddlewareWithMetrics(h.Sessions, h.Metrics))

	admin.HandleFunc("/dashboard", h.Server.Dashboard).Methods("GET")
	admin.HandleFunc("/files", h.Server.Files).Methods("GET")
	admin.HandleFunc("/appointments", h.Server.Appointments).Methods("GET")
	admin.HandleFunc("/records", h.Server.Records).Methods("GET")
	admin.Handle("/profile", auth.RequireRole(users.RoleAdmin, http.HandlerFunc(h.Server.Profile))).Methods("GET")

	h.Consultations.RegisterRoutes(admin)
	h.Appointments.RegisterRoutes(admin)
	h.Export.RegisterRoutes(admin)
	h.Users.RegisterAdminRoutes(admin)

	return r
}

// metricsMiddleware records request count and duration per route template.
func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, sw.status,
				float64(time.Since(start).Milliseconds()))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
