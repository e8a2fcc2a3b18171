package web

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/ccsfp-clinic/clinic-gateway/internal/appointment"
	"github.com/ccsfp-clinic/clinic-gateway/internal/auth"
	"github.com/ccsfp-clinic/clinic-gateway/internal/booking"
	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
	"github.com/ccsfp-clinic/clinic-gateway/internal/dashboard"
	"github.com/ccsfp-clinic/clinic-gateway/internal/state"
	"github.com/ccsfp-clinic/clinic-gateway/internal/users"
)

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - CCSFP Clinic</title>
<link rel="stylesheet" href="/static/styles.css">
</head>
<body>
{{- if .ShowNav}}
<nav id="sidebar">
<span class="brand">CCSFP Clinic</span>
<a href="/admin/dashboard"{{if eq .Section "dashboard"}} class="active"{{end}}>Dashboard</a>
<a href="/admin/files"{{if eq .Section "files"}} class="active"{{end}}>Files</a>
<a href="/admin/appointments"{{if eq .Section "appointments"}} class="active"{{end}}>Appointments</a>
<a href="/admin/records"{{if eq .Section "records"}} class="active"{{end}}>Records</a>
{{- if eq .Role "admin"}}
<a href="/admin/profile"{{if eq .Section "profile"}} class="active"{{end}}>Profile</a>
{{- end}}
<form method="post" action="/logout"><button id="logout-btn">Logout</button></form>
</nav>
{{- end}}
<main id="{{.Section}}-section" class="section active">
{{.Body}}
</main>
</body>
</html>
`))

type page struct {
	Title   string
	Section string
	ShowNav bool
	Role    string
	Body    template.HTML
}

func renderPage(w http.ResponseWriter, p page) {
	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, p); err != nil {
		log.Printf("Failed to render page %q: %v", p.Title, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// roleFrom reads the session role for nav rendering; empty outside the
// admin surface.
func roleFrom(r *http.Request) string {
	if pr, ok := auth.FromContext(r.Context()); ok {
		return pr.Role
	}
	return ""
}

// Server renders the admin pages. It owns no business state of its own;
// everything it shows comes from the caches and view machines.
type Server struct {
	app           *state.AppState
	consultations *consultation.Cache
	views         *consultation.Views
	appointments  *appointment.Cache
	directory     *users.Directory
	engine        *booking.Engine
	stats         *dashboard.Stats
	chart         *dashboard.Chart
}

func NewServer(
	app *state.AppState,
	consultations *consultation.Cache,
	views *consultation.Views,
	appointments *appointment.Cache,
	directory *users.Directory,
	engine *booking.Engine,
	stats *dashboard.Stats,
	chart *dashboard.Chart,
) *Server {
	return &Server{
		app:           app,
		consultations: consultations,
		views:         views,
		appointments:  appointments,
		directory:     directory,
		engine:        engine,
		stats:         stats,
		chart:         chart,
	}
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	s.app.ActivateSection(state.SectionDashboard)

	s.consultations.Refresh(r.Context())
	s.appointments.Refresh(r.Context())
	s.directory.Refresh(r.Context())

	counts := s.stats.Counts()

	// The chart only draws into an active dashboard section.
	var chart template.HTML
	err := dashboard.WaitVisible(r.Context(), func() bool {
		return s.app.SectionActive(state.SectionDashboard)
	})
	if err != nil {
		log.Printf("Dashboard chart container never became visible: %v", err)
	} else {
		chart, err = s.chart.Render(counts)
		if err != nil {
			log.Printf("Failed to render dashboard chart: %v", err)
		}
	}

	var body bytes.Buffer
	err = dashboardTmpl.Execute(&body, struct {
		Counts dashboard.Counts
		Chart  template.HTML
	}{counts, chart})
	if err != nil {
		log.Printf("Failed to render dashboard: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{
		Title:   "Dashboard",
		Section: state.SectionDashboard,
		ShowNav: true,
		Role:    roleFrom(r),
		Body:    template.HTML(body.String()),
	})
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<h1>Dashboard</h1>
<div id="stat-cards">
<div class="stat-card"><span class="stat-value">{{.Counts.Files}}</span><span class="stat-label">Consultation Files</span></div>
<div class="stat-card"><span class="stat-value">{{.Counts.Appointments}}</span><span class="stat-label">Appointment Requests</span></div>
<div class="stat-card"><span class="stat-value">{{.Counts.Records}}</span><span class="stat-label">Accepted Records</span></div>
<div class="stat-card"><span class="stat-value">{{.Counts.Users}}</span><span class="stat-label">Staff Accounts</span></div>
</div>
<div id="chart-container">{{.Chart}}</div>
`))

func (s *Server) Files(w http.ResponseWriter, r *http.Request) {
	s.app.ActivateSection(state.SectionFiles)

	var body template.HTML
	var err error

	switch s.views.Current() {
	case consultation.ViewDetail:
		rec, ok := s.views.SelectedRecord()
		if !ok {
			s.views.ShowList()
			http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
			return
		}
		body, err = consultation.RenderDetail(rec)
	case consultation.ViewEdit:
		draft, ok := s.views.Draft()
		if !ok {
			s.views.ShowList()
			http.Redirect(w, r, "/admin/files", http.StatusSeeOther)
			return
		}
		body, err = consultation.RenderEdit(*draft)
	default:
		if r.URL.Query().Get("new") != "" {
			body, err = consultation.RenderCreate()
			break
		}
		s.consultations.Refresh(r.Context())
		body, err = consultation.RenderList(s.consultations.All(), r.URL.Query().Get("q"))
	}
	if err != nil {
		log.Printf("Failed to render files section: %v", err)
		http.Error(w, "failed to render files section", http.StatusInternalServerError)
		return
	}

	if s.views.PreviewOpen() {
		if rec, ok := s.views.SelectedRecord(); ok {
			overlay, oerr := consultation.RenderPreview(rec)
			if oerr != nil {
				log.Printf("Failed to render preview overlay: %v", oerr)
			} else {
				body += `<div id="view-form-modal" class="modal open">` + overlay + `</div>`
			}
		}
	}

	renderPage(w, page{
		Title:   "Consultation Files",
		Section: state.SectionFiles,
		ShowNav: true,
		Role:    roleFrom(r),
		Body:    body,
	})
}

func (s *Server) Appointments(w http.ResponseWriter, r *http.Request) {
	s.app.ActivateSection(state.SectionAppointments)
	s.appointments.Refresh(r.Context())

	q := r.URL.Query()
	body, err := appointment.RenderAppointments(
		s.appointments.Appointments(), q.Get("q"), q.Get("status"), q.Get("nurse"))
	if err != nil {
		log.Printf("Failed to render appointments section: %v", err)
		http.Error(w, "failed to render appointments section", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{
		Title:   "Appointment Requests",
		Section: state.SectionAppointments,
		ShowNav: true,
		Role:    roleFrom(r),
		Body:    body,
	})
}

func (s *Server) Records(w http.ResponseWriter, r *http.Request) {
	s.app.ActivateSection(state.SectionRecords)
	s.appointments.Refresh(r.Context())

	q := r.URL.Query()
	body, err := appointment.RenderRecords(s.appointments.Records(), q.Get("q"), q.Get("sort"))
	if err != nil {
		log.Printf("Failed to render records section: %v", err)
		http.Error(w, "failed to render records section", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{
		Title:   "Accepted Records",
		Section: state.SectionRecords,
		ShowNav: true,
		Role:    roleFrom(r),
		Body:    body,
	})
}

func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	s.app.ActivateSection(state.SectionProfile)
	s.directory.Refresh(r.Context())

	principal, _ := auth.FromContext(r.Context())

	table, err := users.RenderDirectory(s.directory.All())
	if err != nil {
		log.Printf("Failed to render profile section: %v", err)
		http.Error(w, "failed to render profile section", http.StatusInternalServerError)
		return
	}

	var body bytes.Buffer
	err = profileTmpl.Execute(&body, struct {
		Principal *auth.Principal
		Table     template.HTML
	}{principal, table})
	if err != nil {
		log.Printf("Failed to render profile section: %v", err)
		http.Error(w, "failed to render profile section", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{
		Title:   "Profile",
		Section: state.SectionProfile,
		ShowNav: true,
		Role:    roleFrom(r),
		Body:    template.HTML(body.String()),
	})
}

var profileTmpl = template.Must(template.New("profile").Parse(`<h1>Profile</h1>
{{- if .Principal}}
<p id="signed-in-as">Signed in as <strong>{{.Principal.Username}}</strong> ({{.Principal.Role}})</p>
{{- end}}
<h2>Staff Accounts</h2>
{{.Table}}
`))

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	err := loginTmpl.Execute(&body, struct {
		Failed      bool
		UnknownRole bool
		Registered  bool
	}{
		Failed:      r.URL.Query().Get("error") == "1",
		UnknownRole: r.URL.Query().Get("error") == "role",
		Registered:  r.URL.Query().Get("registered") != "",
	})
	if err != nil {
		http.Error(w, "failed to render login page", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{Title: "Login", Section: "login", Body: template.HTML(body.String())})
}

var loginTmpl = template.Must(template.New("login").Parse(`<h1>Clinic Admin Login</h1>
{{- if .Failed}}
<p class="error">Invalid username or password.</p>
{{- end}}
{{- if .UnknownRole}}
<p class="error">Your account has an unrecognized role. Contact the clinic administrator.</p>
{{- end}}
{{- if .Registered}}
<p class="notice">Account created. You can sign in once an admin approves it.</p>
{{- end}}
<form id="login-form" method="post" action="/login">
<input name="username" placeholder="Username" required />
<input type="password" name="password" placeholder="Password" required />
<button type="submit">Sign In</button>
</form>
<p><a href="/register">Create an account</a></p>
`))

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, page{Title: "Register", Section: "register", Body: registerBody})
}

var registerBody = template.HTML(`<h1>Create Staff Account</h1>
<form id="register-form" method="post" action="/register">
<input name="fullName" placeholder="Full Name" required />
<input name="username" placeholder="Username" required />
<input type="email" name="email" placeholder="Email" required />
<input type="password" name="password" placeholder="Password" required />
<button type="submit">Register</button>
</form>
<p><a href="/login">Back to login</a></p>
`)

func (s *Server) BookingPage(w http.ResponseWriter, r *http.Request) {
	var availability map[string]bool
	date, _ := s.engine.Selection()
	nurse := r.URL.Query().Get("nurse")
	if date != "" && nurse != "" {
		if appts, err := s.appointments.FetchAppointments(r.Context()); err == nil {
			availability = booking.Availability(appts, nurse, date)
		} else {
			log.Printf("Failed to check slot availability: %v", err)
		}
	}

	calendar, err := booking.RenderCalendar(s.engine, availability)
	if err != nil {
		log.Printf("Failed to render booking page: %v", err)
		http.Error(w, "failed to render booking page", http.StatusInternalServerError)
		return
	}

	var body bytes.Buffer
	err = bookingTmpl.Execute(&body, struct {
		Calendar template.HTML
		Booked   bool
	}{calendar, r.URL.Query().Get("booked") != ""})
	if err != nil {
		log.Printf("Failed to render booking page: %v", err)
		http.Error(w, "failed to render booking page", http.StatusInternalServerError)
		return
	}

	renderPage(w, page{Title: "Book an Appointment", Section: "booking", Body: template.HTML(body.String())})
}

var bookingTmpl = template.Must(template.New("booking").Parse(`<h1>Book a Clinic Appointment</h1>
{{- if .Booked}}
<p class="notice">Your appointment request was submitted and is pending approval.</p>
{{- end}}
{{.Calendar}}
<form id="booking-form" method="post" action="/booking/submit">
<input name="studentId" placeholder="Student ID" required />
<input name="lastName" placeholder="Last Name" required />
<input name="firstName" placeholder="First Name" required />
<input type="email" name="email" placeholder="Email" required />
<textarea name="concern" placeholder="Concern" required></textarea>
<input name="nurseName" placeholder="Nurse" required />
<input type="date" name="nurseDate" required />
<button type="submit">Submit Request</button>
</form>
`))
