package appointment

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

var tmplFuncs = template.FuncMap{
	"displayDateTime": DisplayDateTime,
}

var appointmentsTmpl = template.Must(template.New("appointments").Funcs(tmplFuncs).Parse(`<table id="appointments-table">
<thead>
<tr><th>Student ID</th><th>Last Name</th><th>First Name</th><th>Email</th><th>Concern</th><th>Nurse</th><th>Date &amp; Time</th><th>Status</th><th>Actions</th></tr>
</thead>
<tbody>
{{- if not .Appointments}}
<tr><td colspan="9" class="empty">No appointment requests found.</td></tr>
{{- else}}
{{- range .Appointments}}
<tr>
<td>{{.StudentID}}</td>
<td>{{.LastName}}</td>
<td>{{.FirstName}}</td>
<td>{{.Email}}</td>
<td>{{.Concern}}</td>
<td>{{.Nurse}}</td>
<td>{{displayDateTime .DateTime}}</td>
<td><span class="status status-{{.Status}}">{{.Status}}</span></td>
<td>
<form method="post" action="/admin/appointments/{{.ID}}/accept"><button class="accept-btn">Accept</button></form>
<form method="post" action="/admin/appointments/{{.ID}}/delete"><button class="delete-btn">Delete</button></form>
</td>
</tr>
{{- end}}
{{- end}}
</tbody>
</table>
`))

var recordsTmpl = template.Must(template.New("records").Funcs(tmplFuncs).Parse(`<table id="records-table">
<thead>
<tr><th>Student ID</th><th>Last Name</th><th>First Name</th><th>Email</th><th>Concern</th><th>Nurse</th><th>Date &amp; Time</th></tr>
</thead>
<tbody>
{{- if not .Records}}
<tr><td colspan="7" class="empty">No accepted appointments found.</td></tr>
{{- else}}
{{- range .Records}}
<tr>
<td>{{.StudentID}}</td>
<td>{{.LastName}}</td>
<td>{{.FirstName}}</td>
<td>{{.Email}}</td>
<td>{{.Concern}}</td>
<td>{{.Nurse}}</td>
<td>{{displayDateTime .DateTime}}</td>
</tr>
{{- end}}
{{- end}}
</tbody>
</table>
`))

// RenderAppointments renders the pending requests table after filtering.
func RenderAppointments(appts []clinicapi.Appointment, query, status, nurse string) (template.HTML, error) {
	filtered := FilterAppointments(appts, query, status, nurse)

	var buf bytes.Buffer
	err := appointmentsTmpl.Execute(&buf, struct {
		Appointments []clinicapi.Appointment
	}{filtered})
	if err != nil {
		return "", fmt.Errorf("failed to render appointments table: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderRecords renders the accepted records table after filtering and
// ordering.
func RenderRecords(recs []clinicapi.AcceptedRecord, query, order string) (template.HTML, error) {
	filtered := FilterRecords(recs, query, order)

	var buf bytes.Buffer
	err := recordsTmpl.Execute(&buf, struct {
		Records []clinicapi.AcceptedRecord
	}{filtered})
	if err != nil {
		return "", fmt.Errorf("failed to render records table: %w", err)
	}
	return template.HTML(buf.String()), nil
}
