package users

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

var usersTmpl = template.Must(template.New("users").Parse(`<table id="users-table">
<thead>
<tr><th>Full Name</th><th>Username</th><th>Email</th><th>Status</th><th>Actions</th></tr>
</thead>
<tbody>
{{- if not .Users}}
<tr><td colspan="5" class="empty">No staff accounts found.</td></tr>
{{- else}}
{{- range .Users}}
<tr>
<td>{{.FullName}}</td>
<td>{{.Username}}</td>
<td>{{.Email}}</td>
<td><span class="status status-{{.Status}}">{{.Status}}</span></td>
<td>
{{- if eq .Status "Pending"}}
<form method="post" action="/admin/users/{{.Username}}/approve"><button class="approve-btn">Approve</button></form>
{{- end}}
<form method="post" action="/admin/users/{{.Username}}/delete"><button class="delete-btn">Delete</button></form>
</td>
</tr>
{{- end}}
{{- end}}
</tbody>
</table>
`))

// RenderDirectory renders the staff accounts table. The approve action only
// appears on pending accounts.
func RenderDirectory(users []clinicapi.AdminUser) (template.HTML, error) {
	var buf bytes.Buffer
	err := usersTmpl.Execute(&buf, struct {
		Users []clinicapi.AdminUser
	}{users})
	if err != nil {
		return "", fmt.Errorf("failed to render users table: %w", err)
	}
	return template.HTML(buf.String()), nil
}
