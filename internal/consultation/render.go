package consultation

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ListItemText is the one-line summary shown per record in the list view.
func ListItemText(r Record) string {
	return fmt.Sprintf("ID: %s | %s %s %s | Gender: %s | Section: %s | Date: %s | Time: %s",
		r.StudentID, r.FirstName, r.MiddleInitial, r.LastName,
		r.Gender, r.GradeSection, r.DateOfVisit, FormatTime24To12(r.TimeOfVisit))
}

// FilterRecords returns the indexes of records whose summary line contains
// the query, case-insensitive. An empty query matches everything.
func FilterRecords(records []Record, query string) []int {
	query = strings.ToLower(query)
	matches := make([]int, 0, len(records))
	for i, rec := range records {
		if query == "" || strings.Contains(strings.ToLower(ListItemText(rec)), query) {
			matches = append(matches, i)
		}
	}
	return matches
}

var tmplFuncs = template.FuncMap{
	"time12": FormatTime24To12,
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}

var listTmpl = template.Must(template.New("list").Funcs(tmplFuncs).Parse(`<div id="list-view">
<a id="new-record-btn" href="/admin/files?new=1">New Consultation Record</a>
{{- if not .Items}}
<div id="empty-state">No consultation records found.</div>
{{- else}}
<div id="patient-list">
{{- range .Items}}
<a class="patient-item" href="/admin/files/records/{{.Index}}" tabindex="0">{{.Text}}</a>
{{- end}}
</div>
{{- end}}
</div>
`))

var detailTmpl = template.Must(template.New("detail").Funcs(tmplFuncs).Parse(`<div id="details-view">
<div id="details-actions">
<form method="post" action="/admin/files/back"><button type="submit" id="back-btn">Back</button></form>
<form method="post" action="/admin/files/edit"><button type="submit" id="edit-btn">Edit</button></form>
<form method="post" action="/admin/files/delete"><button type="submit" id="delete-btn">Delete</button></form>
<form method="post" action="/admin/files/preview"><button type="submit" id="view-form-btn">View Form</button></form>
<a id="export-word-btn" href="/admin/files/export">Export to Word</a>
</div>
<div id="student-info">
<p><strong>Student Id:</strong> {{.StudentID}}</p>
<p><strong>First Name:</strong> {{.FirstName}}</p>
<p><strong>Middle Initial:</strong> {{.MiddleInitial}}</p>
<p><strong>Last Name:</strong> {{.LastName}}</p>
<p><strong>Age:</strong> {{.Age}}</p>
<p><strong>Gender:</strong> {{.Gender}}</p>
<p><strong>Grade &amp; Section:</strong> {{.GradeSection}}</p>
<p><strong>Date of Birth:</strong> {{.DateOfBirth}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<p><strong>Parent/Guardian:</strong> {{.ParentGuardian}}</p>
<p><strong>Contact Number:</strong> {{.ContactNumber}}</p>
</div>
<div id="visit-info">
<p><strong>Date of Visit:</strong> {{.DateOfVisit}}</p>
<p><strong>Time of Visit:</strong> {{time12 .TimeOfVisit}}</p>
<p><strong>Reason for Visit:</strong> {{.ReasonForVisit}}</p>
<p><strong>Temperature:</strong> {{.Temperature}}</p>
<p><strong>Pulse Rate:</strong> {{.PulseRate}}</p>
<p><strong>Blood Pressure:</strong> {{.BloodPressure}}</p>
<p><strong>Respiratory Rate:</strong> {{.RespiratoryRate}}</p>
<p><strong>Assessment:</strong> {{.Assessment}}</p>
<p><strong>Diagnosis:</strong> {{.Diagnosis}}</p>
<p><strong>Actions Taken:</strong></p>
<ul>
<li>Rested in clinic: {{yesno .ActionsTaken.RestedInClinic}}</li>
<li>Given first aid: {{yesno .ActionsTaken.GivenFirstAid}}</li>
<li>Administered medication: {{yesno .ActionsTaken.AdministeredMedication}}</li>
<li>Medication details: {{.ActionsTaken.MedicationDetails}}</li>
<li>Sent home: {{yesno .ActionsTaken.SentHome}}</li>
<li>Referred: {{yesno .ActionsTaken.Referred}}</li>
<li>Referred to: {{.ActionsTaken.ReferredTo}}</li>
<li>Others: {{yesno .ActionsTaken.Others}}</li>
<li>Others details: {{.ActionsTaken.OthersDetails}}</li>
</ul>
<p><strong>Recommendations:</strong> {{.Recommendations}}</p>
<p><strong>Attending Nurse Name:</strong> {{.NurseName}}</p>
<p><strong>Signature:</strong> {{.NurseSignature}}</p>
<p><strong>Date:</strong> {{.NurseDate}}</p>
</div>
</div>
`))

// recordFormFields is the shared field markup of the create and edit forms;
// both bind the same names ParseForm reads.
const recordFormFields = `<h6>I. STUDENT INFORMATION</h6>
<input name="studentId" value="{{.StudentID}}" />
<input name="firstName" value="{{.FirstName}}" />
<input name="middleInitial" maxlength="1" value="{{.MiddleInitial}}" />
<input name="lastName" value="{{.LastName}}" />
<input type="number" name="age" value="{{.Age}}" />
<select name="gender">
<option value="">Select Gender</option>
<option value="Male"{{if eq .Gender "Male"}} selected{{end}}>Male</option>
<option value="Female"{{if eq .Gender "Female"}} selected{{end}}>Female</option>
</select>
<input name="gradeSection" value="{{.GradeSection}}" />
<input type="date" name="dateOfBirth" value="{{.DateOfBirth}}" />
<input name="address" value="{{.Address}}" />
<input name="parentGuardian" value="{{.ParentGuardian}}" />
<input name="contactNumber" value="{{.ContactNumber}}" />
<h6>II. VISIT DETAILS</h6>
<input type="date" name="dateOfVisit" value="{{.DateOfVisit}}" />
<input type="time" name="timeOfVisit" value="{{.TimeOfVisit}}" />
<textarea name="reasonForVisit">{{.ReasonForVisit}}</textarea>
<h6>III. VITAL SIGNS</h6>
<input name="temperature" value="{{.Temperature}}" />
<input name="pulseRate" value="{{.PulseRate}}" />
<input name="bloodPressure" value="{{.BloodPressure}}" />
<input name="respiratoryRate" value="{{.RespiratoryRate}}" />
<h6>IV. ASSESSMENT / OBSERVATION</h6>
<textarea name="assessment">{{.Assessment}}</textarea>
<h6>V. DIAGNOSIS / IMPRESSION</h6>
<textarea name="diagnosis">{{.Diagnosis}}</textarea>
<h6>VI. ACTION TAKEN</h6>
<label><input type="checkbox" name="restedInClinic"{{if .ActionsTaken.RestedInClinic}} checked{{end}} /> Rested in clinic</label>
<label><input type="checkbox" name="givenFirstAid"{{if .ActionsTaken.GivenFirstAid}} checked{{end}} /> Given first aid</label>
<label><input type="checkbox" name="administeredMedication"{{if .ActionsTaken.AdministeredMedication}} checked{{end}} /> Administered medication:</label>
<input name="medicationDetails" value="{{.ActionsTaken.MedicationDetails}}" placeholder="Medication details" />
<label><input type="checkbox" name="sentHome"{{if .ActionsTaken.SentHome}} checked{{end}} /> Sent home</label>
<label><input type="checkbox" name="referred"{{if .ActionsTaken.Referred}} checked{{end}} /> Referred to:</label>
<input name="referredTo" value="{{.ActionsTaken.ReferredTo}}" placeholder="Referred to" />
<label><input type="checkbox" name="others"{{if .ActionsTaken.Others}} checked{{end}} /> Others:</label>
<input name="othersDetails" value="{{.ActionsTaken.OthersDetails}}" placeholder="Other actions taken" />
<h6>VII. RECOMMENDATIONS / REMARKS</h6>
<textarea name="recommendations">{{.Recommendations}}</textarea>
<h6>VIII. ATTENDING NURSE / SCHOOL HEALTH PERSONNEL</h6>
<input name="nurseName" value="{{.NurseName}}" />
<input name="nurseSignature" value="{{.NurseSignature}}" />
<input type="date" name="nurseDate" value="{{.NurseDate}}" />`

var editTmpl = template.Must(template.New("edit").Funcs(tmplFuncs).Parse(`<form id="edit-view" method="post" action="/admin/files/update">
` + recordFormFields + `
<button type="submit" id="update-btn">Update Consultation Record</button>
<button type="submit" id="cancel-edit-btn" formaction="/admin/files/cancel-edit" formnovalidate>Cancel</button>
</form>
`))

var createTmpl = template.Must(template.New("create").Funcs(tmplFuncs).Parse(`<form id="create-view" method="post" action="/admin/files/create">
` + recordFormFields + `
<button type="submit" id="save-btn">Save Consultation Record</button>
<a id="cancel-create-btn" href="/admin/files">Cancel</a>
</form>
`))

var previewTmpl = template.Must(template.New("preview").Funcs(tmplFuncs).Parse(`<div id="view-form-content">
<form method="post" action="/admin/files/preview/close"><button type="submit" id="close-view-btn">Close</button></form>
<h6>I. STUDENT INFORMATION</h6>
<p>Student_Id: {{.StudentID}}</p>
<p>First Name: {{.FirstName}}</p>
<p>M.I.: {{.MiddleInitial}}</p>
<p>Last Name: {{.LastName}}</p>
<p>Age: {{.Age}}</p>
<p>Gender: {{.Gender}}</p>
<p>Grade &amp; Section: {{.GradeSection}}</p>
<p>Date of Birth: {{.DateOfBirth}}</p>
<p>Address: {{.Address}}</p>
<p>Parent/Guardian: {{.ParentGuardian}}</p>
<p>Contact Number: {{.ContactNumber}}</p>
<h6>II. VISIT DETAILS</h6>
<p>Date of Visit: {{.DateOfVisit}}</p>
<p>Time: {{.TimeOfVisit}}</p>
<p>Reason for Visit / Complaint: {{.ReasonForVisit}}</p>
<h6>III. VITAL SIGNS</h6>
<p>Temperature (&deg;C): {{.Temperature}}</p>
<p>Pulse Rate (bpm): {{.PulseRate}}</p>
<p>Blood Pressure (mmHg): {{.BloodPressure}}</p>
<p>Respiratory Rate (bpm): {{.RespiratoryRate}}</p>
<h6>IV. ASSESSMENT / OBSERVATION</h6>
<p>{{.Assessment}}</p>
<h6>V. DIAGNOSIS / IMPRESSION</h6>
<p>{{.Diagnosis}}</p>
<h6>VI. ACTION TAKEN</h6>
<ul>
<li>Rested in clinic: {{yesno .ActionsTaken.RestedInClinic}}</li>
<li>Given first aid: {{yesno .ActionsTaken.GivenFirstAid}}</li>
<li>Administered medication: {{yesno .ActionsTaken.AdministeredMedication}}</li>
<li>Medication details: {{.ActionsTaken.MedicationDetails}}</li>
<li>Sent home: {{yesno .ActionsTaken.SentHome}}</li>
<li>Referred: {{yesno .ActionsTaken.Referred}}</li>
<li>Referred to: {{.ActionsTaken.ReferredTo}}</li>
<li>Others: {{yesno .ActionsTaken.Others}}</li>
<li>Others details: {{.ActionsTaken.OthersDetails}}</li>
</ul>
<h6>VII. RECOMMENDATIONS / REMARKS</h6>
<p>{{.Recommendations}}</p>
<h6>VIII. ATTENDING NURSE / SCHOOL HEALTH PERSONNEL</h6>
<p>Name: {{.NurseName}}</p>
<p>Signature: {{.NurseSignature}}</p>
<p>Date: {{.NurseDate}}</p>
</div>
`))

type listItem struct {
	Index int
	Text  string
}

// RenderList renders the list view for the records matching query.
func RenderList(records []Record, query string) (template.HTML, error) {
	items := make([]listItem, 0, len(records))
	for _, idx := range FilterRecords(records, query) {
		items = append(items, listItem{Index: idx, Text: ListItemText(records[idx])})
	}

	var buf bytes.Buffer
	if err := listTmpl.Execute(&buf, struct{ Items []listItem }{items}); err != nil {
		return "", fmt.Errorf("failed to render list view: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderDetail renders the read-only detail view.
func RenderDetail(rec Record) (template.HTML, error) {
	var buf bytes.Buffer
	if err := detailTmpl.Execute(&buf, rec); err != nil {
		return "", fmt.Errorf("failed to render detail view: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderEdit renders the edit form from the draft's current values.
func RenderEdit(draft Record) (template.HTML, error) {
	var buf bytes.Buffer
	if err := editTmpl.Execute(&buf, draft); err != nil {
		return "", fmt.Errorf("failed to render edit view: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderCreate renders the blank create form.
func RenderCreate() (template.HTML, error) {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, Record{}); err != nil {
		return "", fmt.Errorf("failed to render create form: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderPreview renders the print-style overlay.
func RenderPreview(rec Record) (template.HTML, error) {
	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, rec); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return template.HTML(buf.String()), nil
}
