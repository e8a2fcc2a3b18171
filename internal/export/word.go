package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
)

// Word exports use the MS Office HTML dialect: an HTML body wrapped in the
// office XML namespaces, served as application/msword with a UTF-8 BOM so
// Word picks the right encoding.
const bom = "\ufeff"

var docTmpl = template.Must(template.New("worddoc").Funcs(template.FuncMap{
	"time12": consultation.FormatTime24To12,
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}).Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head><meta charset="utf-8"><title>Consultation Record</title></head>
<body>
<h2 style="text-align:center">STUDENT HEALTH CONSULTATION RECORD</h2>
<h4>I. STUDENT INFORMATION</h4>
<p>Student ID: {{.StudentID}}</p>
<p>Name: {{.FirstName}} {{.MiddleInitial}} {{.LastName}}</p>
<p>Age: {{.Age}} &nbsp; Gender: {{.Gender}} &nbsp; Grade &amp; Section: {{.GradeSection}}</p>
<p>Date of Birth: {{.DateOfBirth}}</p>
<p>Address: {{.Address}}</p>
<p>Parent/Guardian: {{.ParentGuardian}} &nbsp; Contact Number: {{.ContactNumber}}</p>
<h4>II. VISIT DETAILS</h4>
<p>Date of Visit: {{.DateOfVisit}} &nbsp; Time: {{time12 .TimeOfVisit}}</p>
<p>Reason for Visit / Complaint: {{.ReasonForVisit}}</p>
<h4>III. VITAL SIGNS</h4>
<p>Temperature (&deg;C): {{.Temperature}} &nbsp; Pulse Rate (bpm): {{.PulseRate}}</p>
<p>Blood Pressure (mmHg): {{.BloodPressure}} &nbsp; Respiratory Rate (bpm): {{.RespiratoryRate}}</p>
<h4>IV. ASSESSMENT / OBSERVATION</h4>
<p>{{.Assessment}}</p>
<h4>V. DIAGNOSIS / IMPRESSION</h4>
<p>{{.Diagnosis}}</p>
<h4>VI. ACTION TAKEN</h4>
<p>Rested in clinic: {{yesno .ActionsTaken.RestedInClinic}}</p>
<p>Given first aid: {{yesno .ActionsTaken.GivenFirstAid}}</p>
<p>Administered medication: {{yesno .ActionsTaken.AdministeredMedication}} {{.ActionsTaken.MedicationDetails}}</p>
<p>Sent home: {{yesno .ActionsTaken.SentHome}}</p>
<p>Referred: {{yesno .ActionsTaken.Referred}} {{.ActionsTaken.ReferredTo}}</p>
<p>Others: {{yesno .ActionsTaken.Others}} {{.ActionsTaken.OthersDetails}}</p>
<h4>VII. RECOMMENDATIONS / REMARKS</h4>
<p>{{.Recommendations}}</p>
<h4>VIII. ATTENDING NURSE / SCHOOL HEALTH PERSONNEL</h4>
<p>Name: {{.NurseName}}</p>
<p>Signature: {{.NurseSignature}}</p>
<p>Date: {{.NurseDate}}</p>
</body>
</html>
`))

// WordDocument renders the record as a Word-openable HTML document,
// BOM included.
func WordDocument(rec consultation.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(bom)
	if err := docTmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("failed to render consultation document: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name, e.g. "Consultation_Record_Ana_Reyes.doc".
// Spaces in names collapse to underscores so the header stays well-formed.
func Filename(rec consultation.Record) string {
	first := strings.ReplaceAll(strings.TrimSpace(rec.FirstName), " ", "_")
	last := strings.ReplaceAll(strings.TrimSpace(rec.LastName), " ", "_")
	return fmt.Sprintf("Consultation_Record_%s_%s.doc", first, last)
}
