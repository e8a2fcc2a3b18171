package consultation

import (
	"strings"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
)

// Record is a consultation record as the UI works with it: the backend wire
// shape plus display fields derived from the combined dateTime value. The
// cache is a display buffer only; the backend copy is the source of truth.
type Record struct {
	clinicapi.Consultation

	DateOfVisit    string
	TimeOfVisit    string
	ReasonForVisit string
}

// FromWire derives the display record. The combined dateTime splits on "T"
// only when present; a record without it gets empty date and time parts.
func FromWire(c clinicapi.Consultation) Record {
	rec := Record{Consultation: c, ReasonForVisit: c.Concern}
	if c.DateTime != "" {
		parts := strings.SplitN(c.DateTime, "T", 2)
		rec.DateOfVisit = parts[0]
		if len(parts) > 1 {
			rec.TimeOfVisit = parts[1]
		}
	}
	return rec
}

// ToWire serializes the record into the backend's update shape: the reason
// maps back to concern, the nurse label is name and date joined, and the
// visit date and time recombine into one dateTime token.
func (r Record) ToWire() clinicapi.Consultation {
	c := r.Consultation
	c.Concern = r.ReasonForVisit
	c.Nurse = r.NurseName + " " + r.NurseDate
	if r.DateOfVisit != "" && r.TimeOfVisit != "" {
		c.DateTime = r.DateOfVisit + "T" + r.TimeOfVisit
	} else {
		c.DateTime = ""
	}
	if c.Status == "" {
		c.Status = clinicapi.StatusPending
	}
	return c
}

// Clone returns an independent copy for the edit draft. All fields are value
// types, so a shallow copy is a full copy.
func (r Record) Clone() Record {
	return r
}

// FormInput carries the consultation form fields as submitted.
type FormInput struct {
	StudentID       string
	FirstName       string
	MiddleInitial   string
	LastName        string
	Age             int
	Gender          string
	GradeSection    string
	DateOfBirth     string
	Address         string
	ParentGuardian  string
	ContactNumber   string
	DateOfVisit     string
	TimeOfVisit     string
	ReasonForVisit  string
	Temperature     string
	PulseRate       string
	BloodPressure   string
	RespiratoryRate string
	Assessment      string
	Diagnosis       string
	ActionsTaken    clinicapi.ActionsTaken
	Recommendations string
	NurseName       string
	NurseSignature  string
	NurseDate       string
}

// Apply writes the form values over the record.
func (in FormInput) Apply(r *Record) {
	r.StudentID = in.StudentID
	r.FirstName = in.FirstName
	r.MiddleInitial = in.MiddleInitial
	r.LastName = in.LastName
	r.Age = in.Age
	r.Gender = in.Gender
	r.GradeSection = in.GradeSection
	r.DateOfBirth = in.DateOfBirth
	r.Address = in.Address
	r.ParentGuardian = in.ParentGuardian
	r.ContactNumber = in.ContactNumber
	r.DateOfVisit = in.DateOfVisit
	r.TimeOfVisit = in.TimeOfVisit
	r.ReasonForVisit = in.ReasonForVisit
	r.Temperature = in.Temperature
	r.PulseRate = in.PulseRate
	r.BloodPressure = in.BloodPressure
	r.RespiratoryRate = in.RespiratoryRate
	r.Assessment = in.Assessment
	r.Diagnosis = in.Diagnosis
	r.ActionsTaken = in.ActionsTaken
	r.Recommendations = in.Recommendations
	r.NurseName = in.NurseName
	r.NurseSignature = in.NurseSignature
	r.NurseDate = in.NurseDate
}

// NewRecord builds a fresh record from form input, ready for creation.
func NewRecord(in FormInput) Record {
	var rec Record
	in.Apply(&rec)
	rec.Status = clinicapi.StatusPending
	return rec
}
