package clinicapi

// Appointment and consultation statuses used by the backend.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// ActionsTaken is the nested action block of a consultation record.
type ActionsTaken struct {
	RestedInClinic         bool   `json:"restedInClinic"`
	GivenFirstAid          bool   `json:"givenFirstAid"`
	AdministeredMedication bool   `json:"administeredMedication"`
	MedicationDetails      string `json:"medicationDetails"`
	SentHome               bool   `json:"sentHome"`
	Referred               bool   `json:"referred"`
	ReferredTo             string `json:"referredTo"`
	Others                 bool   `json:"others"`
	OthersDetails          string `json:"othersDetails"`
}

// Consultation is a consultation record as the backend stores and returns it.
// The visit date and time travel as one combined dateTime string joined by "T".
type Consultation struct {
	ID              string       `json:"id,omitempty"`
	StudentID       string       `json:"studentId"`
	FirstName       string       `json:"firstName"`
	MiddleInitial   string       `json:"middleInitial"`
	LastName        string       `json:"lastName"`
	Age             int          `json:"age"`
	Gender          string       `json:"gender"`
	GradeSection    string       `json:"gradeSection"`
	DateOfBirth     string       `json:"dateOfBirth"`
	Address         string       `json:"address"`
	ParentGuardian  string       `json:"parentGuardian"`
	ContactNumber   string       `json:"contactNumber"`
	Concern         string       `json:"concern"`
	Nurse           string       `json:"nurse"`
	DateTime        string       `json:"dateTime"`
	Status          string       `json:"status,omitempty"`
	Temperature     string       `json:"temperature"`
	PulseRate       string       `json:"pulseRate"`
	BloodPressure   string       `json:"bloodPressure"`
	RespiratoryRate string       `json:"respiratoryRate"`
	Assessment      string       `json:"assessment"`
	Diagnosis       string       `json:"diagnosis"`
	ActionsTaken    ActionsTaken `json:"actionsTaken"`
	Recommendations string       `json:"recommendations"`
	NurseName       string       `json:"nurseName"`
	NurseSignature  string       `json:"nurseSignature"`
	NurseDate       string       `json:"nurseDate"`
}

// Appointment is a booking request. DateTime is the composite date+slot key,
// e.g. "2025-03-10_09:00".
type Appointment struct {
	ID        string `json:"id,omitempty"`
	StudentID string `json:"studentId"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Concern   string `json:"concern"`
	Nurse     string `json:"nurse"`
	DateTime  string `json:"dateTime"`
	Status    string `json:"status"`
}

// AcceptedRecord is an appointment that was accepted and relocated to the
// records collection.
type AcceptedRecord struct {
	StudentID string `json:"studentId"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Concern   string `json:"concern"`
	Nurse     string `json:"nurse"`
	DateTime  string `json:"dateTime"`
	Email     string `json:"email"`
}

// AdminUser is a staff account in the admin directory.
type AdminUser struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// RegisterRequest creates a new staff account pending approval.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest authenticates against the backend.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries the backend's login answer.
type LoginResult struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}
