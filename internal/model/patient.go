package model

// Patient is identified by an externally issued national ID plus the
// backend's internal id. Immutable once created from this gateway's view.
type Patient struct {
	ID            int64  `json:"id"`
	NationalID    string `json:"nationalId"`
	Name          string `json:"name"`
	DateOfBirth   string `json:"dateOfBirth"`
	ContactNumber string `json:"contactNumber"`
}

type RegisterPatientRequest struct {
	NationalID    string `json:"nationalId" binding:"required,notblank"`
	Name          string `json:"name" binding:"required,notblank"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	ContactNumber string `json:"contactNumber" binding:"required,notblank"`
}

// PatientLookup is the search-or-register outcome: a miss is an expected,
// displayable result that routes the receptionist to registration.
type PatientLookup struct {
	Found                bool     `json:"found"`
	Patient              *Patient `json:"patient,omitempty"`
	RegistrationRequired bool     `json:"registrationRequired"`
}
