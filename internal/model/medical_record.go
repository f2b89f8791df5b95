package model

// Prescription is embedded in a medical record, never addressed on its own.
// All fields are free text; the entry order is user-entered and preserved.
type Prescription struct {
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
}

// MedicalRecord is produced once at consultation completion and linked 1:1
// to the appointment that produced it.
type MedicalRecord struct {
	ID            int64          `json:"id"`
	AppointmentID int64          `json:"appointmentId"`
	PatientID     int64          `json:"patientId"`
	DoctorID      int64          `json:"doctorId"`
	VisitDate     string         `json:"visitDate,omitempty"`
	Diagnosis     string         `json:"diagnosis"`
	Notes         string         `json:"notes"`
	Prescriptions []Prescription `json:"prescriptions"`
}

// PharmacySlip is the pharmacy surface's read-only view of a completed
// consultation, looked up by token for dispensing.
type PharmacySlip struct {
	Diagnosis     string         `json:"diagnosis"`
	Notes         string         `json:"notes"`
	Prescriptions []Prescription `json:"prescriptions"`
}
