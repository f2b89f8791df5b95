// Package backendtest provides a configurable in-memory stand-in for the
// hospital backend client, for service-level tests.
package backendtest

import (
	"context"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/errors"
)

// Fake implements backend.API through overridable function fields. Unset
// fields return a not-found error, which matches what the real client does
// for a missing resource.
type Fake struct {
	SigninFn              func(username, password string) (*backend.SigninResult, error)
	SearchPatientFn       func(nationalID string) (*model.Patient, error)
	RegisterPatientFn     func(req *model.RegisterPatientRequest) (*model.Patient, error)
	ListSpecialtiesFn     func() ([]string, error)
	ListDoctorsFn         func(specialty string) ([]model.Doctor, error)
	BookAppointmentFn     func(patientID, doctorID int64) (*model.Appointment, error)
	SearchAppointmentFn   func(tokenNumber int, doctorID int64) (*model.Appointment, error)
	SubmitVitalsFn        func(appointmentID int64, vitals *model.VitalSigns) (*model.Appointment, error)
	DoctorAppointmentsFn  func(doctorID int64) ([]model.Appointment, error)
	StartConsultationFn   func(appointmentID int64) (*model.Appointment, error)
	CompleteAppointmentFn func(appointmentID int64) (*model.Appointment, error)
	SaveMedicalRecordFn   func(record *model.MedicalRecord) (*model.MedicalRecord, error)
	PatientHistoryFn      func(patientID int64) ([]model.MedicalRecord, error)
	RecordByAppointmentFn func(appointmentID int64) (*model.MedicalRecord, error)
	PharmacyFindFn        func(tokenNumber int) (*model.PharmacySlip, error)

	// Calls counts invocations by operation name.
	Calls map[string]int
}

var _ backend.API = (*Fake)(nil)

func New() *Fake {
	return &Fake{Calls: make(map[string]int)}
}

func (f *Fake) count(op string) {
	if f.Calls != nil {
		f.Calls[op]++
	}
}

func (f *Fake) Signin(_ context.Context, username, password string) (*backend.SigninResult, error) {
	f.count("signin")
	if f.SigninFn == nil {
		return nil, errors.NotFound("user", nil)
	}
	return f.SigninFn(username, password)
}

func (f *Fake) SearchPatient(_ context.Context, _ string, nationalID string) (*model.Patient, error) {
	f.count("patient_search")
	if f.SearchPatientFn == nil {
		return nil, errors.NotFound("patient", nil)
	}
	return f.SearchPatientFn(nationalID)
}

func (f *Fake) RegisterPatient(_ context.Context, _ string, req *model.RegisterPatientRequest) (*model.Patient, error) {
	f.count("patient_register")
	if f.RegisterPatientFn == nil {
		return nil, errors.NotFound("patient", nil)
	}
	return f.RegisterPatientFn(req)
}

func (f *Fake) ListSpecialties(_ context.Context, _ string) ([]string, error) {
	f.count("specialties_list")
	if f.ListSpecialtiesFn == nil {
		return nil, errors.NotFound("specialties", nil)
	}
	return f.ListSpecialtiesFn()
}

func (f *Fake) ListDoctors(_ context.Context, _ string, specialty string) ([]model.Doctor, error) {
	f.count("doctors_list")
	if f.ListDoctorsFn == nil {
		return nil, errors.NotFound("doctors", nil)
	}
	return f.ListDoctorsFn(specialty)
}

func (f *Fake) BookAppointment(_ context.Context, _ string, patientID, doctorID int64) (*model.Appointment, error) {
	f.count("appointment_book")
	if f.BookAppointmentFn == nil {
		return nil, errors.NotFound("appointment", nil)
	}
	return f.BookAppointmentFn(patientID, doctorID)
}

func (f *Fake) SearchAppointment(_ context.Context, _ string, tokenNumber int, doctorID int64) (*model.Appointment, error) {
	f.count("appointment_search")
	if f.SearchAppointmentFn == nil {
		return nil, errors.NotFound("appointment", nil)
	}
	return f.SearchAppointmentFn(tokenNumber, doctorID)
}

func (f *Fake) SubmitVitals(_ context.Context, _ string, appointmentID int64, vitals *model.VitalSigns) (*model.Appointment, error) {
	f.count("vitals_submit")
	if f.SubmitVitalsFn == nil {
		return nil, errors.NotFound("appointment", nil)
	}
	return f.SubmitVitalsFn(appointmentID, vitals)
}

func (f *Fake) DoctorAppointments(_ context.Context, _ string, doctorID int64) ([]model.Appointment, error) {
	f.count("doctor_appointments")
	if f.DoctorAppointmentsFn == nil {
		return nil, errors.NotFound("appointments", nil)
	}
	return f.DoctorAppointmentsFn(doctorID)
}

func (f *Fake) StartConsultation(_ context.Context, _ string, appointmentID int64) (*model.Appointment, error) {
	f.count("appointment_start")
	if f.StartConsultationFn == nil {
		return nil, errors.NotFound("appointment", nil)
	}
	return f.StartConsultationFn(appointmentID)
}

func (f *Fake) CompleteAppointment(_ context.Context, _ string, appointmentID int64) (*model.Appointment, error) {
	f.count("appointment_complete")
	if f.CompleteAppointmentFn == nil {
		return nil, errors.NotFound("appointment", nil)
	}
	return f.CompleteAppointmentFn(appointmentID)
}

func (f *Fake) SaveMedicalRecord(_ context.Context, _ string, record *model.MedicalRecord) (*model.MedicalRecord, error) {
	f.count("record_save")
	if f.SaveMedicalRecordFn == nil {
		return nil, errors.NotFound("medical record", nil)
	}
	return f.SaveMedicalRecordFn(record)
}

func (f *Fake) PatientHistory(_ context.Context, _ string, patientID int64) ([]model.MedicalRecord, error) {
	f.count("patient_history")
	if f.PatientHistoryFn == nil {
		return nil, errors.NotFound("medical records", nil)
	}
	return f.PatientHistoryFn(patientID)
}

func (f *Fake) RecordByAppointment(_ context.Context, _ string, appointmentID int64) (*model.MedicalRecord, error) {
	f.count("record_by_appointment")
	if f.RecordByAppointmentFn == nil {
		return nil, errors.NotFound("medical record", nil)
	}
	return f.RecordByAppointmentFn(appointmentID)
}

func (f *Fake) PharmacyFind(_ context.Context, _ string, tokenNumber int) (*model.PharmacySlip, error) {
	f.count("pharmacy_find")
	if f.PharmacyFindFn == nil {
		return nil, errors.NotFound("prescription", nil)
	}
	return f.PharmacyFindFn(tokenNumber)
}
