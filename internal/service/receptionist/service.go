package receptionist

import (
	"context"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/errors"
)

// Service drives the receptionist desk: locate or register a patient, then
// book an appointment for a chosen doctor.
type Service struct {
	backend backend.API
}

func NewService(api backend.API) *Service {
	return &Service{backend: api}
}

// LocatePatient implements search-or-register. A backend miss is the
// expected registration path, not an error, and is returned as a distinct
// outcome.
func (s *Service) LocatePatient(ctx context.Context, token, nationalID string) (*model.PatientLookup, error) {
	patient, err := s.backend.SearchPatient(ctx, token, nationalID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &model.PatientLookup{Found: false, RegistrationRequired: true}, nil
		}
		return nil, err
	}
	return &model.PatientLookup{Found: true, Patient: patient}, nil
}

// RegisterPatient creates the patient under the national ID the search
// missed on, and proceeds with the fresh identity.
func (s *Service) RegisterPatient(ctx context.Context, token string, req *model.RegisterPatientRequest) (*model.Patient, error) {
	return s.backend.RegisterPatient(ctx, token, req)
}

// BookAppointment books an identified patient with a selected doctor. The
// backend assigns the token number and the BOOKED status.
func (s *Service) BookAppointment(ctx context.Context, token string, patientID, doctorID int64) (*model.Appointment, error) {
	appointment, err := s.backend.BookAppointment(ctx, token, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}
