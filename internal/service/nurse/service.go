package nurse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/errors"
)

// VitalsRequest carries the six vitals fields as entered at the nurse
// station. Numeric fields arrive as text and must parse; pulse stays free
// text.
type VitalsRequest struct {
	TokenNumber int    `json:"tokenNumber" binding:"required"`
	DoctorID    int64  `json:"doctorId" binding:"required"`
	Weight      string `json:"weight" binding:"required"`
	Height      string `json:"height" binding:"required"`
	SystolicBP  string `json:"systolicBP" binding:"required"`
	DiastolicBP string `json:"diastolicBP" binding:"required"`
	Temperature string `json:"temperature" binding:"required"`
	Pulse       string `json:"pulse" binding:"required,notblank"`
}

// Service locates an appointment by (token, doctor) and attaches vitals,
// driving BOOKED -> VITALS_DONE.
type Service struct {
	backend backend.API
}

func NewService(api backend.API) *Service {
	return &Service{backend: api}
}

// LocateAppointment resolves (token number, doctor) to at most one
// appointment. Not-found propagates as a not-found AppError; the handler
// renders it as a displayable miss.
func (s *Service) LocateAppointment(ctx context.Context, token string, tokenNumber int, doctorID int64) (*model.Appointment, error) {
	return s.backend.SearchAppointment(ctx, token, tokenNumber, doctorID)
}

// SubmitVitals re-locates the appointment, checks the lifecycle allows
// vitals for its current status, and posts the parsed measurements.
func (s *Service) SubmitVitals(ctx context.Context, token string, req *VitalsRequest) (*model.Appointment, error) {
	vitals, err := parseVitals(req)
	if err != nil {
		return nil, err
	}

	appointment, err := s.backend.SearchAppointment(ctx, token, req.TokenNumber, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if !model.ActionsFor(appointment.Status).RecordVitals {
		return nil, errors.BadRequest(
			fmt.Sprintf("vitals cannot be recorded for an appointment in status %s", appointment.Status), nil)
	}

	return s.backend.SubmitVitals(ctx, token, appointment.ID, vitals)
}

// parseVitals enforces the numeric-parseable contract on the five numeric
// fields. The first bad field is reported by name.
func parseVitals(req *VitalsRequest) (*model.VitalSigns, error) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(req.Weight), 64)
	if err != nil {
		return nil, errors.BadRequest("weight must be numeric", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(req.Height))
	if err != nil {
		return nil, errors.BadRequest("height must be numeric", err)
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(req.SystolicBP))
	if err != nil {
		return nil, errors.BadRequest("systolicBP must be numeric", err)
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(req.DiastolicBP))
	if err != nil {
		return nil, errors.BadRequest("diastolicBP must be numeric", err)
	}
	temperature, err := strconv.ParseFloat(strings.TrimSpace(req.Temperature), 64)
	if err != nil {
		return nil, errors.BadRequest("temperature must be numeric", err)
	}

	return &model.VitalSigns{
		Weight:      weight,
		Height:      height,
		SystolicBP:  systolic,
		DiastolicBP: diastolic,
		Temperature: temperature,
		Pulse:       strings.TrimSpace(req.Pulse),
	}, nil
}
