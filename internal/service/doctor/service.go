package doctor

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/metrics"
)

// Workspace is everything the consultation view needs for a selected
// appointment: the appointment itself, the enabled actions, the patient's
// full record history, and for completed consultations the stored record
// rendered read-only.
type Workspace struct {
	Appointment model.Appointment     `json:"appointment"`
	Actions     model.AllowedActions  `json:"actions"`
	History     []model.MedicalRecord `json:"history"`
	Record      *model.MedicalRecord  `json:"record,omitempty"`
	ReadOnly    bool                  `json:"readOnly"`
}

// CompleteRequest carries the consultation outcome posted by the doctor.
type CompleteRequest struct {
	Diagnosis     string               `json:"diagnosis" binding:"required"`
	Notes         string               `json:"notes"`
	Prescriptions []model.Prescription `json:"prescriptions"`
}

// Service owns the doctor surface: the cached queue with its pure status
// filter, consultation selection, and the VITALS_DONE -> IN_PROGRESS ->
// COMPLETED transitions.
type Service struct {
	backend backend.API
	queues  *gocache.Cache
	metrics *metrics.Metrics
}

func NewService(api backend.API, queueTTL time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		backend: api,
		queues:  gocache.New(queueTTL, 2*queueTTL),
		metrics: m,
	}
}

func queueKey(doctorID int64) string {
	return fmt.Sprintf("queue:%d", doctorID)
}

// Queue returns the doctor's appointments, filtered by status in-process.
// The full set is fetched once and cached; switching status tabs filters
// the cached set and never issues a backend call. refresh forces a
// re-fetch.
func (s *Service) Queue(ctx context.Context, token string, doctorID int64, status model.AppointmentStatus, refresh bool) ([]model.Appointment, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, errors.BadRequest(fmt.Sprintf("unknown status filter %q", status), nil)
	}

	appointments, err := s.fullQueue(ctx, token, doctorID, refresh)
	if err != nil {
		return nil, err
	}
	return model.FilterByStatus(appointments, status), nil
}

func (s *Service) fullQueue(ctx context.Context, token string, doctorID int64, refresh bool) ([]model.Appointment, error) {
	key := queueKey(doctorID)
	if !refresh {
		if cached, ok := s.queues.Get(key); ok {
			s.metrics.QueueCacheHits.Inc()
			return cached.([]model.Appointment), nil
		}
	}

	s.metrics.QueueCacheMisses.Inc()
	appointments, err := s.backend.DoctorAppointments(ctx, token, doctorID)
	if err != nil {
		return nil, err
	}
	s.queues.SetDefault(key, appointments)
	return appointments, nil
}

func (s *Service) findAppointment(ctx context.Context, token string, doctorID, appointmentID int64) (*model.Appointment, error) {
	appointments, err := s.fullQueue(ctx, token, doctorID, false)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == appointmentID {
			return &appointments[i], nil
		}
	}

	// Stale cache; re-fetch once before declaring a miss.
	appointments, err = s.fullQueue(ctx, token, doctorID, true)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == appointmentID {
			return &appointments[i], nil
		}
	}
	return nil, errors.NotFound("appointment", nil)
}

// Select builds the consultation workspace. Patient history is always
// fetched, whatever the appointment's own status. A COMPLETED appointment
// re-fetches its record and renders read-only; a missing record for a
// COMPLETED appointment yields empty read-only fields, not an error.
func (s *Service) Select(ctx context.Context, token string, doctorID, appointmentID int64) (*Workspace, error) {
	appointment, err := s.findAppointment(ctx, token, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}

	history, err := s.backend.PatientHistory(ctx, token, appointment.PatientID)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Appointment: *appointment,
		Actions:     model.ActionsFor(appointment.Status),
		History:     history,
	}

	if appointment.Status == model.AppointmentStatusCompleted {
		ws.ReadOnly = true
		record, err := s.backend.RecordByAppointment(ctx, token, appointment.ID)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		ws.Record = record
	}

	return ws, nil
}

// Start drives VITALS_DONE -> IN_PROGRESS. On success the cached copy is
// patched locally so the queue reflects the new status without a re-fetch.
func (s *Service) Start(ctx context.Context, token string, doctorID, appointmentID int64) (*model.Appointment, error) {
	appointment, err := s.findAppointment(ctx, token, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !model.ActionsFor(appointment.Status).Start {
		return nil, errors.BadRequest(
			fmt.Sprintf("consultation cannot start from status %s", appointment.Status), nil)
	}

	updated, err := s.backend.StartConsultation(ctx, token, appointment.ID)
	if err != nil {
		return nil, err
	}

	s.patchCachedStatus(doctorID, appointmentID, model.AppointmentStatusInProgress)
	s.metrics.TransitionsApplied.
		WithLabelValues(string(model.AppointmentStatusVitalsDone), string(model.AppointmentStatusInProgress)).Inc()
	return updated, nil
}

// Complete posts the medical record, then completion for the same
// appointment id. The queue cache is dropped so the next read re-fetches.
func (s *Service) Complete(ctx context.Context, token string, doctorID, appointmentID int64, req *CompleteRequest) (*model.MedicalRecord, error) {
	appointment, err := s.findAppointment(ctx, token, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !model.ActionsFor(appointment.Status).Complete {
		return nil, errors.BadRequest(
			fmt.Sprintf("consultation cannot complete from status %s", appointment.Status), nil)
	}

	record := &model.MedicalRecord{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      doctorID,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		Prescriptions: pruneEmpty(req.Prescriptions),
	}

	saved, err := s.backend.SaveMedicalRecord(ctx, token, record)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.CompleteAppointment(ctx, token, appointment.ID); err != nil {
		return nil, err
	}

	s.queues.Delete(queueKey(doctorID))
	s.metrics.TransitionsApplied.
		WithLabelValues(string(model.AppointmentStatusInProgress), string(model.AppointmentStatusCompleted)).Inc()
	return saved, nil
}

func (s *Service) patchCachedStatus(doctorID, appointmentID int64, status model.AppointmentStatus) {
	key := queueKey(doctorID)
	cached, ok := s.queues.Get(key)
	if !ok {
		return
	}
	appointments := cached.([]model.Appointment)
	patched := make([]model.Appointment, len(appointments))
	copy(patched, appointments)
	for i := range patched {
		if patched[i].ID == appointmentID {
			patched[i].Status = status
		}
	}
	s.queues.SetDefault(key, patched)
}

// pruneEmpty drops the all-blank rows the entry form seeds, preserving the
// entered order of the rest.
func pruneEmpty(prescriptions []model.Prescription) []model.Prescription {
	kept := make([]model.Prescription, 0, len(prescriptions))
	for _, p := range prescriptions {
		if p.MedicineName == "" && p.Dosage == "" && p.Frequency == "" && p.Duration == "" {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
