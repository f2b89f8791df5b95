package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careflow/workstation-api/internal/backend/backendtest"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("doctor_test")

func seedQueue() []model.Appointment {
	return []model.Appointment{
		{ID: 1, PatientID: 100, DoctorID: 7, TokenNumber: 1, Status: model.AppointmentStatusBooked},
		{ID: 2, PatientID: 101, DoctorID: 7, TokenNumber: 2, Status: model.AppointmentStatusVitalsDone},
		{ID: 3, PatientID: 102, DoctorID: 7, TokenNumber: 3, Status: model.AppointmentStatusInProgress},
		{ID: 4, PatientID: 103, DoctorID: 7, TokenNumber: 4, Status: model.AppointmentStatusCompleted},
	}
}

func queueService(fake *backendtest.Fake) *Service {
	return NewService(fake, time.Minute, testMetrics)
}

// Switching status tabs filters the cached set in-process; only the first
// read and an explicit refresh go to the backend.
func TestQueueTabsFilterWithoutRefetch(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(doctorID int64) ([]model.Appointment, error) {
		assert.Equal(t, int64(7), doctorID)
		return seedQueue(), nil
	}
	svc := queueService(fake)
	ctx := context.Background()

	all, err := svc.Queue(ctx, "session-token", 7, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, 1, fake.Calls["doctor_appointments"])

	ready, err := svc.Queue(ctx, "session-token", 7, model.AppointmentStatusVitalsDone, false)
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, int64(2), ready[0].ID)

	done, err := svc.Queue(ctx, "session-token", 7, model.AppointmentStatusCompleted, false)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, int64(4), done[0].ID)

	assert.Equal(t, 1, fake.Calls["doctor_appointments"], "tab switches must not re-fetch")

	_, err = svc.Queue(ctx, "session-token", 7, "", true)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls["doctor_appointments"])
}

func TestQueueRejectsUnknownStatusFilter(t *testing.T) {
	svc := queueService(backendtest.New())
	_, err := svc.Queue(context.Background(), "session-token", 7, "CANCELLED", false)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestStartPatchesCachedStatus(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	fake.StartConsultationFn = func(appointmentID int64) (*model.Appointment, error) {
		assert.Equal(t, int64(2), appointmentID)
		return &model.Appointment{ID: 2, PatientID: 101, DoctorID: 7, TokenNumber: 2, Status: model.AppointmentStatusInProgress}, nil
	}
	svc := queueService(fake)
	ctx := context.Background()

	updated, err := svc.Start(ctx, "session-token", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusInProgress, updated.Status)

	// The cached queue reflects the transition without another fetch.
	inProgress, err := svc.Queue(ctx, "session-token", 7, model.AppointmentStatusInProgress, false)
	require.NoError(t, err)
	assert.Len(t, inProgress, 2)
	assert.Equal(t, 1, fake.Calls["doctor_appointments"])
}

func TestStartRejectedOutsideVitalsDone(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	svc := queueService(fake)

	// ID 1 is still BOOKED; vitals must come first.
	_, err := svc.Start(context.Background(), "session-token", 7, 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
	assert.Zero(t, fake.Calls["appointment_start"])
}

func TestCompleteSavesRecordThenCompletes(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }

	var order []string
	fake.SaveMedicalRecordFn = func(record *model.MedicalRecord) (*model.MedicalRecord, error) {
		order = append(order, "record")
		assert.Equal(t, int64(3), record.AppointmentID)
		assert.Equal(t, int64(102), record.PatientID)
		assert.Equal(t, int64(7), record.DoctorID)
		assert.Equal(t, "Influenza", record.Diagnosis)
		saved := *record
		saved.ID = 900
		return &saved, nil
	}
	fake.CompleteAppointmentFn = func(appointmentID int64) (*model.Appointment, error) {
		order = append(order, "complete")
		assert.Equal(t, int64(3), appointmentID)
		return &model.Appointment{ID: 3, Status: model.AppointmentStatusCompleted}, nil
	}

	svc := queueService(fake)
	ctx := context.Background()

	saved, err := svc.Complete(ctx, "session-token", 7, 3, &CompleteRequest{
		Diagnosis: "Influenza",
		Notes:     "rest and fluids",
		Prescriptions: []model.Prescription{
			{MedicineName: "Oseltamivir", Dosage: "75mg", Frequency: "2x daily", Duration: "5 days"},
			{}, // blank row seeded by the entry form
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(900), saved.ID)
	assert.Equal(t, []string{"record", "complete"}, order)
	assert.Len(t, saved.Prescriptions, 1, "blank prescription rows are dropped")

	// Completion invalidates the cached queue.
	_, err = svc.Queue(ctx, "session-token", 7, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls["doctor_appointments"])
}

func TestCompleteRejectedOutsideInProgress(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	svc := queueService(fake)

	_, err := svc.Complete(context.Background(), "session-token", 7, 2, &CompleteRequest{Diagnosis: "x"})
	require.Error(t, err)
	assert.Zero(t, fake.Calls["record_save"])
	assert.Zero(t, fake.Calls["appointment_complete"])
}

func TestSelectAlwaysFetchesHistory(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	fake.PatientHistoryFn = func(patientID int64) ([]model.MedicalRecord, error) {
		assert.Equal(t, int64(101), patientID)
		return []model.MedicalRecord{{ID: 1, PatientID: 101, Diagnosis: "Migraine"}}, nil
	}

	ws, err := queueService(fake).Select(context.Background(), "session-token", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ws.Appointment.ID)
	assert.True(t, ws.Actions.Start)
	assert.False(t, ws.ReadOnly)
	assert.Nil(t, ws.Record)
	require.Len(t, ws.History, 1)
	assert.Equal(t, "Migraine", ws.History[0].Diagnosis)
}

func TestSelectCompletedRestoresRecordReadOnly(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	fake.PatientHistoryFn = func(int64) ([]model.MedicalRecord, error) { return []model.MedicalRecord{}, nil }
	fake.RecordByAppointmentFn = func(appointmentID int64) (*model.MedicalRecord, error) {
		assert.Equal(t, int64(4), appointmentID)
		return &model.MedicalRecord{ID: 31, AppointmentID: 4, Diagnosis: "Sprain"}, nil
	}

	ws, err := queueService(fake).Select(context.Background(), "session-token", 7, 4)
	require.NoError(t, err)
	assert.True(t, ws.ReadOnly)
	assert.True(t, ws.Actions.ReadOnly)
	require.NotNil(t, ws.Record)
	assert.Equal(t, "Sprain", ws.Record.Diagnosis)
}

// A COMPLETED appointment whose record is missing renders empty read-only
// fields, not an error.
func TestSelectCompletedToleratesMissingRecord(t *testing.T) {
	fake := backendtest.New()
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) { return seedQueue(), nil }
	fake.PatientHistoryFn = func(int64) ([]model.MedicalRecord, error) { return []model.MedicalRecord{}, nil }
	// RecordByAppointmentFn left unset: the fake returns not-found.

	ws, err := queueService(fake).Select(context.Background(), "session-token", 7, 4)
	require.NoError(t, err)
	assert.True(t, ws.ReadOnly)
	assert.Nil(t, ws.Record)
}

// An id missing from the cache triggers exactly one forced re-fetch before
// reporting a miss.
func TestFindAppointmentRefetchesOnceOnStaleCache(t *testing.T) {
	fake := backendtest.New()
	calls := 0
	fake.DoctorAppointmentsFn = func(int64) ([]model.Appointment, error) {
		calls++
		if calls == 1 {
			return seedQueue()[:1], nil
		}
		return seedQueue(), nil
	}
	fake.PatientHistoryFn = func(int64) ([]model.MedicalRecord, error) { return []model.MedicalRecord{}, nil }
	svc := queueService(fake)
	ctx := context.Background()

	// Prime the cache with the short list.
	_, err := svc.Queue(ctx, "session-token", 7, "", false)
	require.NoError(t, err)

	ws, err := svc.Select(ctx, "session-token", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ws.Appointment.ID)
	assert.Equal(t, 2, calls)

	_, err = svc.Select(ctx, "session-token", 7, 999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
