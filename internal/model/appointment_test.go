package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"booked to vitals done", AppointmentStatusBooked, AppointmentStatusVitalsDone, true},
		{"vitals done to in progress", AppointmentStatusVitalsDone, AppointmentStatusInProgress, true},
		{"in progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"skip vitals", AppointmentStatusBooked, AppointmentStatusInProgress, false},
		{"skip consultation", AppointmentStatusVitalsDone, AppointmentStatusCompleted, false},
		{"reverse step", AppointmentStatusInProgress, AppointmentStatusVitalsDone, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusBooked, false},
		{"self transition", AppointmentStatusBooked, AppointmentStatusBooked, false},
		{"unknown source", AppointmentStatus("CANCELLED"), AppointmentStatusBooked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestActionsFor(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   AllowedActions
	}{
		{AppointmentStatusBooked, AllowedActions{RecordVitals: true}},
		{AppointmentStatusVitalsDone, AllowedActions{Start: true}},
		{AppointmentStatusInProgress, AllowedActions{Complete: true}},
		{AppointmentStatusCompleted, AllowedActions{ReadOnly: true}},
		{AppointmentStatus("UNKNOWN"), AllowedActions{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ActionsFor(tt.status))
		})
	}
}

// Exactly one action is enabled per lifecycle state, so no screen can ever
// offer two conflicting actions for the same appointment.
func TestActionsForExactlyOnePerStatus(t *testing.T) {
	for _, status := range []AppointmentStatus{
		AppointmentStatusBooked, AppointmentStatusVitalsDone,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
	} {
		actions := ActionsFor(status)
		enabled := 0
		for _, on := range []bool{actions.RecordVitals, actions.Start, actions.Complete, actions.ReadOnly} {
			if on {
				enabled++
			}
		}
		assert.Equal(t, 1, enabled, "status %s", status)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(AppointmentStatusBooked))
	assert.True(t, ValidStatus(AppointmentStatusVitalsDone))
	assert.True(t, ValidStatus(AppointmentStatusInProgress))
	assert.True(t, ValidStatus(AppointmentStatusCompleted))
	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus(""))
}

func TestFilterByStatus(t *testing.T) {
	queue := []Appointment{
		{ID: 1, Status: AppointmentStatusBooked},
		{ID: 2, Status: AppointmentStatusVitalsDone},
		{ID: 3, Status: AppointmentStatusVitalsDone},
		{ID: 4, Status: AppointmentStatusInProgress},
		{ID: 5, Status: AppointmentStatusCompleted},
	}

	vitalsDone := FilterByStatus(queue, AppointmentStatusVitalsDone)
	assert.Len(t, vitalsDone, 2)
	assert.Equal(t, int64(2), vitalsDone[0].ID)
	assert.Equal(t, int64(3), vitalsDone[1].ID)

	// Empty status is the "all" tab.
	assert.Equal(t, queue, FilterByStatus(queue, ""))

	// No match yields an empty, non-nil slice.
	none := FilterByStatus(queue[:1], AppointmentStatusCompleted)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	// The input is never mutated.
	assert.Equal(t, AppointmentStatusBooked, queue[0].Status)
	assert.Len(t, queue, 5)
}
