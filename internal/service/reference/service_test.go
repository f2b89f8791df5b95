package reference

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careflow/workstation-api/internal/backend/backendtest"
	"github.com/careflow/workstation-api/internal/model"
)

func TestSpecialtiesAreCached(t *testing.T) {
	fake := backendtest.New()
	fake.ListSpecialtiesFn = func() ([]string, error) {
		return []string{"Cardiology", "Dermatology"}, nil
	}
	svc := NewService(fake, time.Minute)
	ctx := context.Background()

	first, err := svc.Specialties(ctx, "session-token")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, first)

	_, err = svc.Specialties(ctx, "session-token")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Calls["specialties_list"])
}

func TestDoctorsCachedPerSpecialty(t *testing.T) {
	fake := backendtest.New()
	fake.ListDoctorsFn = func(specialty string) ([]model.Doctor, error) {
		return []model.Doctor{{ID: 7, Name: "Dr. Who", Specialty: specialty}}, nil
	}
	svc := NewService(fake, time.Minute)
	ctx := context.Background()

	cardio, err := svc.DoctorsBySpecialty(ctx, "session-token", "Cardiology")
	require.NoError(t, err)
	require.Len(t, cardio, 1)
	assert.Equal(t, "Cardiology", cardio[0].Specialty)

	_, err = svc.DoctorsBySpecialty(ctx, "session-token", "Cardiology")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Calls["doctors_list"])

	// A different specialty is a distinct cache entry.
	_, err = svc.DoctorsBySpecialty(ctx, "session-token", "Dermatology")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls["doctors_list"])
}

func TestFailedFetchIsNotCached(t *testing.T) {
	fake := backendtest.New()
	svc := NewService(fake, time.Minute)
	ctx := context.Background()

	_, err := svc.Specialties(ctx, "session-token")
	require.Error(t, err)

	fake.ListSpecialtiesFn = func() ([]string, error) { return []string{"Cardiology"}, nil }
	specialties, err := svc.Specialties(ctx, "session-token")
	require.NoError(t, err)
	assert.Len(t, specialties, 1)
}
