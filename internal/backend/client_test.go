package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careflow/workstation-api/internal/config"
	"github.com/careflow/workstation-api/pkg/circuitbreaker"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/logger"
	"github.com/careflow/workstation-api/pkg/metrics"
)

// Prometheus collectors register globally, so one set serves the package.
var testMetrics = metrics.NewMetrics("backend_test")

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.BackendConfig{
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		MaxFailures: 3,
		Cooldown:    time.Minute,
	}, testMetrics, logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	}))
}

func TestSearchPatientDecodesResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patient/search", r.URL.Path)
		assert.Equal(t, "9001", r.URL.Query().Get("nationalId"))
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "nationalId": "9001", "name": "Jane Doe", "dateOfBirth": "1990-01-01", "contactNumber": "555-0100"}`))
	}))

	patient, err := client.SearchPatient(context.Background(), "session-token", "9001")
	require.NoError(t, err)
	assert.Equal(t, int64(42), patient.ID)
	assert.Equal(t, "Jane Doe", patient.Name)
	assert.Equal(t, "9001", patient.NationalID)
}

func TestBackendNotFoundMapsToNotFoundError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.SearchPatient(context.Background(), "session-token", "000")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestBackendServerErrorMapsToUpstream(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListSpecialties(context.Background(), "session-token")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUpstream, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.False(t, errors.IsNotFound(err))
}

func TestBackendUnauthorizedMapsToUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Signin(context.Background(), "drwho", "wrong")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestSigninAbsorbsBothRoleShapes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "backend-jwt", "username": "drwho", "roles": ["ROLE_DOCTOR", {"authority": "ROLE_ADMIN"}], "doctorId": 7}`))
	}))

	result, err := client.Signin(context.Background(), "drwho", "gallifrey")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", result.Token)
	require.Len(t, result.Roles, 2)
	assert.Equal(t, "ROLE_DOCTOR", result.Roles[0].Authority)
	assert.Equal(t, "ROLE_ADMIN", result.Roles[1].Authority)
	assert.Equal(t, int64(7), result.DoctorID)
}

// Consecutive 5xx responses trip the breaker; subsequent calls are rejected
// without touching the backend and readiness reports the open state.
func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	hits := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	for i := 0; i < 3; i++ {
		_, err := client.ListSpecialties(context.Background(), "session-token")
		require.Error(t, err)
	}
	assert.Equal(t, 3, hits)
	assert.Equal(t, "open", client.BreakerState())

	_, err := client.ListSpecialties(context.Background(), "session-token")
	require.Error(t, err)
	assert.Equal(t, 3, hits, "open breaker must not reach the backend")

	var open *circuitbreaker.ErrOpen
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUpstream, appErr.Code)
	assert.ErrorAs(t, err, &open)
}
