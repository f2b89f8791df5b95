package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/backend/backendtest"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/auth"
	"github.com/careflow/workstation-api/pkg/errors"
)

func newService(fake *backendtest.Fake) (*Service, auth.JWTService) {
	jwtSvc := auth.NewJWTService("test-secret", 1)
	return NewService(fake, jwtSvc), jwtSvc
}

func TestSigninMintsSessionWithBackendToken(t *testing.T) {
	fake := backendtest.New()
	fake.SigninFn = func(username, password string) (*backend.SigninResult, error) {
		assert.Equal(t, "nurse.joy", username)
		assert.Equal(t, "pika", password)
		return &backend.SigninResult{
			Token:    "backend-jwt",
			Username: "nurse.joy",
			Roles:    []backend.RoleEntry{{Authority: "ROLE_NURSE"}},
		}, nil
	}

	svc, jwtSvc := newService(fake)
	resp, err := svc.Signin(context.Background(), "nurse.joy", "pika")
	require.NoError(t, err)
	assert.Equal(t, model.RoleNurse, resp.Role)
	assert.Equal(t, "/nurse/vitals", resp.Surface)

	claims, err := jwtSvc.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "nurse.joy", claims.Username)
	assert.Equal(t, model.RoleNurse, claims.Role)
	assert.Equal(t, "backend-jwt", claims.BackendToken)
	assert.Zero(t, claims.DoctorID)
}

func TestSigninCarriesDoctorID(t *testing.T) {
	fake := backendtest.New()
	fake.SigninFn = func(string, string) (*backend.SigninResult, error) {
		return &backend.SigninResult{
			Token:    "backend-jwt",
			Username: "drwho",
			Roles:    []backend.RoleEntry{{Authority: "ROLE_DOCTOR"}},
			DoctorID: 7,
		}, nil
	}

	svc, jwtSvc := newService(fake)
	resp, err := svc.Signin(context.Background(), "drwho", "gallifrey")
	require.NoError(t, err)
	assert.Equal(t, "/doctor/dashboard", resp.Surface)

	claims, err := jwtSvc.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.DoctorID)
}

func TestSigninUnknownUser(t *testing.T) {
	svc, _ := newService(backendtest.New())

	_, err := svc.Signin(context.Background(), "nobody", "x")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

// A valid account whose role maps to no workstation surface cannot sign in.
func TestSigninUnmappedRoleIsForbidden(t *testing.T) {
	fake := backendtest.New()
	fake.SigninFn = func(string, string) (*backend.SigninResult, error) {
		return &backend.SigninResult{
			Token:    "backend-jwt",
			Username: "sysadmin",
			Roles:    []backend.RoleEntry{{Authority: "ROLE_ADMIN"}},
		}, nil
	}

	svc, _ := newService(fake)
	_, err := svc.Signin(context.Background(), "sysadmin", "x")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestSigninNoRoles(t *testing.T) {
	fake := backendtest.New()
	fake.SigninFn = func(string, string) (*backend.SigninResult, error) {
		return &backend.SigninResult{Token: "backend-jwt", Username: "ghost"}, nil
	}

	svc, _ := newService(fake)
	_, err := svc.Signin(context.Background(), "ghost", "x")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}
