package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careflow/workstation-api/internal/model"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	token, err := svc.GenerateSessionToken(&model.Session{
		Username:     "drwho",
		Role:         model.RoleDoctor,
		BackendToken: "backend-jwt",
		DoctorID:     7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "drwho", claims.Username)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.Equal(t, "backend-jwt", claims.BackendToken)
	assert.Equal(t, int64(7), claims.DoctorID)
	assert.Equal(t, "drwho", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).GenerateSessionToken(&model.Session{
		Username: "nurse.joy",
		Role:     model.RoleNurse,
	})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret", 1).ValidateSessionToken("not-a-jwt")
	assert.Error(t, err)
}
