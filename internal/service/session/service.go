package session

import (
	"context"
	"fmt"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/auth"
	"github.com/careflow/workstation-api/pkg/errors"
)

// Service exchanges hospital backend credentials for a local session token
// that carries the user's role and the backend bearer token. The gateway
// never stores credentials or sessions; the JWT is the whole session.
type Service struct {
	backend backend.API
	jwtSvc  auth.JWTService
}

func NewService(api backend.API, jwtSvc auth.JWTService) *Service {
	return &Service{backend: api, jwtSvc: jwtSvc}
}

func (s *Service) Signin(ctx context.Context, username, password string) (*model.SigninResponse, error) {
	result, err := s.backend.Signin(ctx, username, password)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized(fmt.Errorf("unknown user"))
		}
		return nil, err
	}

	if len(result.Roles) == 0 {
		return nil, errors.Forbidden("account has no role assigned")
	}

	role := model.NormalizeRole(result.Roles[0].Authority)
	surface := model.SurfaceFor(role)
	if surface == "" {
		return nil, errors.Forbidden(fmt.Sprintf("no workstation surface for role %s", role))
	}

	session := &model.Session{
		Username:     result.Username,
		Role:         role,
		BackendToken: result.Token,
		DoctorID:     result.DoctorID,
	}

	token, err := s.jwtSvc.GenerateSessionToken(session)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to mint session token: %w", err))
	}

	return &model.SigninResponse{
		Token:    token,
		Username: result.Username,
		Role:     role,
		Surface:  surface,
	}, nil
}
