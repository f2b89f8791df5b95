package pharmacy

import (
	"context"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
)

// Service is the read-only dispensing counter lookup. Dispensing itself is
// an acknowledgement at the counter and is never written back.
type Service struct {
	backend backend.API
}

func NewService(api backend.API) *Service {
	return &Service{backend: api}
}

// Find returns the prescriptions for a completed-enough appointment by
// token. Not-found propagates as a not-found AppError; the handler renders
// it as a displayable miss.
func (s *Service) Find(ctx context.Context, token string, tokenNumber int) (*model.PharmacySlip, error) {
	return s.backend.PharmacyFind(ctx, token, tokenNumber)
}
