package reference

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/careflow/workstation-api/internal/backend"
	"github.com/careflow/workstation-api/internal/model"
)

const specialtiesKey = "specialties"

// Service serves doctor reference data (specialties and per-specialty
// doctor lists) with a short in-process cache. Reference data changes
// rarely and is shared across the receptionist and nurse surfaces.
type Service struct {
	backend backend.API
	cache   *gocache.Cache
}

func NewService(api backend.API, ttl time.Duration) *Service {
	return &Service{
		backend: api,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

func (s *Service) Specialties(ctx context.Context, token string) ([]string, error) {
	if cached, ok := s.cache.Get(specialtiesKey); ok {
		return cached.([]string), nil
	}

	specialties, err := s.backend.ListSpecialties(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(specialtiesKey, specialties)
	return specialties, nil
}

func (s *Service) DoctorsBySpecialty(ctx context.Context, token, specialty string) ([]model.Doctor, error) {
	key := "doctors:" + specialty
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Doctor), nil
	}

	doctors, err := s.backend.ListDoctors(ctx, token, specialty)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, doctors)
	return doctors, nil
}
