package backend

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/model"
)

func (c *Client) ListSpecialties(ctx context.Context, token string) ([]string, error) {
	var specialties []string
	err := c.call("specialties_list", "specialties", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&specialties).
			Get("/api/doctor/specialties")
	})
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (c *Client) ListDoctors(ctx context.Context, token, specialty string) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := c.call("doctors_list", "doctors", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&doctors).
			Get("/api/doctor/list/" + specialty)
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
