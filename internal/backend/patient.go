package backend

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/model"
)

// SearchPatient looks a patient up by national ID. A miss returns a
// not-found AppError, which callers treat as the registration path, not a
// failure.
func (c *Client) SearchPatient(ctx context.Context, token, nationalID string) (*model.Patient, error) {
	var patient model.Patient
	err := c.call("patient_search", "patient", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetQueryParam("nationalId", nationalID).
			SetResult(&patient).
			Get("/api/patient/search")
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) RegisterPatient(ctx context.Context, token string, req *model.RegisterPatientRequest) (*model.Patient, error) {
	var patient model.Patient
	err := c.call("patient_register", "patient", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetBody(req).
			SetResult(&patient).
			Post("/api/patient/register")
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
