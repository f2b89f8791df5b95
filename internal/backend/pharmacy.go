package backend

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/model"
)

// PharmacyFind is the doctor-agnostic token lookup used by the dispensing
// counter. Read-only; nothing is written back.
func (c *Client) PharmacyFind(ctx context.Context, token string, tokenNumber int) (*model.PharmacySlip, error) {
	var slip model.PharmacySlip
	err := c.call("pharmacy_find", "prescription", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetQueryParam("token", strconv.Itoa(tokenNumber)).
			SetResult(&slip).
			Get("/api/pharmacy/find")
	})
	if err != nil {
		return nil, err
	}
	return &slip, nil
}
