package backend

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

// SigninResult is the backend's authentication response. Roles arrive
// either as plain strings or as {"authority": "ROLE_X"} objects depending
// on the backend build; RoleEntry absorbs both.
type SigninResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Roles    []RoleEntry `json:"roles"`
	DoctorID int64       `json:"doctorId,omitempty"`
}

type RoleEntry struct {
	Authority string
}

func (r *RoleEntry) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		r.Authority = plain
		return nil
	}
	var obj struct {
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Authority = obj.Authority
	return nil
}

func (c *Client) Signin(ctx context.Context, username, password string) (*SigninResult, error) {
	var result SigninResult
	err := c.call("signin", "user", func() (*resty.Response, error) {
		return c.request(ctx, "").
			SetBody(map[string]string{"username": username, "password": password}).
			SetResult(&result).
			Post("/api/auth/signin")
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
