package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/model"
)

func (c *Client) BookAppointment(ctx context.Context, token string, patientID, doctorID int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := c.call("appointment_book", "appointment", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetBody(map[string]int64{"patientId": patientID, "doctorId": doctorID}).
			SetResult(&appointment).
			Post("/api/appointment/book")
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// SearchAppointment resolves (token number, doctor) to at most one active
// appointment. A miss is the normal displayable outcome.
func (c *Client) SearchAppointment(ctx context.Context, token string, tokenNumber int, doctorID int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := c.call("appointment_search", "appointment", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetQueryParams(map[string]string{
				"token":    strconv.Itoa(tokenNumber),
				"doctorId": strconv.FormatInt(doctorID, 10),
			}).
			SetResult(&appointment).
			Get("/api/appointment/search")
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) SubmitVitals(ctx context.Context, token string, appointmentID int64, vitals *model.VitalSigns) (*model.Appointment, error) {
	var appointment model.Appointment
	err := c.call("vitals_submit", "appointment", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetBody(vitals).
			SetResult(&appointment).
			Post(fmt.Sprintf("/api/appointment/%d/vitals", appointmentID))
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// DoctorAppointments fetches the doctor's full appointment set. Status
// filtering happens in-process; the tabs never re-fetch.
func (c *Client) DoctorAppointments(ctx context.Context, token string, doctorID int64) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := c.call("doctor_appointments", "appointments", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&appointments).
			Get(fmt.Sprintf("/api/appointment/doctor/%d/all", doctorID))
	})
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) StartConsultation(ctx context.Context, token string, appointmentID int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := c.call("appointment_start", "appointment", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&appointment).
			Post(fmt.Sprintf("/api/appointment/%d/start", appointmentID))
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CompleteAppointment(ctx context.Context, token string, appointmentID int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := c.call("appointment_complete", "appointment", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&appointment).
			Post(fmt.Sprintf("/api/appointment/%d/complete", appointmentID))
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
