package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/model"
)

func (c *Client) SaveMedicalRecord(ctx context.Context, token string, record *model.MedicalRecord) (*model.MedicalRecord, error) {
	var saved model.MedicalRecord
	err := c.call("record_save", "medical record", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetBody(record).
			SetResult(&saved).
			Post("/api/medical-record")
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) PatientHistory(ctx context.Context, token string, patientID int64) ([]model.MedicalRecord, error) {
	var records []model.MedicalRecord
	err := c.call("patient_history", "medical records", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&records).
			Get(fmt.Sprintf("/api/medical-record/patient/%d", patientID))
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RecordByAppointment restores a completed consultation. A miss means the
// backend has a COMPLETED appointment with no record; callers render empty
// read-only fields rather than erroring.
func (c *Client) RecordByAppointment(ctx context.Context, token string, appointmentID int64) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := c.call("record_by_appointment", "medical record", func() (*resty.Response, error) {
		return c.request(ctx, token).
			SetResult(&record).
			Get("/api/medical-record/appointment/" + strconv.FormatInt(appointmentID, 10))
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
