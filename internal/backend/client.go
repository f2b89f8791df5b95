package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/careflow/workstation-api/internal/config"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/circuitbreaker"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/logger"
	"github.com/careflow/workstation-api/pkg/metrics"
)

// API is the hospital backend surface this gateway depends on. One method
// per remote endpoint; the backend owns all persistence and enforcement.
type API interface {
	Signin(ctx context.Context, username, password string) (*SigninResult, error)

	SearchPatient(ctx context.Context, token, nationalID string) (*model.Patient, error)
	RegisterPatient(ctx context.Context, token string, req *model.RegisterPatientRequest) (*model.Patient, error)

	ListSpecialties(ctx context.Context, token string) ([]string, error)
	ListDoctors(ctx context.Context, token, specialty string) ([]model.Doctor, error)

	BookAppointment(ctx context.Context, token string, patientID, doctorID int64) (*model.Appointment, error)
	SearchAppointment(ctx context.Context, token string, tokenNumber int, doctorID int64) (*model.Appointment, error)
	SubmitVitals(ctx context.Context, token string, appointmentID int64, vitals *model.VitalSigns) (*model.Appointment, error)
	DoctorAppointments(ctx context.Context, token string, doctorID int64) ([]model.Appointment, error)
	StartConsultation(ctx context.Context, token string, appointmentID int64) (*model.Appointment, error)
	CompleteAppointment(ctx context.Context, token string, appointmentID int64) (*model.Appointment, error)

	SaveMedicalRecord(ctx context.Context, token string, record *model.MedicalRecord) (*model.MedicalRecord, error)
	PatientHistory(ctx context.Context, token string, patientID int64) ([]model.MedicalRecord, error)
	RecordByAppointment(ctx context.Context, token string, appointmentID int64) (*model.MedicalRecord, error)

	PharmacyFind(ctx context.Context, token string, tokenNumber int) (*model.PharmacySlip, error)
}

// Client is a typed HTTP client over the hospital REST API.
type Client struct {
	http    *resty.Client
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

var _ API = (*Client)(nil)

func NewClient(cfg config.BackendConfig, m *metrics.Metrics, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "hospital-backend",
		MaxFailures: cfg.MaxFailures,
		Cooldown:    cfg.Cooldown,
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
		metrics: m,
		logger:  log,
	}
}

// BreakerState exposes the breaker for readiness reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// call runs one backend request through the circuit breaker, records
// metrics, and maps the response onto the gateway error taxonomy: 404
// becomes a not-found AppError (an expected outcome for lookups), anything
// else non-2xx or a transport failure becomes an upstream error.
func (c *Client) call(op, resource string, send func() (*resty.Response, error)) error {
	start := time.Now()

	var resp *resty.Response
	err := c.breaker.Execute(func() error {
		var sendErr error
		resp, sendErr = send()
		if sendErr != nil {
			return sendErr
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("backend returned %d", resp.StatusCode())
		}
		return nil
	})

	c.metrics.BackendLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.BackendRequests.WithLabelValues(op, "error").Inc()
		c.metrics.BackendFailures.WithLabelValues(op).Inc()
		c.logger.Error(err, "backend request failed", "operation", op)
		return errors.Upstream(err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		c.metrics.BackendRequests.WithLabelValues(op, "not_found").Inc()
		return errors.NotFound(resource, nil)
	case resp.StatusCode() == http.StatusUnauthorized:
		c.metrics.BackendRequests.WithLabelValues(op, "unauthorized").Inc()
		return errors.Unauthorized(fmt.Errorf("backend rejected credentials"))
	case resp.IsError():
		c.metrics.BackendRequests.WithLabelValues(op, "error").Inc()
		c.metrics.BackendFailures.WithLabelValues(op).Inc()
		return errors.Upstream(fmt.Errorf("backend returned %d: %s", resp.StatusCode(), resp.String()))
	}

	c.metrics.BackendRequests.WithLabelValues(op, "ok").Inc()
	return nil
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}
