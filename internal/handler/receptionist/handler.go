package receptionist

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/middleware"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/internal/service/receptionist"
	"github.com/careflow/workstation-api/internal/service/reference"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/httputil"
)

type Handler struct {
	svc       *receptionist.Service
	reference *reference.Service
}

func NewHandler(svc *receptionist.Service, ref *reference.Service) *Handler {
	return &Handler{svc: svc, reference: ref}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	desk := r.Group("/receptionist")
	{
		desk.GET("/patients/search", h.SearchPatient)
		desk.POST("/patients", h.RegisterPatient)
		desk.GET("/specialties", h.ListSpecialties)
		desk.GET("/specialties/:specialty/doctors", h.ListDoctors)
		desk.POST("/appointments", h.BookAppointment)
	}
}

// SearchPatient treats a miss as the registration path: the response says
// so explicitly instead of erroring.
func (h *Handler) SearchPatient(c *gin.Context) {
	nationalID := c.Query("nationalId")
	if nationalID == "" {
		httputil.RespondWithError(c, errors.BadRequest("nationalId is required", nil))
		return
	}

	lookup, err := h.svc.LocatePatient(c.Request.Context(), middleware.BackendToken(c), nationalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, lookup)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid registration payload", err))
		return
	}

	patient, err := h.svc.RegisterPatient(c.Request.Context(), middleware.BackendToken(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, patient)
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.reference.Specialties(c.Request.Context(), middleware.BackendToken(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialties)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.reference.DoctorsBySpecialty(c.Request.Context(), middleware.BackendToken(c), c.Param("specialty"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

type bookRequest struct {
	PatientID int64 `json:"patientId" binding:"required"`
	DoctorID  int64 `json:"doctorId" binding:"required"`
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("patientId and doctorId are required", err))
		return
	}

	appointment, err := h.svc.BookAppointment(c.Request.Context(), middleware.BackendToken(c), req.PatientID, req.DoctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, gin.H{
		"appointment": appointment,
		"message":     fmt.Sprintf("Appointment booked. Token number: %d", appointment.TokenNumber),
	})
}
