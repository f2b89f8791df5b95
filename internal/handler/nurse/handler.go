package nurse

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/middleware"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/internal/service/nurse"
	"github.com/careflow/workstation-api/internal/service/reference"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/httputil"
)

type Handler struct {
	svc       *nurse.Service
	reference *reference.Service
}

func NewHandler(svc *nurse.Service, ref *reference.Service) *Handler {
	return &Handler{svc: svc, reference: ref}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	station := r.Group("/nurse")
	{
		station.GET("/specialties", h.ListSpecialties)
		station.GET("/specialties/:specialty/doctors", h.ListDoctors)
		station.GET("/appointments/search", h.SearchAppointment)
		station.POST("/vitals", h.SubmitVitals)
	}
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

// searchResult renders a miss as a displayable outcome, distinct from a
// transport failure.
type searchResult struct {
	Found       bool                  `json:"found"`
	Appointment *model.Appointment    `json:"appointment,omitempty"`
	Actions     *model.AllowedActions `json:"actions,omitempty"`
}

// SearchAppointment requires both a token number and a selected doctor;
// search without a doctor is rejected before any backend call.
func (h *Handler) SearchAppointment(c *gin.Context) {
	tokenNumber, err := strconv.Atoi(c.Query("token"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("token must be a number", err))
		return
	}
	doctorID, err := strconv.ParseInt(c.Query("doctorId"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("a doctor must be selected before searching", err))
		return
	}

	appointment, err := h.svc.LocateAppointment(c.Request.Context(), middleware.BackendToken(c), tokenNumber, doctorID)
	if err != nil {
		if errors.IsNotFound(err) {
			httputil.RespondWithSuccess(c, searchResult{Found: false})
			return
		}
		httputil.RespondWithError(c, err)
		return
	}

	actions := model.ActionsFor(appointment.Status)
	httputil.RespondWithSuccess(c, searchResult{
		Found:       true,
		Appointment: appointment,
		Actions:     &actions,
	})
}

func (h *Handler) SubmitVitals(c *gin.Context) {
	var req nurse.VitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("all six vitals fields are required", err))
		return
	}

	appointment, err := h.svc.SubmitVitals(c.Request.Context(), middleware.BackendToken(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"appointment": appointment,
		"message":     "Vitals saved. Patient is now in the doctor's queue.",
	})
}
