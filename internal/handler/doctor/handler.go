package doctor

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/middleware"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/internal/service/doctor"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/httputil"
)

type Handler struct {
	svc *doctor.Service
}

func NewHandler(svc *doctor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	room := r.Group("/doctor")
	{
		room.GET("/queue", h.Queue)
		room.GET("/appointments/:id", h.Select)
		room.POST("/appointments/:id/start", h.Start)
		room.POST("/appointments/:id/complete", h.Complete)
	}
}

// sessionDoctorID resolves the signed-in doctor. Doctor accounts without a
// doctor mapping cannot use this surface.
func sessionDoctorID(c *gin.Context) (int64, error) {
	id := middleware.DoctorID(c)
	if id == 0 {
		return 0, errors.Forbidden("session is not linked to a doctor")
	}
	return id, nil
}

func appointmentID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("invalid appointment id", err)
	}
	return id, nil
}

// Queue serves the doctor's appointment list. The status query selects a
// tab; tabs filter the cached set in-process. refresh=true forces a
// backend re-fetch.
func (h *Handler) Queue(c *gin.Context) {
	doctorID, err := sessionDoctorID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	status := model.AppointmentStatus(c.Query("status"))
	refresh := c.Query("refresh") == "true"

	appointments, err := h.svc.Queue(c.Request.Context(), middleware.BackendToken(c), doctorID, status, refresh)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Select(c *gin.Context) {
	doctorID, err := sessionDoctorID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	id, err := appointmentID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	workspace, err := h.svc.Select(c.Request.Context(), middleware.BackendToken(c), doctorID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, workspace)
}

func (h *Handler) Start(c *gin.Context) {
	doctorID, err := sessionDoctorID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	id, err := appointmentID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointment, err := h.svc.Start(c.Request.Context(), middleware.BackendToken(c), doctorID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) Complete(c *gin.Context) {
	doctorID, err := sessionDoctorID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	id, err := appointmentID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req doctor.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("diagnosis is required", err))
		return
	}

	record, err := h.svc.Complete(c.Request.Context(), middleware.BackendToken(c), doctorID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"record":  record,
		"message": "Consultation saved and completed.",
	})
}
