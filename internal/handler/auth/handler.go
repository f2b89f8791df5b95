package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/internal/service/session"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/httputil"
)

type Handler struct {
	svc *session.Service
}

func NewHandler(svc *session.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signin", h.Signin)
	}
}

func (h *Handler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("username and password are required", err))
		return
	}

	resp, err := h.svc.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp)
}
