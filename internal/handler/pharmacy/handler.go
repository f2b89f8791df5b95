package pharmacy

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/middleware"
	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/internal/service/pharmacy"
	"github.com/careflow/workstation-api/pkg/errors"
	"github.com/careflow/workstation-api/pkg/httputil"
)

type Handler struct {
	svc *pharmacy.Service
}

func NewHandler(svc *pharmacy.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	counter := r.Group("/pharmacy")
	{
		counter.GET("/find", h.Find)
	}
}

type findResult struct {
	Found bool                `json:"found"`
	Slip  *model.PharmacySlip `json:"slip,omitempty"`
}

// Find looks up a prescription slip by token number. A miss is displayed,
// not raised.
func (h *Handler) Find(c *gin.Context) {
	tokenNumber, err := strconv.Atoi(c.Query("token"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("token must be a number", err))
		return
	}

	slip, err := h.svc.Find(c.Request.Context(), middleware.BackendToken(c), tokenNumber)
	if err != nil {
		if errors.IsNotFound(err) {
			httputil.RespondWithSuccess(c, findResult{Found: false})
			return
		}
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, findResult{Found: true, Slip: slip})
}
