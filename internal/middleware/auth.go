package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careflow/workstation-api/internal/model"
	"github.com/careflow/workstation-api/pkg/auth"
	"github.com/careflow/workstation-api/pkg/httputil"
)

// Context keys set by Authenticate.
const (
	ContextUsername     = "username"
	ContextRole         = "role"
	ContextBackendToken = "backend_token"
	ContextDoctorID     = "doctor_id"
)

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the session token and sets the signed-in identity
// in the request context. No session sends the caller back to sign-in.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwtSvc.ValidateSessionToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid session token")
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, string(claims.Role))
		c.Set(ContextBackendToken, claims.BackendToken)
		c.Set(ContextDoctorID, claims.DoctorID)
		c.Next()
	}
}

// RequireRole gates a surface to exactly one role. A mismatch is a
// role-gate rejection, not an authentication failure.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if model.Role(c.GetString(ContextRole)) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusForbidden,
					Message: "this surface requires the " + string(role) + " role",
				},
			})
			return
		}
		c.Next()
	}
}

// BackendToken pulls the backend bearer token Authenticate stored.
func BackendToken(c *gin.Context) string {
	return c.GetString(ContextBackendToken)
}

// DoctorID pulls the session doctor id, set only for doctor accounts.
func DoctorID(c *gin.Context) int64 {
	return c.GetInt64(ContextDoctorID)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}
