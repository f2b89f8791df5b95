package model

import "strings"

// Role gates which surface a signed-in user can reach. Client-side gate
// only, not a security boundary; the backend re-checks everything.
type Role string

const (
	RoleReceptionist Role = "RECEPTIONIST"
	RoleNurse        Role = "NURSE"
	RoleDoctor       Role = "DOCTOR"
	RolePharmacist   Role = "PHARMACIST"
)

// NormalizeRole strips the backend's ROLE_ prefix and upper-cases the rest.
// The signin response may carry roles either as plain strings or as
// {"authority": "ROLE_X"} objects; both normalize here.
func NormalizeRole(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "ROLE_")
	return Role(r)
}

// SurfaceFor maps a role to the path of its workstation surface, mirroring
// the post-signin routing. Unknown roles get no surface.
func SurfaceFor(role Role) string {
	switch role {
	case RoleReceptionist:
		return "/receptionist/booking"
	case RoleNurse:
		return "/nurse/vitals"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePharmacist:
		return "/pharmacy/dispense"
	default:
		return ""
	}
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is what the gateway holds for a signed-in user: who they are,
// which role gates their surface, and the backend bearer token attached to
// every subsequent backend call.
type Session struct {
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	BackendToken string `json:"-"`
	DoctorID     int64  `json:"doctorId,omitempty"`
}

// SigninResponse is returned to the workstation after a successful signin.
type SigninResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Surface  string `json:"surface"`
}
