package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careflow/workstation-api/internal/model"
)

// SessionClaims is the local session token payload. The backend bearer
// token rides inside it so every later backend call can present it.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username     string     `json:"username"`
	Role         model.Role `json:"role"`
	BackendToken string     `json:"backend_token"`
	DoctorID     int64      `json:"doctor_id,omitempty"`
}

type JWTService interface {
	GenerateSessionToken(session *model.Session) (string, error)
	ValidateSessionToken(token string) (*SessionClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiryHours int) JWTService {
	return &jwtService{
		secret: []byte(secret),
		expiry: time.Duration(expiryHours) * time.Hour,
	}
}

func (s *jwtService) GenerateSessionToken(session *model.Session) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Username:     session.Username,
		Role:         session.Role,
		BackendToken: session.BackendToken,
		DoctorID:     session.DoctorID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}
