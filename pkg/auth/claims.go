package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/angelmondragon/gestion-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID    int64
	Username  string
	Role      enums.UserRole
	Superuser bool
	JTI       string
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	UserID    int64          `json:"user_id"`
	Username  string         `json:"username,omitempty"`
	Role      enums.UserRole `json:"role"`
	Superuser bool           `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}
