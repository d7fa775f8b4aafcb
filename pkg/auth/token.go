package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/gestion-backend/pkg/config"
)

// clockSkew tolerated between the minting host and this API.
const clockSkew = 30 * time.Second

var (
	signingMethod = jwt.SigningMethodHS256

	ErrMissingSecret   = errors.New("jwt secret is required")
	ErrSubjectMismatch = errors.New("token subject does not match user id")
)

func checkConfig(cfg config.JWTConfig, minting bool) error {
	if cfg.Secret == "" {
		return ErrMissingSecret
	}
	if !minting {
		return nil
	}
	if cfg.Issuer == "" {
		return errors.New("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return errors.New("jwt expiration minutes must be positive")
	}
	return nil
}

// MintAccessToken signs an HS256 token for payload valid from now for the
// configured number of minutes. The subject carries the user id.
func MintAccessToken(cfg config.JWTConfig, now time.Time, payload AccessTokenPayload) (string, error) {
	if err := checkConfig(cfg, true); err != nil {
		return "", err
	}
	if payload.UserID <= 0 {
		return "", fmt.Errorf("user id must be positive, got %d", payload.UserID)
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", payload.Role)
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}
	ttl := time.Duration(cfg.ExpirationMinutes) * time.Minute

	claims := AccessTokenClaims{
		UserID:    payload.UserID,
		Username:  strings.TrimSpace(payload.Username),
		Role:      payload.Role,
		Superuser: payload.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatInt(payload.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, issuer and expiry and returns the
// typed claims. Tokens whose subject disagrees with user_id are rejected.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	if err := checkConfig(cfg, false); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &AccessTokenClaims{}
	keyFunc := func(*jwt.Token) (any, error) { return []byte(cfg.Secret), nil }
	if _, err := jwt.ParseWithClaims(raw, claims, keyFunc, opts...); err != nil {
		return nil, err
	}

	switch {
	case claims.UserID <= 0:
		return nil, errors.New("token missing user id")
	case claims.Subject != "" && claims.Subject != strconv.FormatInt(claims.UserID, 10):
		return nil, ErrSubjectMismatch
	case !claims.Role.IsValid():
		return nil, fmt.Errorf("invalid user role %q", claims.Role)
	}
	return claims, nil
}
