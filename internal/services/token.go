package services

import (
	"time"

	"staffdesk/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenCodec issues and parses signed bearer tokens. Tokens carry no exp
// claim: liveness is decided by the session row, so logout revokes a token
// immediately without waiting for a self-contained expiry.
type TokenCodec struct {
	cfg *config.Config
}

func NewTokenCodec(cfg *config.Config) *TokenCodec {
	return &TokenCodec{cfg: cfg}
}

func (c *TokenCodec) secret() []byte {
	s := c.cfg.JWT.Secret
	if s == "" {
		s = "staffdesk-default-secret-change-in-production"
	}
	return []byte(s)
}

// Issue produces a signed token bound to the employee id and issuance time.
func (c *TokenCodec) Issue(employeeID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": employeeID.String(),
		"iat": time.Now().Unix(),
		"iss": c.cfg.JWT.Issuer,
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret())
}

// Parse verifies the token signature and structure and extracts the employee
// id. Any malformed or tampered token yields ErrInvalidToken.
func (c *TokenCodec) Parse(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret(), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}
