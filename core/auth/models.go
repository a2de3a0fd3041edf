package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"

	"github.com/Sky-walkerX/Examcell/core"
)

// Credentials are forwarded as is to the login endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin student"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return validate.Struct(c)
}

// LoginResponse is returned by the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session holds the bearer token issued at login and the identity it belongs to.
type Session struct {
	core.Identity `yaml:",inline"`
	Token         string    `json:"token" yaml:"-"`
	ExpiresAt     time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewSession builds a Session from a LoginResponse.
// The expiry is read from the token's `exp` claim when the token is a JWT; the signature is not verified.
func NewSession(resp LoginResponse, now time.Time) Session {
	sess := Session{
		Identity: core.Identity{
			ID:    resp.ID,
			Email: resp.Email,
			Name:  resp.Name,
			Role:  resp.Role,
		},
		Token:     resp.Token,
		CreatedAt: now.UTC(),
	}
	if exp, ok := tokenExpiry(resp.Token); ok {
		sess.ExpiresAt = exp
	}
	return sess
}

func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0).UTC(), true
}
