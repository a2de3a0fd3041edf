package testutil

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/auth"
)

const contextTokenKey = "userToken"

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "Full authentication is required to access this resource")
	errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid email, password or role")
	errForbidden          = echo.NewHTTPError(http.StatusForbidden, "Access denied")
)

// claims are the authorization claims carried by the tokens of the Backend.
type claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (b *Backend) generateToken(id core.Identity, now time.Time) (string, error) {
	b.mu.RLock()
	ttl := b.tokenTTL
	b.mu.RUnlock()

	clms := &claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "examcell",
			Subject:   id.ID,
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, clms)
	ss, err := token.SignedString(b.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (b *Backend) login(ctx echo.Context) error {
	creds := new(auth.Credentials)
	if err := ctx.Bind(creds); err != nil {
		return err
	}
	if err := creds.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.RLock()
	acc, ok := b.accounts[creds.Email]
	b.mu.RUnlock()
	if !ok || acc.Role != creds.Role {
		return errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)); err != nil {
		return errInvalidCredentials
	}

	token, err := b.generateToken(acc.Identity, time.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, auth.LoginResponse{
		Token: token,
		ID:    acc.ID,
		Email: acc.Email,
		Name:  acc.Name,
		Role:  acc.Role,
	})
}

func getContextClaims(ctx echo.Context) (claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if clms, ok := token.Claims.(*claims); ok {
			return *clms, nil
		}
	}
	return claims{}, errUnauthorized
}

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			clms, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if clms.Role != core.RoleAdmin {
				return errForbidden
			}
			return next(ctx)
		}
	}
}

// selfOrAdminMiddleware lets students through only for their own records.
func selfOrAdminMiddleware(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			clms, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if clms.Role == core.RoleAdmin || clms.Subject == pathParam(ctx, param) {
				return next(ctx)
			}
			return errForbidden
		}
	}
}

func pathParam(ctx echo.Context, name string) string {
	val := ctx.Param(name)
	if unescaped, err := url.PathUnescape(val); err == nil {
		return unescaped
	}
	return val
}
