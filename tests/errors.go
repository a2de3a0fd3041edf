package testutil

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

// ErrorBody is the error payload of the Examcell API.
type ErrorBody struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func notFound(what, key string) error {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%s not found with id: %s", what, key))
}

func conflict(what, key string) error {
	return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("%s already exists with id: %s", what, key))
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func (b *Backend) errorHandler(err error, ctx echo.Context) {
	body := ErrorBody{Timestamp: time.Now().UTC(), Path: ctx.Request().URL.Path}

	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if origErr == middleware.ErrJWTMissing {
			body.Status = http.StatusUnauthorized
			body.Message = errUnauthorized.Message.(string)
			break
		}
		body.Status = origErr.Code
		body.Message = fmt.Sprint(origErr.Message)
	case *core.ValidationError:
		body.Status = http.StatusBadRequest
		body.Message = "Validation failed"
		body.Errors = origErr.FieldMap()
	default:
		body.Status = http.StatusInternalServerError
		body.Message = err.Error()
	}
	body.Error = http.StatusText(body.Status)

	if !ctx.Response().Committed {
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(body.Status)
		} else {
			err = ctx.JSON(body.Status, body)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
