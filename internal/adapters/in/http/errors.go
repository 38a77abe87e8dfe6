package http

import (
	"errors"
	"net/http"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const retryMessage = "something went wrong, try again"

// statusOf maps the error family to an HTTP status. Caller mistakes and
// missing objects are told apart from failures worth retrying.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ports.ErrDuplicateIdentifier):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrDataAccess):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// publicMessage is the message shown to API clients. Infrastructure details
// stay in the logs.
func publicMessage(err error) string {
	switch statusOf(err) {
	case http.StatusConflict:
		return "number already in use"
	case http.StatusBadRequest:
		return "invalid input: " + err.Error()
	case http.StatusNotFound:
		return err.Error()
	}
	return retryMessage
}

func invalidParam(name string, cause error) error {
	return errs.NewValueIsInvalidErrorWithCause(name, cause)
}

// errorHandler replaces echo's default handler so every failure has the
// Error body.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			message string
		)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = http.StatusText(status)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		} else {
			status = statusOf(err)
			message = publicMessage(err)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Error{Code: status, Message: message})
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}

// requestValidator plugs validator/v10 into echo's Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
