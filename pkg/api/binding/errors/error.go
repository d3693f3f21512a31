package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/modelplane/modelplane/pkg/api/types/errors"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
)

type ErrorMessageOption func(in *apierr.ErrorMessage) *apierr.ErrorMessage

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *apierr.ErrorMessage) *apierr.ErrorMessage {
		if advice != "" {
			in.Advice = advice
		}
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *apierr.ErrorMessage) *apierr.ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := apierr.ErrorMessage{Reason: reason}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(code, msg).SetInternal(msg)
}

func NotFound() *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, "not found")
}

func BadRequest(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest,
		"bad request",
		WithAdvice(advice),
		WithError(err),
	)
}

func Conflict(message string, options ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict,
		message,
		options...,
	)
}

func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError,
		"unexpected error",
		WithError(err),
	)
}

func Unauthorized(message string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnauthorized,
		message,
		WithError(err),
	)
}

func Forbidden(message string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusForbidden,
		message,
		WithError(err),
	)
}

func ServiceUnavailable(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusServiceUnavailable,
		"service unavailable temporaly",
		WithAdvice(advice),
		WithError(err),
	)
}

// FromDomain maps a typed domain error to its HTTP rendition.
func FromDomain(err error) *echo.HTTPError {
	switch {
	case kerr.AsUnauthorized(err):
		return Forbidden("the action is not allowed on this project", err)
	case kerr.AsNotFound(err):
		return NewErrorMessage(http.StatusNotFound, "not found", WithError(err))
	case kerr.AsAlreadyExists(err):
		return Conflict("already exists", WithError(err))
	case kerr.AsRegistryUnreachable(err):
		return ServiceUnavailable("the project's model registry does not answer; retry later", err)
	default:
		return InternalServerError(err)
	}
}
