package http

import (
	"errors"
	"net/http"

	"merchflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the wire shape for every failure. Kind is a stable
// machine-readable string; Message is human-readable and never contains
// storage-layer error text.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error kinds exposed on the wire.
const (
	KindUnauthenticated   = "unauthenticated"
	KindDenied            = "denied"
	KindNotFound          = "not_found"
	KindInvalidTransition = "invalid_transition"
	KindConflict          = "conflict"
	KindHasDependents     = "has_dependents"
	KindBatchTooLarge     = "batch_too_large"
	KindValidationFailed  = "validation_failed"
	KindInternal          = "internal"
)

// kindOf classifies an error into its wire kind.
func kindOf(err error) string {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, errs.ErrDenied):
		return KindDenied
	case errors.Is(err, errs.ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, errs.ErrConflict):
		return KindConflict
	case errors.Is(err, errs.ErrHasDependents):
		return KindHasDependents
	case errors.Is(err, errs.ErrBatchTooLarge):
		return KindBatchTooLarge
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindValidationFailed
	default:
		return KindInternal
	}
}

func statusOf(kind string) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case KindConflict, KindHasDependents:
		return http.StatusConflict
	case KindBatchTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped error response. Internal errors are
// masked; domain errors keep their message, which never carries another
// tenant's identifiers.
func respondError(ctx echo.Context, err error) error {
	kind := kindOf(err)
	code := statusOf(kind)

	message := err.Error()
	if kind == KindInternal {
		message = "internal error"
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

// badRequest reports a malformed request body or parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    KindValidationFailed,
		Message: message,
	})
}
