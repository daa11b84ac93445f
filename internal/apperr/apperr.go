// Package apperr defines the error kinds the service layer returns and the
// HTTP status each kind maps to at the edge.
package apperr

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodePrecondition       Code = "PRECONDITION_FAILED"
	CodeCampaignClosed     Code = "CAMPAIGN_CLOSED"
	CodeInfluencerNotEligible Code = "INFLUENCER_NOT_ELIGIBLE"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	CodeValidation:            fiber.StatusBadRequest,
	CodeUnauthorized:          fiber.StatusUnauthorized,
	CodeForbidden:             fiber.StatusForbidden,
	CodeNotFound:              fiber.StatusNotFound,
	CodeConflict:              fiber.StatusConflict,
	CodePrecondition:          fiber.StatusUnprocessableEntity,
	CodeCampaignClosed:        fiber.StatusBadRequest,
	CodeInfluencerNotEligible: fiber.StatusForbidden,
	CodeRateLimited:           fiber.StatusTooManyRequests,
	CodeInternal:              fiber.StatusInternalServerError,
}

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// HTTPStatus returns the transport status for the error's code.
func (e *Error) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// From extracts an *Error from err, converting unknown errors to
// CodeInternal so datastore failures never leak raw messages.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: CodeInternal, Message: "internal server error", cause: err}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
