package http

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status     int                `json:"status"`
	Code       string             `json:"code"`    // bad_request, not_found, validation_failed, internal_error, ...
	Message    string             `json:"message"` // Human-readable message
	RequestID  string             `json:"request_id,omitempty"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: requestID(c),
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errValidation returns a 422 error listing every violation.
func errValidation(c *fiber.Ctx, ve *domain.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(APIError{
		Status:     fiber.StatusUnprocessableEntity,
		Code:       "validation_failed",
		Message:    "request failed validation",
		RequestID:  requestID(c),
		Violations: ve.Violations,
	})
}

// respondError maps a service error onto a response. Store failures are
// logged with their cause and reported without it.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return errValidation(c, ve)
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, "resource not found")
	case errors.Is(err, context.DeadlineExceeded):
		// handed back to the timeout middleware, which answers 408
		return err
	}

	slog.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	return errInternal(c, "internal server error")
}

// ErrorHandler renders errors that escape handlers (unknown routes, body
// limit, timeouts, panics recovered by middleware) as APIError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
		switch status {
		case fiber.StatusNotFound:
			code = "not_found"
		case fiber.StatusRequestTimeout:
			code = "timeout"
		case fiber.StatusRequestEntityTooLarge:
			code = "payload_too_large"
		case fiber.StatusMethodNotAllowed:
			code = "method_not_allowed"
		case fiber.StatusUpgradeRequired:
			code = "upgrade_required"
		default:
			if status < 500 {
				code = "bad_request"
			}
		}
	} else {
		slog.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
	}

	return newError(c, status, code, message)
}

func requestID(c *fiber.Ctx) string {
	reqID, _ := c.Locals("requestid").(string)
	return reqID
}
