package handler

import (
	"github.com/gofiber/fiber/v2"

	"smartsummary/internal/failure"
	"smartsummary/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// failureStatus maps failure kinds to HTTP status codes.
var failureStatus = map[failure.Kind]int{
	failure.KindEmptyInput:      fiber.StatusBadRequest,
	failure.KindDecodeFailure:   fiber.StatusBadRequest,
	failure.KindInvalidSettings: fiber.StatusBadRequest,
	failure.KindModelFailure:    fiber.StatusBadGateway,
	failure.KindExportFailure:   fiber.StatusInternalServerError,
	failure.KindNotFound:        fiber.StatusNotFound,
}

// writeFailure translates a service error into the envelope. Errors without
// a failure kind are reported as internal errors.
func writeFailure(c *fiber.Ctx, err error) error {
	kind := failure.KindOf(err)
	status, ok := failureStatus[kind]
	if !ok {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return writeError(c, status, string(kind), failure.MessageOf(err))
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if failure.KindOf(err) != "" {
			return writeFailure(c, err)
		}

		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body is too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
