package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// ErrorHandler renders every error returned by a handler as an APIError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return newError(c, fe.Code, "not_found", fe.Message)
		case fiber.StatusMethodNotAllowed:
			return newError(c, fe.Code, "method_not_allowed", fe.Message)
		}
		if fe.Code < 500 {
			return newError(c, fe.Code, "bad_request", fe.Message)
		}
	}
	return newError(c, fiber.StatusInternalServerError, "internal_error", "internal server error")
}
