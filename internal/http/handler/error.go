package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/http/middleware"
)

// Client-facing messages. The upload and ask texts are part of the public contract.
const (
	msgNoFile        = "No file uploaded."
	msgProcessFailed = "Failed to process file."
	msgUploaded      = "File uploaded and processed."
	msgAskRequired   = "docId and question are required."
	msgDocNotFound   = "Document not found."
	msgAnswerFailed  = "Failed to get answer from AI."
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Error     string `json:"error" example:"Document not found."`
	Code      string `json:"code,omitempty" example:"DOCUMENT_NOT_FOUND"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FILE_REQUIRED", "DOCUMENT_NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		Code:      code,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// It covers unmatched routes, wrong methods, oversized bodies and recovered panics.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			slog.ErrorContext(c.UserContext(), "unhandled_error",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error(),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
