package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an AppError code to its HTTP status code.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response. Wrapped internal
// errors are never echoed to the client; only the public message is.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return c.Status(status).JSON(ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}

// RespondWithAppError replies using the status implied by the error itself.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return RespondWithError(c, appErr.HTTPStatus(), appErr)
	}
	return RespondWithError(c, fiber.StatusInternalServerError, err)
}
