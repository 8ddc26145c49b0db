package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// shortenRequest represents the structure for a request to shorten a URL.
type shortenRequest struct {
	LongURL string `json:"long_url" validate:"required"`
}

// shortenResponse carries the short URL composed from the base URL and the short code.
type shortenResponse struct {
	ShortURL string `json:"short_url"`
}

// qrRequest represents the query parameters of a QR code request.
type qrRequest struct {
	URL string `json:"url" validate:"required"`
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []validationError `json:"details,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Error: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Error: "invalid request body",
	}

	invalidURLResponse = errorResponse{
		Error: "URL must start with http:// or https://",
	}

	shortCodeNotFoundResponse = errorResponse{
		Error: "Short code not found",
	}

	qrGenerateErrorResponse = errorResponse{
		Error: "Failed to generate QR code",
	}

	qrEncodeErrorResponse = errorResponse{
		Error: "Failed to encode QR image",
	}

	serverErrorResponse = errorResponse{
		Error: "server error occurred",
	}
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Error:   "validation error",
		Details: getValidationErrors(err),
	}
}
