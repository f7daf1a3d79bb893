package webhook

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Result is the response body of every webhook request.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Success(message string) Result {
	return Result{Success: true, Message: message}
}

func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

// StatusPolicy holds the deployment-specific parts of the status mapping.
type StatusPolicy struct {
	// AckCorrelationFailures answers 200 instead of 500 when an event cannot
	// be linked to a user, which stops provider retries.
	AckCorrelationFailures bool
	// AckDuplicates answers 200 instead of 500 when the event collides with an
	// entity that is already stored.
	AckDuplicates bool
}

// HTTPStatus maps a dispatch outcome to the status code sent to the provider.
func (p StatusPolicy) HTTPStatus(res Result, err error) int {
	if err == nil {
		if res.Success {
			return fiber.StatusOK
		}
		return fiber.StatusInternalServerError
	}

	kind := KindOf(err)
	switch {
	case errors.Is(kind, ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(kind, ErrDecode):
		return fiber.StatusBadRequest
	case errors.Is(kind, ErrDuplicate):
		if p.AckDuplicates {
			return fiber.StatusOK
		}
		return fiber.StatusInternalServerError
	case errors.Is(kind, ErrCorrelation):
		if p.AckCorrelationFailures {
			return fiber.StatusOK
		}
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
