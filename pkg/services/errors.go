package services

import (
	"errors"
	"net/http"

	"github.com/primalspirits/signup-page/pkg/clients/brevo"
)

// Public error texts of the signup endpoint
const (
	MessageMissingFields = "All fields are required."
	MessageMissingAPIKey = "Internal server error: missing API key"
	MessageGeneric       = "Something went wrong."
)

// ErrorStatus maps a Register error to the HTTP status and message returned
// to the caller. Provider statuses and messages are passed through unchanged.
func ErrorStatus(err error) (int, string) {
	var perr *brevo.ProviderError
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, MessageMissingFields
	case errors.Is(err, ErrConfiguration):
		return http.StatusInternalServerError, MessageMissingAPIKey
	case errors.As(err, &perr):
		status := perr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := perr.Message
		if message == "" {
			message = MessageGeneric
		}
		return status, message
	default:
		return http.StatusInternalServerError, MessageGeneric
	}
}
