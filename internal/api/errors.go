package api

import (
	"encoding/json"
	"fmt"
)

// DefaultErrorCode is used when a failure response carries no machine code.
const DefaultErrorCode = "REQUEST_FAILED"

// Error is the typed failure every unsuccessful API call surfaces.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
}

// errorEnvelope matches the server's {"error": {code, message, details?}}
// failure shape.
type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// newError builds the typed error for a failed response. A missing or
// malformed error body is tolerated: defaults are substituted and the call
// still fails.
func newError(status int, body []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Code:    DefaultErrorCode,
		Message: fmt.Sprintf("Request failed with status %d", status),
	}
	if len(body) == 0 {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}
	if envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
	}
	if envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
	}
	apiErr.Details = envelope.Error.Details
	return apiErr
}
