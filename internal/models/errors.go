package models

import (
	"fmt"
	"net/http"
	"strings"
)

// ValidationError is returned before any network call when required input is missing
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError is returned when the remote rejects the token (401/403)
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("authentication failed: %d %s", e.StatusCode, e.Message)
}

// APIError carries any other non-2xx response from the remote
type APIError struct {
	StatusCode int
	Message    string
	Resource   string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Resource != "" {
		return fmt.Sprintf("API error fetching %s: %d %s", e.Resource, e.StatusCode, msg)
	}
	return fmt.Sprintf("API error: %d %s", e.StatusCode, msg)
}

// TransportError wraps connection level failures
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidateAggregation checks that every input needed for a run is present.
func ValidateAggregation(creds Credentials, window DateWindow) error {
	missing := append(creds.missingFields(), window.missingFields()...)
	if len(missing) > 0 {
		return &ValidationError{
			Fields:  missing,
			Message: "Please enter username, token, and select a date range (missing: " + strings.Join(missing, ", ") + ")",
		}
	}
	if window.Start.After(*window.End) {
		return &ValidationError{
			Fields:  []string{"window"},
			Message: "Start date must not be after end date",
		}
	}
	return nil
}
