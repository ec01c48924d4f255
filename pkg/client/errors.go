package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSaveInFlight is returned when a save is attempted while another save
// from the same cache has not completed.
var ErrSaveInFlight = errors.New("a save is already in progress")

// ErrClosed is returned by operations on a closed SyncCache.
var ErrClosed = errors.New("sync cache closed")

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input is rejected, either locally before
// any request is sent or by the server with a 400.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation: " + strings.Join(msgs, "; ")
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// PartialRefreshError reports which parts of a refresh failed. Data for the
// other parts was applied.
type PartialRefreshError struct {
	Failed map[Part]error
}

func (e *PartialRefreshError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, p := range allParts {
		if err, ok := e.Failed[p]; ok {
			parts = append(parts, fmt.Sprintf("%s: %v", p, err))
		}
	}
	return "partial refresh: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *PartialRefreshError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, p := range allParts {
		if err, ok := e.Failed[p]; ok {
			out = append(out, err)
		}
	}
	return out
}
