package ai

import (
	"errors"
	"fmt"
)

// CompletionError is the single error kind returned by SendMessage. Type,
// Param and Code mirror the endpoint's error classification when the failure
// supplies one; they are left empty otherwise, never guessed.
type CompletionError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("completion failed: %s (type: %s)", e.Message, e.Type)
	}
	return fmt.Sprintf("completion failed: %s", e.Message)
}

// asCompletionError normalizes any failure into a *CompletionError,
// preserving one that already is.
func asCompletionError(err error) *CompletionError {
	var cerr *CompletionError
	if errors.As(err, &cerr) {
		return cerr
	}
	return &CompletionError{Message: err.Error()}
}
