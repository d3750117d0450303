package services

import (
	"errors"
	"fmt"
)

// ErrAnalysisInProgress is returned when a session already has an analysis running.
var ErrAnalysisInProgress = errors.New("analysis already in progress")

// ExtractionError covers every failure to turn an uploaded resume into text.
type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error extracting text: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("error extracting text: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError reports missing or blank user input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ModelError covers transport failures and unusable model output.
type ModelError struct {
	Message string
	Err     error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error generating response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("error generating response: %s", e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func newExtractionError(message string, err error) *ExtractionError {
	return &ExtractionError{Message: message, Err: err}
}

func newModelError(message string, err error) *ModelError {
	return &ModelError{Message: message, Err: err}
}
