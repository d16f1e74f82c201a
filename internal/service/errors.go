package service

import (
	"errors"
	"fmt"
)

// Errors shared across services.
var (
	ErrValidation       = errors.New("validation failed")
	ErrPlanNotFound     = errors.New("training plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this training plan")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrRunNotFound      = errors.New("run not found")
	ErrDuplicateRun     = errors.New("run with this external id already exists in the plan")
	ErrDocumentNotFound = errors.New("schedule document not found")
)

// ValidationError names the offending input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
