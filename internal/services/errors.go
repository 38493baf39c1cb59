package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SatishBanchhere/abc-classes-sub002/internal/errors"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingParam   = errors.New("missing required parameter")
	ErrInternalError  = errors.New("internal server error")

	// Report specific errors
	ErrUnknownView     = errors.New("unknown report view")
	ErrExamTypeMissing = errors.New("exam type is required")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MissingParamError names the view-specific parameter a request left out.
type MissingParamError struct {
	Param string `json:"param"`
	View  string `json:"view"`
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required parameter %q for view %q", e.Param, e.View)
}

func (e *MissingParamError) Unwrap() error {
	return ErrMissingParam
}

// ===== ERROR HELPERS =====

func NewMissingParamError(param, view string) *MissingParamError {
	return &MissingParamError{Param: param, View: view}
}

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsMissingParam checks if error represents a missing view parameter
func IsMissingParam(err error) bool {
	return errors.Is(err, ErrMissingParam)
}

// IsInvalidRequest checks if error should surface as a client error
func IsInvalidRequest(err error) bool {
	if errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrMissingParam) ||
		errors.Is(err, ErrUnknownView) ||
		errors.Is(err, ErrExamTypeMissing) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsStoreUnavailable checks if error originates in the content store
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, repositories.ErrStoreUnavailable)
}
