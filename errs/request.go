package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Authentication & session errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingSession     = errors.New("missing session")
	ErrInvalidSession     = errors.New("invalid session")
)

// Form & input-validation errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrNoFileSelected       = errors.New("no file selected")
	ErrUploadInProgress     = errors.New("upload already in progress")
	ErrNoDialogOpen         = errors.New("no dialog open")
)

func NewInvalidSessionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidSession,
		Details:    "Session is invalid or expired",
		Field:      "session",
		Cause:      cause,
	}
}

// NewMissingRequiredFieldError annotates an empty required field; label is
// the name shown to the operator.
func NewMissingRequiredFieldError(fieldName, label string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("%s is required", label),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName, label, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("%s %s", label, reason),
		Field:      fieldName,
	}
}

// ValidationErrors maps a form field name to the message shown next to it.
// A non-empty ValidationErrors blocks submission before any request is made.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field error under its field name.
func (v ValidationErrors) Add(err *ApiErr) {
	v[err.Field] = err.Details
}

// Is lets errors.Is(err, ErrMissingRequiredField) match any validation failure.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrMissingRequiredField || target == ErrInvalidField
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsInvalidSession(err error) bool {
	return errors.Is(err, ErrInvalidSession) || errors.Is(err, ErrMissingSession)
}

func IsValidationError(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
