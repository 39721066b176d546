package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Catalog API & transport errors
var (
	ErrRequestFailed      = errors.New("catalog request failed")
	ErrTransport          = errors.New("catalog unreachable")
	ErrUnexpectedStatus   = errors.New("catalog returned a non-success status")
	ErrMalformedResponse  = errors.New("catalog returned a malformed response")
)

// Configuration & environment errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// RequestError is the single failure type of the catalog client. StatusCode is
// zero when the request never produced a response (DNS, refused connection,
// timeout); Cause then holds the transport error.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *RequestError) Unwrap() []error {
	wrapped := []error{ErrRequestFailed}
	switch {
	case e.StatusCode == 0:
		wrapped = append(wrapped, ErrTransport)
	case e.StatusCode < 200 || e.StatusCode > 299:
		wrapped = append(wrapped, ErrUnexpectedStatus)
	}
	if e.Cause != nil {
		wrapped = append(wrapped, e.Cause)
	}
	return wrapped
}

func NewTransportError(method, path string, cause error) *RequestError {
	return &RequestError{Method: method, Path: path, Cause: cause}
}

func NewStatusError(method, path string, statusCode int, body string) *RequestError {
	return &RequestError{Method: method, Path: path, StatusCode: statusCode, Body: body}
}

func NewMalformedResponseError(method, path string, statusCode int, cause error) *RequestError {
	return &RequestError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Cause:      fmt.Errorf("%w: %w", ErrMalformedResponse, cause),
	}
}

func NewConfigMissingError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Environment variable %s is not set", varName),
		Field:      varName,
	}
}

func NewConfigInvalidError(varName, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Environment variable %s is invalid: %s", varName, reason),
		Field:      varName,
	}
}

func IsRequestError(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// StatusCode extracts the remote status from err, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
