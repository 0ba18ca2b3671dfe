package catalog

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies catalog API failures.
type ErrorCode string

const (
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeBadRequest   ErrorCode = "bad_request"
	CodeNotFound     ErrorCode = "not_found"
	CodeServerError  ErrorCode = "server_error"
	CodeNetworkError ErrorCode = "network_error"
	CodeUnknown      ErrorCode = "unknown"
)

// APIError is returned by every failing Client call.
// StatusCode is zero when no HTTP response was received.
type APIError struct {
	Kind       ErrorCode
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the transport error, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Code returns the error classification.
func (e *APIError) Code() string { return string(e.Kind) }

// codeForStatus maps an HTTP status to an ErrorCode.
func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusBadRequest:
		return CodeBadRequest
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= http.StatusInternalServerError:
		return CodeServerError
	default:
		return CodeUnknown
	}
}

func statusError(status int, msg string) *APIError {
	if msg == "" {
		msg = fmt.Sprintf("Plugin API error: %d", status)
	}
	return &APIError{Kind: codeForStatus(status), StatusCode: status, Message: msg}
}

func networkError(msg string, err error) *APIError {
	return &APIError{Kind: CodeNetworkError, Message: msg, Err: err}
}
