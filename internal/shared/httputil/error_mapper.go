package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
// An empty Message means the response carries no body.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
// When Detailed is set the error text itself is used as message.
type ErrorMapping struct {
	Error    error
	Status   int
	Message  string
	Detailed bool
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
// It provides a centralized way to handle error mapping across handlers.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithMappings adds several mappings at once, keeping their order.
func (m *ErrorMapper) WithMappings(mappings ...ErrorMapping) *ErrorMapper {
	m.mappings = append(m.mappings, mappings...)
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	// Check registered mappings
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			if mapping.Detailed {
				return HTTPErrorInfo{Status: mapping.Status, Message: detail(err, mapping.Error)}
			}
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// detail returns the message of the innermost error wrapping target, dropping the
// context added by outer wrappers.
func detail(err, target error) string {
	msg := err.Error()
	for e := err; e != nil && e != target; e = errors.Unwrap(e) {
		if errors.Is(e, target) {
			msg = e.Error()
		}
	}
	return msg
}
