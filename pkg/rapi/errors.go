package rapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError reports invalid client construction input or a malformed
// request path. It is raised before any network activity takes place.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "invalid client configuration: " + e.Reason
}

// InvalidQueryError reports a query parameter whose value cannot be sent on
// the wire. The RAPI accepts scalars and lists of scalars only, so a nested
// mapping is always a caller bug.
type InvalidQueryError struct {
	Key   string
	Value interface{}
}

// Error implements the error interface.
func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query value for %q: %T is not a scalar or list of scalars", e.Key, e.Value)
}

// UnreachableError reports that the transport could not reach the RAPI
// endpoint at all, for example when the connection was refused.
type UnreachableError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that an exchange exceeded the configured timeout.
type TimeoutError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out connecting to %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-200 response from the RAPI. The status code is
// always carried so callers can branch on it; Body holds whatever the server
// sent alongside the status, which is usually a short failure description.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("remote API returned %d: %s", e.StatusCode, e.Body)
	}

	return fmt.Sprintf("remote API returned %d", e.StatusCode)
}

// DecodeError reports a non-empty response body that was not valid JSON.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedVersionError reports a server speaking an incompatible API
// version. A client that received this error must not be used further.
type UnsupportedVersionError struct {
	Version int
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("cannot work with remote API version %d (want %d)", e.Version, SupportedAPIVersion)
}

// Static errors that can be wrapped with context.
var (
	// ErrNoContent indicates a successful response carried an empty body.
	ErrNoContent = errors.New("response has no content")

	// ErrFeatureUnsupported indicates the server does not advertise a
	// feature an operation depends on.
	ErrFeatureUnsupported = errors.New("feature not supported by server")

	// ErrConfigRequired is returned when a nil config is supplied.
	ErrConfigRequired = errors.New("config is required")

	// ErrEvacuationTargets is returned when both an iallocator and a
	// remote node are given for a node evacuation.
	ErrEvacuationTargets = errors.New("only one of iallocator or remote node can be used")

	// ErrJobFailed is returned by job polling when a job reaches a
	// terminal state other than success.
	ErrJobFailed = errors.New("job failed")
)

// IsStatus checks whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}

// IsNotFound checks if the error is a 404 from the server.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsTimeout checks if the error is a transport timeout.
func IsTimeout(err error) bool {
	timeoutErr := &TimeoutError{}

	return errors.As(err, &timeoutErr)
}

// IsUnreachable checks if the error indicates the endpoint could not be
// reached at all.
func IsUnreachable(err error) bool {
	unreachableErr := &UnreachableError{}

	return errors.As(err, &unreachableErr)
}
