// Package errors provides the structured error types surfaced by wirehttp.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrorType tags the terminal failure class of a request.
type ErrorType string

const (
	// ErrorTypeTimeout covers deadlines: no connection, no handshake, or no
	// response completion within the configured time, and caller cancellation.
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeTransport covers DNS, connect, TLS handshake, and socket-level
	// failures reported by the underlying transport.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeMalformed covers protocol violations in the response: bad
	// status line, bad chunk framing, or a stream that ends before the
	// declared length is satisfied.
	ErrorTypeMalformed ErrorType = "malformed"
	// ErrorTypeDecode covers body decoding requested on an incompatible body,
	// such as JSON access to a non-JSON payload.
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeValidation covers caller input rejected before any I/O.
	ErrorTypeValidation ErrorType = "validation"
)

// Error is the concrete error type returned by this module. Exactly one Error
// (or one *Response) terminates every request.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Host    string
	Port    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two Errors by type, so errors.Is can test failure classes.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Type == t.Type
	}
	return false
}

// NewDNSError reports a failed hostname resolution.
func NewDNSError(host string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("DNS lookup failed for host %s", host),
		Cause:   cause,
		Host:    host,
	}
}

// NewConnectError reports a failed TCP connection attempt.
func NewConnectError(host string, port int, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("failed to connect to %s:%d", host, port),
		Cause:   cause,
		Host:    host,
		Port:    port,
	}
}

// NewTLSError reports a failed TLS handshake.
func NewTLSError(host string, port int, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("TLS handshake failed for %s:%d", host, port),
		Cause:   cause,
		Host:    host,
		Port:    port,
	}
}

// NewSocketError reports a socket-level read or write failure mid-exchange.
func NewSocketError(operation string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("socket error during %s", operation),
		Cause:   cause,
	}
}

// NewTimeoutError reports an operation that did not finish in time.
func NewTimeoutError(operation string, timeout time.Duration) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, timeout),
	}
}

// NewCanceledError reports an operation aborted by caller cancellation.
func NewCanceledError(operation string) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("%s canceled by caller", operation),
		Cause:   context.Canceled,
	}
}

// NewMalformedError reports a response that violates HTTP/1.1 framing.
func NewMalformedError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeMalformed,
		Message: message,
		Cause:   cause,
	}
}

// NewDecodeError reports a body that cannot be decoded as requested.
func NewDecodeError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeDecode,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError reports caller input rejected before any I/O.
func NewValidationError(message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// IsTimeoutError reports whether err is a timeout of any flavor: a tagged
// timeout Error, a net.Error that timed out, or context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeTimeout
	}
	if netErr, ok := err.(net.Error); ok {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsTransportError reports whether err is tagged as a transport failure.
func IsTransportError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrorTypeTransport
}

// IsMalformedError reports whether err is tagged as a framing violation.
func IsMalformedError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrorTypeMalformed
}

// IsDecodeError reports whether err is tagged as a body decode failure.
func IsDecodeError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrorTypeDecode
}

// GetErrorType returns the type tag of a structured error, or "" otherwise.
func GetErrorType(err error) ErrorType {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return ""
}

// IsContextCanceled reports whether err stems from context cancellation.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsContextTimeout reports whether err stems from a context deadline.
func IsContextTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
