// Package wirehttp is a minimal HTTP/1.1 client built directly on raw stream
// sockets, with an optional in-place upgrade to TLS. It sends one request per
// connection (no pooling, no redirects, no HTTP/2) and frames the response by
// Content-Length, chunked transfer encoding, or connection close.
package wirehttp

import (
	"context"

	"github.com/payrail/go-wirehttp/pkg/client"
	"github.com/payrail/go-wirehttp/pkg/constants"
	"github.com/payrail/go-wirehttp/pkg/errors"
	"github.com/payrail/go-wirehttp/pkg/request"
	"github.com/payrail/go-wirehttp/pkg/response"
	"github.com/payrail/go-wirehttp/pkg/timing"
)

// Version is the current version of the wirehttp library.
const Version = "1.0.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}

// Re-export key types for easier usage.
type (
	// Options controls how the Client establishes connections and reads responses.
	Options = client.Options

	// Request describes one outgoing HTTP/1.1 request.
	Request = request.Request

	// Header is an ordered, case-insensitive header list.
	Header = request.Header

	// Response is one completed HTTP response.
	Response = response.Response

	// Summary is the compact view of a response outcome.
	Summary = response.Summary

	// Metrics captures per-phase timing information for a request.
	Metrics = timing.Metrics

	// Error is the structured error type carried by every failure.
	Error = errors.Error
)

// Re-export the failure classes.
const (
	ErrorTypeTimeout    = errors.ErrorTypeTimeout
	ErrorTypeTransport  = errors.ErrorTypeTransport
	ErrorTypeMalformed  = errors.ErrorTypeMalformed
	ErrorTypeDecode     = errors.ErrorTypeDecode
	ErrorTypeValidation = errors.ErrorTypeValidation
)

// Client executes HTTP/1.1 requests, one connection per request. It is safe
// for concurrent use.
type Client struct {
	inner *client.Client
}

// New returns a Client with the given options.
func New(opts Options) *Client {
	return &Client{inner: client.New(opts)}
}

// Do executes the request and settles with exactly one terminal outcome.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.inner.Do(ctx, req)
}

// NewRequest builds a request for an arbitrary method.
func NewRequest(method, scheme, host string, port int, path string) *Request {
	return request.New(method, scheme, host, port, path)
}

// Get builds a GET request.
func Get(scheme, host string, port int, path string) *Request {
	return request.New(request.MethodGet, scheme, host, port, path)
}

// Post builds a POST request carrying body.
func Post(scheme, host string, port int, path string, body []byte) *Request {
	r := request.New(request.MethodPost, scheme, host, port, path)
	r.Body = body
	return r
}

// Put builds a PUT request carrying body.
func Put(scheme, host string, port int, path string, body []byte) *Request {
	r := request.New(request.MethodPut, scheme, host, port, path)
	r.Body = body
	return r
}

// Patch builds a PATCH request carrying body.
func Patch(scheme, host string, port int, path string, body []byte) *Request {
	r := request.New(request.MethodPatch, scheme, host, port, path)
	r.Body = body
	return r
}

// Delete builds a DELETE request.
func Delete(scheme, host string, port int, path string) *Request {
	return request.New(request.MethodDelete, scheme, host, port, path)
}

// StatusText returns the reason phrase for a status code, or "Unknown
// Status" for unrecognized codes.
func StatusText(code int) string {
	return response.StatusText(code)
}

// IsTimeoutError checks if an error is a timeout error.
func IsTimeoutError(err error) bool {
	return errors.IsTimeoutError(err)
}

// GetErrorType returns the error type if it's a structured error.
func GetErrorType(err error) string {
	return string(errors.GetErrorType(err))
}

// DefaultOptions returns options suitable for common use cases.
func DefaultOptions() Options {
	return Options{
		ConnTimeout:  constants.DefaultConnTimeout,
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
	}
}

// DefaultTimeout is the overall request timeout applied when a Request does
// not set one.
const DefaultTimeout = constants.DefaultRequestTimeout
