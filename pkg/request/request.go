// Package request models an outgoing HTTP/1.1 request and its wire encoding.
package request

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/payrail/go-wirehttp/pkg/constants"
	"github.com/payrail/go-wirehttp/pkg/errors"
)

// Supported request methods.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

var methods = map[string]bool{
	MethodGet:    true,
	MethodPost:   true,
	MethodPut:    true,
	MethodPatch:  true,
	MethodDelete: true,
}

// Request describes one outgoing HTTP/1.1 request. Construct it, set headers
// and body, then hand it to a client; it must not be mutated after that.
//
// Header values are emitted on the wire verbatim. Supplying values that are
// not wire-safe (embedded CR/LF, non-ASCII control bytes) is the caller's
// responsibility; no escaping or folding is performed.
type Request struct {
	// Method is one of the Method* constants.
	Method string

	// Scheme selects the transport: "http" for plain TCP, "https" for TLS.
	Scheme string

	// Host is the target hostname or IP literal. It is also injected as the
	// Host header, overriding any caller-supplied value.
	Host string

	// Port is the target TCP port, 1-65535.
	Port int

	// Path is the request target. An empty Path is encoded as "/".
	Path string

	// Header holds caller-supplied headers, serialized in insertion order.
	Header Header

	// Body is sent verbatim after the header block. Content-Length is always
	// derived from it, overriding any caller-supplied value.
	Body []byte

	// Timeout bounds the whole exchange: connect, handshake, write, and full
	// response receipt. Zero means constants.DefaultRequestTimeout.
	Timeout time.Duration
}

// New returns a Request with the given target and an empty header set.
func New(method, scheme, host string, port int, path string) *Request {
	return &Request{
		Method: method,
		Scheme: scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}
}

// Validate checks the request target fields and returns a validation error
// describing the first problem found.
func (r *Request) Validate() error {
	if !methods[r.Method] {
		return errors.NewValidationError("method must be one of GET, POST, PUT, PATCH, DELETE")
	}
	if r.Scheme != "http" && r.Scheme != "https" {
		return errors.NewValidationError("scheme must be http or https")
	}
	if r.Host == "" {
		return errors.NewValidationError("host cannot be empty")
	}
	if r.Port <= 0 || r.Port > 65535 {
		return errors.NewValidationError("port must be between 1 and 65535")
	}
	return nil
}

// Encode serializes the request into its literal HTTP/1.1 wire form: request
// line, header lines in insertion order, a blank line, then the body.
//
// Caller-supplied Host and Content-Length headers are dropped; exactly one of
// each is appended after the caller headers, derived from the target host and
// the body length. Content-Length is always present, 0 for an empty body.
func (r *Request) Encode() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	path := r.Path
	if path == "" {
		path = "/"
	}

	var buf bytes.Buffer
	buf.Grow(256 + len(r.Body))

	buf.WriteString(r.Method)
	buf.WriteByte(' ')
	buf.WriteString(path)
	buf.WriteString(" HTTP/1.1\r\n")

	r.Header.each(func(key, value string) {
		if strings.EqualFold(key, "Host") || strings.EqualFold(key, "Content-Length") {
			return
		}
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	})

	buf.WriteString("Host: ")
	buf.WriteString(r.Host)
	buf.WriteString("\r\n")
	buf.WriteString("Content-Length: ")
	buf.WriteString(strconv.Itoa(len(r.Body)))
	buf.WriteString("\r\n\r\n")
	buf.Write(r.Body)

	return buf.Bytes(), nil
}

// URL renders the effective URL of the request for response provenance.
// The port is elided when it is the default for the scheme.
func (r *Request) URL() string {
	path := r.Path
	if path == "" {
		path = "/"
	}

	var b strings.Builder
	b.WriteString(r.Scheme)
	b.WriteString("://")
	b.WriteString(r.Host)
	if !(r.Scheme == "http" && r.Port == constants.DefaultPortHTTP) &&
		!(r.Scheme == "https" && r.Port == constants.DefaultPortHTTPS) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(r.Port))
	}
	if !strings.HasPrefix(path, "/") {
		b.WriteByte('/')
	}
	b.WriteString(path)
	return b.String()
}
