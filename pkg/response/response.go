// Package response holds the completed HTTP response value and its read
// accessors.
package response

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/payrail/go-wirehttp/pkg/errors"
	"github.com/payrail/go-wirehttp/pkg/timing"
)

// Response is one completed HTTP response. It is produced exactly once per
// request and must be treated as read-only afterwards; every accessor is a
// pure read over the same value and never touches the network again.
type Response struct {
	// StatusCode is the numeric status from the status line.
	StatusCode int

	// Proto is the protocol token from the status line, e.g. "HTTP/1.1".
	Proto string

	// Reason is the reason phrase the server sent, possibly empty.
	Reason string

	// Headers maps lower-cased header names to values. When the server sent
	// a header name more than once, the last occurrence won.
	Headers map[string]string

	// Body is the fully assembled body.
	Body []byte

	// URL is the effective URL of the request that produced this response.
	URL string

	// Metrics carries the per-phase timings of the exchange.
	Metrics timing.Metrics
}

// Summary is a compact view of the response outcome.
type Summary struct {
	OK         bool
	Status     int
	StatusText string
	URL        string
}

// Header returns the value of a header, matching the name case-insensitively.
// It returns "" when the header is absent.
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// OK reports whether the status code is in [200, 300).
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the reason phrase registered for the status code, or
// "Unknown Status" for unrecognized codes. The server's own reason phrase is
// available as Reason.
func (r *Response) StatusText() string {
	return StatusText(r.StatusCode)
}

// Summary returns the synthesized result summary.
func (r *Response) Summary() Summary {
	return Summary{
		OK:         r.OK(),
		Status:     r.StatusCode,
		StatusText: r.StatusText(),
		URL:        r.URL,
	}
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Reader returns a fresh sequential reader over the body. Each call starts
// from the beginning.
func (r *Response) Reader() io.Reader {
	return bytes.NewReader(r.Body)
}

// JSON decodes the body as JSON. A body that is not syntactically valid JSON
// (including an empty body) yields a decode error.
func (r *Response) JSON() (any, error) {
	if !gjson.ValidBytes(r.Body) {
		return nil, errors.NewDecodeError("response body is not valid JSON", nil)
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, errors.NewDecodeError("response body is not valid JSON", err)
	}
	return v, nil
}

// Query evaluates a gjson path expression against the body. It fails with a
// decode error when the body is not valid JSON; an unmatched path returns a
// non-existent Result, not an error.
func (r *Response) Query(path string) (gjson.Result, error) {
	if !gjson.ValidBytes(r.Body) {
		return gjson.Result{}, errors.NewDecodeError("response body is not valid JSON", nil)
	}
	return gjson.GetBytes(r.Body, path), nil
}
