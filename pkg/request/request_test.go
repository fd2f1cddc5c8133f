package request

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeRequestLine(t *testing.T) {
	req := New(MethodGet, "http", "example.com", 80, "/v1/ping")

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.HasPrefix(encoded, []byte("GET /v1/ping HTTP/1.1\r\n")) {
		t.Errorf("unexpected request line: %q", firstLine(encoded))
	}
	if !bytes.HasSuffix(encoded, []byte("\r\n\r\n")) {
		t.Error("request without body must end with the blank CRLF line")
	}
}

func TestEncodeEmptyPathBecomesSlash(t *testing.T) {
	req := New(MethodGet, "http", "example.com", 80, "")

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.HasPrefix(encoded, []byte("GET / HTTP/1.1\r\n")) {
		t.Errorf("unexpected request line: %q", firstLine(encoded))
	}
}

func TestEncodeInjectsHostAndContentLengthExactlyOnce(t *testing.T) {
	req := New(MethodPost, "http", "api.example.com", 8080, "/charge")
	req.Body = []byte(`{"amount":100}`)

	// Caller-supplied values must be overridden, not duplicated.
	req.Header.Set("Host", "spoofed.example.com")
	req.Header.Set("content-length", "9999")

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	text := string(encoded)

	if got := strings.Count(text, "Host: "); got != 1 {
		t.Errorf("expected exactly one Host header, got %d", got)
	}
	if !strings.Contains(text, "Host: api.example.com\r\n") {
		t.Error("Host header must come from the target host")
	}
	if got := strings.Count(strings.ToLower(text), "content-length: "); got != 1 {
		t.Errorf("expected exactly one Content-Length header, got %d", got)
	}
	if !strings.Contains(text, "Content-Length: 14\r\n") {
		t.Error("Content-Length must be derived from the body")
	}
}

func TestEncodeContentLengthZeroForEmptyBody(t *testing.T) {
	req := New(MethodGet, "http", "example.com", 80, "/")

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(encoded), "Content-Length: 0\r\n") {
		t.Error("empty body must still carry Content-Length: 0")
	}
}

func TestEncodePreservesHeaderOrder(t *testing.T) {
	req := New(MethodGet, "http", "example.com", 80, "/")
	req.Header.Set("X-First", "1")
	req.Header.Set("X-Second", "2")
	req.Header.Set("X-Third", "3")
	req.Header.Set("X-Second", "two") // replace in place, keep position

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	text := string(encoded)

	first := strings.Index(text, "X-First: 1")
	second := strings.Index(text, "X-Second: two")
	third := strings.Index(text, "X-Third: 3")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("missing headers in output:\n%s", text)
	}
	if !(first < second && second < third) {
		t.Error("headers must be serialized in insertion order")
	}
}

func TestEncodeBodyAppendedVerbatim(t *testing.T) {
	body := []byte("raw\x00bytes\r\nnot touched")
	req := New(MethodPut, "http", "example.com", 80, "/blob")
	req.Body = body

	encoded, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	idx := bytes.Index(encoded, []byte("\r\n\r\n"))
	if idx < 0 {
		t.Fatal("no header terminator in encoded request")
	}
	if got := encoded[idx+4:]; !bytes.Equal(got, body) {
		t.Errorf("body not appended verbatim: %q", got)
	}
}

func TestEncodeValidation(t *testing.T) {
	cases := []struct {
		name string
		req  *Request
	}{
		{"bad method", New("TRACE", "http", "example.com", 80, "/")},
		{"bad scheme", New(MethodGet, "ftp", "example.com", 80, "/")},
		{"empty host", New(MethodGet, "http", "", 80, "/")},
		{"zero port", New(MethodGet, "http", "example.com", 0, "/")},
		{"port too large", New(MethodGet, "http", "example.com", 70000, "/")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.req.Encode(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestHeaderLookupIsCaseInsensitive(t *testing.T) {
	var h Header
	h.Set("Content-Type", "application/json")

	if v, ok := h.Get("content-type"); !ok || v != "application/json" {
		t.Errorf("Get(content-type) = %q, %v", v, ok)
	}
	if v, ok := h.Get("CONTENT-TYPE"); !ok || v != "application/json" {
		t.Errorf("Get(CONTENT-TYPE) = %q, %v", v, ok)
	}

	h.Set("CONTENT-TYPE", "text/plain")
	if h.Len() != 1 {
		t.Errorf("Set with different casing must replace, got %d entries", h.Len())
	}

	h.Del("Content-type")
	if h.Len() != 0 {
		t.Errorf("Del must fold case, %d entries remain", h.Len())
	}
}

func TestURL(t *testing.T) {
	cases := []struct {
		scheme string
		host   string
		port   int
		path   string
		want   string
	}{
		{"http", "example.com", 80, "/v1/ping", "http://example.com/v1/ping"},
		{"http", "example.com", 8080, "/v1/ping", "http://example.com:8080/v1/ping"},
		{"https", "example.com", 443, "/", "https://example.com/"},
		{"https", "example.com", 80, "/", "https://example.com:80/"},
		{"http", "example.com", 80, "", "http://example.com/"},
	}

	for _, tc := range cases {
		req := New(MethodGet, tc.scheme, tc.host, tc.port, tc.path)
		if got := req.URL(); got != tc.want {
			t.Errorf("URL() = %q, want %q", got, tc.want)
		}
	}
}

func TestRequestTimeoutFieldIsOptional(t *testing.T) {
	req := New(MethodGet, "http", "example.com", 80, "/")
	if req.Timeout != 0 {
		t.Error("zero value Timeout expected")
	}
	req.Timeout = 5 * time.Second
	if _, err := req.Encode(); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
}

func firstLine(b []byte) string {
	if i := bytes.Index(b, []byte("\r\n")); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
