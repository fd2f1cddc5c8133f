package response

import (
	"io"
	"testing"

	"github.com/payrail/go-wirehttp/pkg/errors"
)

func TestStatusText(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{200, "OK"},
		{201, "Created"},
		{301, "Moved Permanently"},
		{404, "Not Found"},
		{500, "Internal Server Error"},
		{999, "Unknown Status"},
		{0, "Unknown Status"},
	}
	for _, tc := range cases {
		if got := StatusText(tc.code); got != tc.want {
			t.Errorf("StatusText(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestOKBoundaries(t *testing.T) {
	cases := []struct {
		code int
		want bool
	}{
		{199, false},
		{200, true},
		{299, true},
		{300, false},
		{301, false},
		{404, false},
	}
	for _, tc := range cases {
		r := &Response{StatusCode: tc.code}
		if got := r.OK(); got != tc.want {
			t.Errorf("OK() for %d = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestHeaderLookupIsCaseInsensitive(t *testing.T) {
	r := &Response{Headers: map[string]string{"content-type": "application/json"}}

	for _, name := range []string{"content-type", "Content-Type", "CONTENT-TYPE"} {
		if got := r.Header(name); got != "application/json" {
			t.Errorf("Header(%q) = %q", name, got)
		}
	}
	if got := r.Header("x-missing"); got != "" {
		t.Errorf("Header(x-missing) = %q, want empty", got)
	}
}

func TestSummary(t *testing.T) {
	r := &Response{StatusCode: 404, URL: "http://example.com/missing"}
	s := r.Summary()

	if s.OK {
		t.Error("OK must be false for 404")
	}
	if s.Status != 404 || s.StatusText != "Not Found" {
		t.Errorf("summary = %+v", s)
	}
	if s.URL != "http://example.com/missing" {
		t.Errorf("URL = %q", s.URL)
	}
}

func TestJSONDecode(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		r := &Response{Body: []byte(`{"status":"paid","amount":1250}`)}
		v, err := r.JSON()
		if err != nil {
			t.Fatalf("JSON failed: %v", err)
		}
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("decoded value is %T, want map", v)
		}
		if m["status"] != "paid" {
			t.Errorf("status = %v", m["status"])
		}
	})

	t.Run("non-JSON body", func(t *testing.T) {
		r := &Response{Body: []byte("ok")}
		if _, err := r.JSON(); !errors.IsDecodeError(err) {
			t.Errorf("expected decode error, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		r := &Response{}
		if _, err := r.JSON(); !errors.IsDecodeError(err) {
			t.Errorf("expected decode error, got %v", err)
		}
	})
}

func TestQuery(t *testing.T) {
	r := &Response{Body: []byte(`{"charge":{"id":"ch_123","captured":true}}`)}

	id, err := r.Query("charge.id")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if id.String() != "ch_123" {
		t.Errorf("charge.id = %q", id.String())
	}

	missing, err := r.Query("charge.nothing")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if missing.Exists() {
		t.Error("unmatched path must not exist")
	}

	bad := &Response{Body: []byte("not json")}
	if _, err := bad.Query("a"); !errors.IsDecodeError(err) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestTextAndReader(t *testing.T) {
	r := &Response{Body: []byte("hello world")}

	if r.Text() != "hello world" {
		t.Errorf("Text() = %q", r.Text())
	}

	data, err := io.ReadAll(r.Reader())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("Reader yielded %q", data)
	}

	// Each Reader call starts over; the underlying value never mutates.
	again, _ := io.ReadAll(r.Reader())
	if string(again) != "hello world" {
		t.Errorf("second Reader yielded %q", again)
	}
}
