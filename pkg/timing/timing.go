// Package timing provides per-phase performance measurement for HTTP requests.
package timing

import (
	"fmt"
	"time"
)

// Metrics captures detailed timing information for a single request.
type Metrics struct {
	// DNSLookup is the time spent performing DNS resolution.
	DNSLookup time.Duration `json:"dns_lookup"`

	// Connect is the time spent establishing the TCP connection.
	Connect time.Duration `json:"connect"`

	// TLSHandshake is the time spent performing the TLS handshake (0 for plain HTTP).
	TLSHandshake time.Duration `json:"tls_handshake"`

	// FirstByte is the time between the request being fully written and the
	// first response byte arriving. This approximates server processing time.
	FirstByte time.Duration `json:"first_byte"`

	// Total is the total end-to-end request time.
	Total time.Duration `json:"total"`
}

// Timer records phase marks for one request. A Timer belongs to a single
// operation and is not safe for concurrent use.
type Timer struct {
	start        time.Time
	dnsStart     time.Time
	dnsEnd       time.Time
	connectStart time.Time
	connectEnd   time.Time
	tlsStart     time.Time
	tlsEnd       time.Time
	waitStart    time.Time
	firstByte    time.Time
}

// NewTimer creates a new timing measurement session.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// StartDNS marks the beginning of DNS resolution.
func (t *Timer) StartDNS() { t.dnsStart = time.Now() }

// EndDNS marks the end of DNS resolution.
func (t *Timer) EndDNS() { t.dnsEnd = time.Now() }

// StartConnect marks the beginning of the TCP connection attempt.
func (t *Timer) StartConnect() { t.connectStart = time.Now() }

// EndConnect marks the end of the TCP connection attempt.
func (t *Timer) EndConnect() { t.connectEnd = time.Now() }

// StartTLS marks the beginning of the TLS handshake.
func (t *Timer) StartTLS() { t.tlsStart = time.Now() }

// EndTLS marks the end of the TLS handshake.
func (t *Timer) EndTLS() { t.tlsEnd = time.Now() }

// StartWait marks the request as fully written, waiting for the response.
func (t *Timer) StartWait() { t.waitStart = time.Now() }

// MarkFirstByte records the arrival of the first response byte. Later calls
// are no-ops so only the first byte of the response is measured.
func (t *Timer) MarkFirstByte() {
	if t.firstByte.IsZero() {
		t.firstByte = time.Now()
	}
}

// Metrics returns the timing metrics accumulated so far.
func (t *Timer) Metrics() Metrics {
	m := Metrics{Total: time.Since(t.start)}

	if !t.dnsStart.IsZero() && !t.dnsEnd.IsZero() {
		m.DNSLookup = t.dnsEnd.Sub(t.dnsStart)
	}
	if !t.connectStart.IsZero() && !t.connectEnd.IsZero() {
		m.Connect = t.connectEnd.Sub(t.connectStart)
	}
	if !t.tlsStart.IsZero() && !t.tlsEnd.IsZero() {
		m.TLSHandshake = t.tlsEnd.Sub(t.tlsStart)
	}
	if !t.waitStart.IsZero() && !t.firstByte.IsZero() {
		m.FirstByte = t.firstByte.Sub(t.waitStart)
	}

	return m
}

// ConnectionTime returns the total connection establishment time (DNS + TCP + TLS).
func (m Metrics) ConnectionTime() time.Duration {
	return m.DNSLookup + m.Connect + m.TLSHandshake
}

// String provides a human-readable representation of the metrics.
func (m Metrics) String() string {
	return fmt.Sprintf("DNSLookup: %v, Connect: %v, TLSHandshake: %v, FirstByte: %v, Total: %v",
		m.DNSLookup, m.Connect, m.TLSHandshake, m.FirstByte, m.Total)
}
