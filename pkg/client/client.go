// Package client orchestrates one HTTP/1.1 exchange over a raw socket:
// encode, connect, write, frame the inbound bytes, and settle with exactly
// one completed response or one typed error.
package client

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"time"

	"github.com/payrail/go-wirehttp/pkg/constants"
	"github.com/payrail/go-wirehttp/pkg/errors"
	"github.com/payrail/go-wirehttp/pkg/framer"
	"github.com/payrail/go-wirehttp/pkg/request"
	"github.com/payrail/go-wirehttp/pkg/response"
	"github.com/payrail/go-wirehttp/pkg/timing"
	"github.com/payrail/go-wirehttp/pkg/transport"
)

// Options controls how the Client establishes connections and reads
// responses. The zero value uses the defaults from pkg/constants.
type Options struct {
	// SNI overrides the TLS server name. Empty means the request host.
	SNI string

	// InsecureTLS disables certificate validation.
	InsecureTLS bool

	// MinTLSVersion and MaxTLSVersion bound the negotiated TLS version.
	MinTLSVersion uint16
	MaxTLSVersion uint16

	// CipherSuites restricts the offered TLS 1.2 cipher suites.
	CipherSuites []uint16

	// CustomCACerts replaces the system trust roots with PEM certificates.
	CustomCACerts [][]byte

	// TLSConfig, when set, is used verbatim for the TLS handshake.
	TLSConfig *tls.Config `json:"-"`

	// ProxyURL routes connections through an upstream proxy
	// (e.g. "http://proxy:8080" or "socks5://proxy:1080").
	ProxyURL string

	// ConnTimeout bounds connection establishment; DNSTimeout bounds name
	// resolution separately.
	ConnTimeout time.Duration
	DNSTimeout  time.Duration

	// ReadTimeout is the idle timeout: the longest the exchange may go
	// without any inbound data before failing with a timeout. It applies
	// independently of the overall request timeout.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the encoded request.
	WriteTimeout time.Duration

	// MaxBodyBytes caps the assembled response body. Zero means
	// constants.DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Client executes HTTP/1.1 requests over raw sockets. A Client is safe for
// concurrent use: every Do call owns its own connection and parse state.
type Client struct {
	connector *transport.Connector
	opts      Options
}

// New returns a Client with the given options.
func New(opts Options) *Client {
	return &Client{connector: transport.New(), opts: opts}
}

// NewWithConnector returns a Client using a custom connector.
func NewWithConnector(connector *transport.Connector, opts Options) *Client {
	return &Client{connector: connector, opts: opts}
}

// Do executes the request and settles with exactly one terminal outcome: a
// completed response or a typed error. The request's Timeout bounds the
// whole exchange; the connection is closed on every exit path before Do
// returns, including timeout and cancellation.
func (c *Client) Do(ctx context.Context, req *request.Request) (*response.Response, error) {
	encoded, err := req.Encode()
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := timing.NewTimer()

	conn, err := c.connector.Connect(ctx, transport.Config{
		Scheme:        req.Scheme,
		Host:          req.Host,
		Port:          req.Port,
		SNI:           c.opts.SNI,
		InsecureTLS:   c.opts.InsecureTLS,
		MinTLSVersion: c.opts.MinTLSVersion,
		MaxTLSVersion: c.opts.MaxTLSVersion,
		CipherSuites:  c.opts.CipherSuites,
		CustomCACerts: c.opts.CustomCACerts,
		TLSConfig:     c.opts.TLSConfig,
		ProxyURL:      c.opts.ProxyURL,
		ConnTimeout:   c.opts.ConnTimeout,
		DNSTimeout:    c.opts.DNSTimeout,
	}, timer)
	if err != nil {
		if errors.IsTimeoutError(err) || errors.IsContextTimeout(err) {
			return nil, errors.NewTimeoutError("connecting", timeout)
		}
		return nil, err
	}
	defer conn.Close()

	// Force the socket shut the moment the deadline fires or the caller
	// cancels, so a blocked read cannot outlive the operation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := c.writeRequest(ctx, conn, encoded); err != nil {
		return nil, c.classify(ctx, err, "writing request", timeout)
	}
	timer.StartWait()

	f := framer.NewWithLimits(constants.MaxHeaderBytes, c.maxBodyBytes())
	if err := c.readResponse(ctx, conn, f, timer); err != nil {
		return nil, c.classify(ctx, err, "reading response", timeout)
	}

	return &response.Response{
		StatusCode: f.StatusCode(),
		Proto:      f.Proto(),
		Reason:     f.Reason(),
		Headers:    f.Headers(),
		Body:       f.Body(),
		URL:        req.URL(),
		Metrics:    timer.Metrics(),
	}, nil
}

func (c *Client) maxBodyBytes() int64 {
	if c.opts.MaxBodyBytes > 0 {
		return c.opts.MaxBodyBytes
	}
	return constants.DefaultMaxBodyBytes
}

// writeRequest writes the encoded request fully before any read. net.Conn
// already retries partial writes internally; a short write is an error.
func (c *Client) writeRequest(ctx context.Context, conn net.Conn, encoded []byte) error {
	writeTimeout := c.opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = constants.DefaultWriteTimeout
	}
	if err := conn.SetWriteDeadline(c.deadline(ctx, writeTimeout)); err != nil {
		return errors.NewSocketError("setting write deadline", err)
	}
	defer conn.SetWriteDeadline(time.Time{})

	if _, err := conn.Write(encoded); err != nil {
		return err
	}
	return nil
}

// readResponse feeds inbound chunks to the framer in arrival order until it
// reports completion, the stream ends, or a deadline fires. Each read gets a
// fresh idle deadline, so a silent server fails with a timeout even when the
// overall deadline is further away.
func (c *Client) readResponse(ctx context.Context, conn net.Conn, f *framer.Framer, timer *timing.Timer) error {
	readTimeout := c.opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = constants.DefaultReadTimeout
	}

	buf := make([]byte, constants.ReadBufferSize)
	for {
		if err := conn.SetReadDeadline(c.deadline(ctx, readTimeout)); err != nil {
			return errors.NewSocketError("setting read deadline", err)
		}

		n, err := conn.Read(buf)
		if n > 0 {
			timer.MarkFirstByte()
			done, ferr := f.Feed(buf[:n])
			if ferr != nil {
				return ferr
			}
			if done {
				return nil
			}
		}
		if err != nil {
			if err == io.EOF {
				if _, ferr := f.Finish(); ferr != nil {
					return ferr
				}
				return nil
			}
			return err
		}
	}
}

// deadline returns now+idle clipped to the context deadline.
func (c *Client) deadline(ctx context.Context, idle time.Duration) time.Time {
	d := time.Now().Add(idle)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

// classify maps a raw I/O failure to the error taxonomy. Errors already
// carrying a type tag pass through; expiry of the overall deadline, a read
// deadline, or caller cancellation all surface as timeouts.
func (c *Client) classify(ctx context.Context, err error, operation string, timeout time.Duration) error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewTimeoutError(operation, timeout)
	}
	if ctx.Err() == context.Canceled {
		return errors.NewCanceledError(operation)
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return errors.NewTimeoutError(operation, timeout)
	}
	return errors.NewSocketError(operation, err)
}
