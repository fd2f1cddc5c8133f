// Package framer implements an incremental parser for HTTP/1.1 responses.
//
// The framer is a push-model state machine with no I/O of its own: callers
// feed it inbound byte chunks in arrival order (split at arbitrary
// boundaries) and signal end-of-stream, and it reports completion or a
// framing violation. This keeps the parsing logic independent of any
// particular transport and testable against hand-crafted byte sequences.
package framer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/payrail/go-wirehttp/pkg/constants"
	"github.com/payrail/go-wirehttp/pkg/errors"
)

// Mode is the body-framing strategy determined from the response headers.
type Mode int

const (
	// ModeUnknown means the header block has not been parsed yet.
	ModeUnknown Mode = iota
	// ModeFixed frames the body by a Content-Length byte count.
	ModeFixed
	// ModeChunked frames the body by chunked transfer encoding.
	ModeChunked
	// ModeUntilClose frames the body by connection close.
	ModeUntilClose
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed-length"
	case ModeChunked:
		return "chunked"
	case ModeUntilClose:
		return "until-close"
	default:
		return "unknown"
	}
}

type phase int

const (
	phaseHead phase = iota
	phaseFixedBody
	phaseChunkSize
	phaseChunkData
	phaseChunkCRLF
	phaseTrailer
	phaseUntilClose
	phaseDone
)

var crlfcrlf = []byte("\r\n\r\n")

// Framer accumulates one HTTP/1.1 response. Create one per response with New
// and discard it once done; it is not safe for concurrent use.
type Framer struct {
	maxHeaderBytes int
	maxBodyBytes   int64

	phase phase
	head  []byte // accumulated status line + header block
	buf   []byte // unconsumed bytes past the current parse position
	body  []byte

	statusCode int
	proto      string
	reason     string
	headers    map[string]string

	mode           Mode
	contentLength  int64
	chunkRemaining int64

	err error
}

// New returns a Framer with the default header and body limits.
func New() *Framer {
	return NewWithLimits(constants.MaxHeaderBytes, constants.DefaultMaxBodyBytes)
}

// NewWithLimits returns a Framer that treats a header block larger than
// maxHeaderBytes or a body larger than maxBodyBytes as malformed.
func NewWithLimits(maxHeaderBytes int, maxBodyBytes int64) *Framer {
	return &Framer{
		maxHeaderBytes: maxHeaderBytes,
		maxBodyBytes:   maxBodyBytes,
		headers:        make(map[string]string),
	}
}

// Feed consumes the next inbound chunk. It returns true once the response is
// complete; bytes fed after completion are ignored. A framing violation
// returns a malformed-response error and poisons the framer.
func (f *Framer) Feed(chunk []byte) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.phase == phaseDone {
		return true, nil
	}
	f.buf = append(f.buf, chunk...)
	done, err := f.advance()
	if err != nil {
		f.err = err
	}
	return done, err
}

// Finish signals end-of-stream. For an until-close body (or while sweeping
// optional trailers) this completes the response; in any other phase the
// stream ended before the declared framing was satisfied, which is a
// malformed response, never a truncated success.
func (f *Framer) Finish() (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	switch f.phase {
	case phaseDone:
		return true, nil
	case phaseUntilClose, phaseTrailer:
		f.phase = phaseDone
		return true, nil
	case phaseHead:
		f.err = errors.NewMalformedError("connection closed before response headers completed", nil)
	default:
		f.err = errors.NewMalformedError("connection closed before response body completed", nil)
	}
	return false, f.err
}

// Done reports whether a complete response has been assembled.
func (f *Framer) Done() bool { return f.phase == phaseDone }

// StatusCode returns the parsed status code, 0 before the headers complete.
func (f *Framer) StatusCode() int { return f.statusCode }

// Proto returns the protocol token from the status line, e.g. "HTTP/1.1".
func (f *Framer) Proto() string { return f.proto }

// Reason returns the reason phrase from the status line, possibly empty.
func (f *Framer) Reason() string { return f.reason }

// Headers returns the parsed header map. Keys are lower-cased; when a header
// name repeats, the last occurrence wins.
func (f *Framer) Headers() map[string]string { return f.headers }

// Body returns the body bytes assembled so far.
func (f *Framer) Body() []byte { return f.body }

// Mode returns the framing mode, ModeUnknown before the headers complete.
func (f *Framer) Mode() Mode { return f.mode }

// advance runs the state machine over the buffered bytes until it needs more
// data, completes, or fails.
func (f *Framer) advance() (bool, error) {
	for {
		switch f.phase {
		case phaseHead:
			ok, err := f.consumeHead()
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}

		case phaseFixedBody:
			remaining := f.contentLength - int64(len(f.body))
			n := int64(len(f.buf))
			if n > remaining {
				n = remaining
			}
			f.body = append(f.body, f.buf[:n]...)
			f.buf = f.buf[n:]
			if int64(len(f.body)) >= f.contentLength {
				// Bytes past Content-Length are ignored, not fatal.
				f.phase = phaseDone
				return true, nil
			}
			return false, nil

		case phaseChunkSize:
			line, ok, err := f.consumeLine(constants.MaxChunkLineBytes, "chunk size line")
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			size, err := parseChunkSize(line)
			if err != nil {
				return false, err
			}
			if size == 0 {
				f.phase = phaseTrailer
				continue
			}
			if int64(len(f.body))+size > f.maxBodyBytes {
				return false, errors.NewMalformedError("response body exceeds maximum size", nil)
			}
			f.chunkRemaining = size
			f.phase = phaseChunkData

		case phaseChunkData:
			n := int64(len(f.buf))
			if n > f.chunkRemaining {
				n = f.chunkRemaining
			}
			f.body = append(f.body, f.buf[:n]...)
			f.buf = f.buf[n:]
			f.chunkRemaining -= n
			if f.chunkRemaining > 0 {
				return false, nil
			}
			f.phase = phaseChunkCRLF

		case phaseChunkCRLF:
			if len(f.buf) < 2 {
				return false, nil
			}
			if f.buf[0] != '\r' || f.buf[1] != '\n' {
				return false, errors.NewMalformedError("chunk data not terminated by CRLF", nil)
			}
			f.buf = f.buf[2:]
			f.phase = phaseChunkSize

		case phaseTrailer:
			// Trailer headers after the terminating chunk are optional and
			// ignored; a blank line (or end-of-stream, see Finish) ends them.
			line, ok, err := f.consumeLine(constants.MaxChunkLineBytes, "trailer line")
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			if len(line) == 0 {
				f.phase = phaseDone
				return true, nil
			}

		case phaseUntilClose:
			if int64(len(f.body))+int64(len(f.buf)) > f.maxBodyBytes {
				return false, errors.NewMalformedError("response body exceeds maximum size", nil)
			}
			f.body = append(f.body, f.buf...)
			f.buf = f.buf[:0]
			return false, nil

		case phaseDone:
			return true, nil
		}
	}
}

// consumeHead buffers bytes until the CRLFCRLF header terminator appears,
// then parses the status line and header block and picks the framing mode.
// Returns false when more data is needed.
func (f *Framer) consumeHead() (bool, error) {
	// Rescan only across the boundary of the previous accumulation so a
	// terminator split between chunks is still found exactly once.
	searchFrom := len(f.head) - len(crlfcrlf) + 1
	if searchFrom < 0 {
		searchFrom = 0
	}
	f.head = append(f.head, f.buf...)
	f.buf = f.buf[:0]

	idx := bytes.Index(f.head[searchFrom:], crlfcrlf)
	if idx < 0 {
		if len(f.head) > f.maxHeaderBytes {
			return false, errors.NewMalformedError("response headers exceed maximum size", nil)
		}
		return false, nil
	}
	end := searchFrom + idx

	if err := f.parseHead(f.head[:end]); err != nil {
		return false, err
	}

	// Whatever followed the terminator is the start of the body.
	f.buf = append(f.buf, f.head[end+len(crlfcrlf):]...)
	f.head = nil

	switch f.mode {
	case ModeChunked:
		f.phase = phaseChunkSize
	case ModeFixed:
		if f.contentLength == 0 {
			f.phase = phaseDone
			return true, nil
		}
		f.phase = phaseFixedBody
	default:
		f.phase = phaseUntilClose
	}
	return true, nil
}

// parseHead splits the header block into the status line and header lines
// and determines the framing mode.
func (f *Framer) parseHead(head []byte) error {
	lines := strings.Split(string(head), "\r\n")
	if err := f.parseStatusLine(lines[0]); err != nil {
		return err
	}

	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			// Lines without a separator are skipped, not fatal.
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		// Duplicate keys: last occurrence wins.
		f.headers[key] = strings.TrimSpace(value)
	}

	return f.determineMode()
}

func (f *Framer) parseStatusLine(line string) error {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return errors.NewMalformedError("invalid status line", nil)
	}

	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 100 || code > 999 {
		return errors.NewMalformedError("invalid status code in status line", err)
	}

	f.proto = parts[0]
	f.statusCode = code
	if len(parts) == 3 {
		f.reason = parts[2]
	}
	return nil
}

// determineMode applies the framing priority: chunked transfer-encoding,
// then a parseable non-negative Content-Length, then until-close.
func (f *Framer) determineMode() error {
	if te, ok := f.headers["transfer-encoding"]; ok && strings.EqualFold(strings.TrimSpace(te), "chunked") {
		f.mode = ModeChunked
		return nil
	}
	if cl, ok := f.headers["content-length"]; ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64); err == nil && n >= 0 {
			if n > f.maxBodyBytes {
				return errors.NewMalformedError("content-length exceeds maximum body size", nil)
			}
			f.mode = ModeFixed
			f.contentLength = n
			return nil
		}
	}
	f.mode = ModeUntilClose
	return nil
}

// consumeLine extracts one CRLF-terminated line from the buffer. Returns
// ok=false when the terminator has not arrived yet.
func (f *Framer) consumeLine(maxLen int, what string) (string, bool, error) {
	idx := bytes.Index(f.buf, []byte("\r\n"))
	if idx < 0 {
		if len(f.buf) > maxLen {
			return "", false, errors.NewMalformedError(what+" exceeds maximum length", nil)
		}
		return "", false, nil
	}
	if idx > maxLen {
		return "", false, errors.NewMalformedError(what+" exceeds maximum length", nil)
	}
	line := string(f.buf[:idx])
	f.buf = f.buf[idx+2:]
	return line, true, nil
}

// parseChunkSize parses a hex chunk-size line, ignoring any ;extension part.
func parseChunkSize(line string) (int64, error) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, errors.NewMalformedError("empty chunk size line", nil)
	}
	if len(line) > 16 {
		return 0, errors.NewMalformedError("chunk size too large", nil)
	}

	var size int64
	for i := 0; i < len(line); i++ {
		b := line[i]
		switch {
		case '0' <= b && b <= '9':
			b = b - '0'
		case 'a' <= b && b <= 'f':
			b = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			b = b - 'A' + 10
		default:
			return 0, errors.NewMalformedError("invalid byte in chunk size line", nil)
		}
		size = size<<4 | int64(b)
		if size < 0 {
			return 0, errors.NewMalformedError("chunk size too large", nil)
		}
	}
	return size, nil
}
