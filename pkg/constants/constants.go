// Package constants defines default values and protocol limits used throughout go-wirehttp.
package constants

import "time"

// Connection and request timeouts
const (
	DefaultConnTimeout    = 10 * time.Second
	DefaultDNSTimeout     = 5 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultRequestTimeout = 60 * time.Second
)

// Protocol limits
const (
	MaxHeaderBytes      = 64 * 1024
	MaxChunkLineBytes   = 4 * 1024
	DefaultMaxBodyBytes = 64 * 1024 * 1024 // 64MB
)

// I/O buffers
const (
	ReadBufferSize = 32 * 1024
)

// Well-known ports
const (
	DefaultPortHTTP       = 80
	DefaultPortHTTPS      = 443
	DefaultProxyPortHTTP  = 8080
	DefaultProxyPortSOCKS = 1080
)
