package request

import "strings"

type headerEntry struct {
	key   string
	value string
}

// Header is an ordered list of header name/value pairs. Lookup is
// case-insensitive; serialization preserves insertion order and the original
// spelling of each name. The zero value is ready to use.
type Header struct {
	entries []headerEntry
}

// Set stores a header value. If a header with the same name (compared
// case-insensitively) already exists, its value is replaced in place and its
// position and original spelling are kept; otherwise the pair is appended.
func (h *Header) Set(key, value string) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].key, key) {
			h.entries[i].value = value
			return
		}
	}
	h.entries = append(h.entries, headerEntry{key: key, value: value})
}

// Get returns the value of the first header matching key case-insensitively,
// and whether such a header exists.
func (h *Header) Get(key string) (string, bool) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].key, key) {
			return h.entries[i].value, true
		}
	}
	return "", false
}

// Del removes every header matching key case-insensitively.
func (h *Header) Del(key string) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if !strings.EqualFold(e.key, key) {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Len returns the number of stored headers.
func (h *Header) Len() int {
	return len(h.entries)
}

// each calls fn for every header in insertion order.
func (h *Header) each(fn func(key, value string)) {
	for _, e := range h.entries {
		fn(e.key, e.value)
	}
}
