package bom

import (
	"errors"
	"fmt"
)

// wrapKeyError prefixes a validation message with the record's key and
// wraps ErrInvalidRecord so callers can classify it with errors.Is.
func wrapKeyError(k Key, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidRecord, k.DescribeKey(), fmt.Sprintf(format, args...))
}

// Sentinel errors identifying the error kinds of spec §7. Backends and
// pipeline stages wrap these with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is.
var (
	ErrEmptyQuery          = errors.New("empty query")
	ErrInvalidRecord       = errors.New("invalid POR record")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrMalformedDocument   = errors.New("malformed index document")
	ErrIndexStoreOutOfSync = errors.New("index/store out of sync")
	ErrIndexBackend        = errors.New("index backend error")
	ErrStoreBackend        = errors.New("store backend error")
	ErrCSVParse            = errors.New("csv parse error")
	ErrDeadlineExceeded    = errors.New("deadline exceeded")
	ErrBuildConflict       = errors.New("build conflict")
	ErrNoBestMatch         = errors.New("no best matching holder")
)
