package opentrep

import "github.com/befeleme/opentrep/internal/bom"

// Sentinel errors re-exported from internal/bom so callers outside this
// module can classify Interpret failures with errors.Is (spec §7).
var (
	ErrEmptyQuery          = bom.ErrEmptyQuery
	ErrIndexBackend        = bom.ErrIndexBackend
	ErrStoreBackend        = bom.ErrStoreBackend
	ErrMalformedIndexDoc   = bom.ErrMalformedDocument
	ErrIndexStoreOutOfSync = bom.ErrIndexStoreOutOfSync
	ErrCSVParse            = bom.ErrCSVParse
	ErrDeadlineExceeded    = bom.ErrDeadlineExceeded
	ErrBuildConflict       = bom.ErrBuildConflict
)
