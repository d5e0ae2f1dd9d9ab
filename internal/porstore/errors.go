package porstore

import (
	"fmt"

	"github.com/befeleme/opentrep/internal/bom"
)

// wrapStoreError classifies a backend failure against bom.ErrStoreBackend so
// callers can use errors.Is regardless of which SQL driver produced it.
func wrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("porstore: %s: %w: %v", op, bom.ErrStoreBackend, err)
}
