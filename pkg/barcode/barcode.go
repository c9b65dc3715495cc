// Package barcode defines the external 2D-barcode collaborator consumed by
// the document compositor, plus a DataMatrix implementation.
//
// The compositor treats a rendered fragment as an opaque, pre-sized piece
// of vector markup: it wraps the fragment in its own positioning transform
// and never inspects its internal structure.
package barcode

import "github.com/etchlab/etchmark/pkg/errors"

// MaxDataBytes bounds the payload accepted by a renderer.
const MaxDataBytes = 2000

// Size limits for the physical footprint in millimeters.
const (
	MinSizeMM = 1.0
	MaxSizeMM = 100.0
)

// Fragment is self-contained vector markup whose geometry spans exactly
// the requested square footprint, with its origin at the top-left corner.
type Fragment []byte

// Renderer produces a vector fragment for a data string at a physical size.
type Renderer interface {
	// Render encodes data into a fragment scaled to sizeMM x sizeMM.
	Render(data string, sizeMM float64) (Fragment, error)
}

// validateRequest applies the input rules shared by all renderers.
func validateRequest(data string, sizeMM float64) error {
	if data == "" {
		return errors.New(errors.ErrCodeExternalRenderer, "barcode data is empty")
	}
	if len(data) > MaxDataBytes {
		return errors.New(errors.ErrCodeExternalRenderer,
			"barcode data is %d bytes, limit %d", len(data), MaxDataBytes)
	}
	if sizeMM < MinSizeMM || sizeMM > MaxSizeMM {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"barcode size %.4fmm outside [%.1f, %.1f]", sizeMM, MinSizeMM, MaxSizeMM)
	}
	return nil
}
