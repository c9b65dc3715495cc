// Package geometry converts between the bottom-left-origin CAD coordinate
// system of the mechanical design data and the top-left-origin coordinate
// system of the rendered vector document.
//
// A Transformer carries the canvas dimensions and a per-document calibration
// offset. Calibration is added on the CAD-to-render direction and subtracted
// on the inverse, so the two directions round-trip exactly for any offset.
package geometry

// Point is a 2D coordinate in millimeters.
type Point struct {
	X, Y float64
}

// MicroIDHalfFootprint is half the edge length of a Micro-ID's 1mm x 1mm
// grid footprint. Source design data stores Micro-ID positions as center
// points; rendering needs the top-left origin.
const MicroIDHalfFootprint = 0.5

// Transformer converts coordinates between CAD and render space for a
// fixed canvas and calibration offset.
type Transformer struct {
	Width, Height float64 // canvas dimensions in mm
	DX, DY        float64 // calibration offset in mm
}

// NewTransformer creates a transformer for the given canvas with zero
// calibration.
func NewTransformer(width, height float64) Transformer {
	return Transformer{Width: width, Height: height}
}

// WithCalibration returns a copy of the transformer with the given
// calibration offset.
func (t Transformer) WithCalibration(dx, dy float64) Transformer {
	t.DX = dx
	t.DY = dy
	return t
}

// CADToRender converts a CAD point (bottom-left origin) to render space
// (top-left origin), applying the calibration offset after the axis flip.
func (t Transformer) CADToRender(p Point) Point {
	return Point{
		X: p.X + t.DX,
		Y: t.Height - p.Y + t.DY,
	}
}

// RenderToCAD is the exact inverse of CADToRender: the calibration offset
// is removed before the axis flip is undone.
func (t Transformer) RenderToCAD(p Point) Point {
	return Point{
		X: p.X - t.DX,
		Y: t.Height - (p.Y - t.DY),
	}
}

// MicroIDAnchor converts a Micro-ID center point from CAD space to its
// top-left rendering origin: the standard transform followed by a half
// footprint shift on both axes.
func (t Transformer) MicroIDAnchor(center Point) Point {
	p := t.CADToRender(center)
	p.X -= MicroIDHalfFootprint
	p.Y -= MicroIDHalfFootprint
	return p
}

// WithinBounds reports whether a render-space point lies on the canvas.
func (t Transformer) WithinBounds(p Point) bool {
	return p.X >= 0 && p.X <= t.Width && p.Y >= 0 && p.Y <= t.Height
}

// ClampToBounds clamps each axis of a render-space point independently
// into [0, dimension]. Out-of-bounds geometry is clamped rather than
// rejected; this is the compositor's only soft degradation.
func (t Transformer) ClampToBounds(p Point) Point {
	return Point{
		X: clamp(p.X, 0, t.Width),
		Y: clamp(p.Y, 0, t.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
