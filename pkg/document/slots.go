package document

import (
	"github.com/etchlab/etchmark/pkg/geometry"
	"github.com/etchlab/etchmark/pkg/text"
)

// defaultTextHeights per text kind (mm).
var defaultTextHeights = TextHeights{
	Label: text.DefaultLabelHeight,
	URL:   text.DefaultURLHeight,
	LED:   text.DefaultLEDCodeHeight,
}

// Array geometry. All coordinates are CAD (bottom-left origin, mm).
// Positions 1-4 occupy the upper row left to right, 5-8 the lower row.
const (
	slotColumnStart = 22.0  // x of the first column's slot center
	slotColumnPitch = 35.0  // center-to-center column spacing
	slotRowUpper    = 78.0  // y of the upper row's slot centers
	slotRowLower    = 36.0  // y of the lower row's slot centers
	slotsPerRow     = 4
)

// Element anchors relative to the slot center (CAD, mm).
var (
	microIDOffset     = geometry.Point{X: 0, Y: 8.0}    // Micro-ID center
	slotBarcodeOffset = geometry.Point{X: -2.5, Y: 1.0} // barcode top-left in CAD terms
	labelOffset       = geometry.Point{X: 0, Y: -2.0}   // module label anchor
	urlOffset         = geometry.Point{X: 0, Y: -6.0}   // identifier URL anchor
	ledRowOffset      = -12.0                           // y of the LED code row
	ledColumnStart    = -12.0                           // x of sub-position 1
	ledColumnPitch    = 8.0                             // spacing between sub-positions
)

// slotBarcodeSize is the fixed footprint of per-slot barcodes (mm).
const slotBarcodeSize = 5.0

// slotCenter returns the CAD center point for an array position (1..8).
func slotCenter(position int) geometry.Point {
	idx := position - MinPosition
	col := idx % slotsPerRow
	row := idx / slotsPerRow

	y := slotRowUpper
	if row == 1 {
		y = slotRowLower
	}
	return geometry.Point{
		X: slotColumnStart + float64(col)*slotColumnPitch,
		Y: y,
	}
}

// offset shifts a CAD point by a slot-relative offset.
func offset(center, delta geometry.Point) geometry.Point {
	return geometry.Point{X: center.X + delta.X, Y: center.Y + delta.Y}
}

// ledAnchor returns the CAD anchor for an LED code sub-position (1..4).
func ledAnchor(center geometry.Point, sub int) geometry.Point {
	return geometry.Point{
		X: center.X + ledColumnStart + float64(sub-1)*ledColumnPitch,
		Y: center.Y + ledRowOffset,
	}
}
