// Package document composes laser-engraving vector documents for the
// identification-mark array.
//
// A Document is configured up front (canvas, calibration, rotation,
// vertical offset, design-level barcode), filled with module slots in any
// order, and rendered once into a self-contained SVG string. Rendering is
// deterministic: the same configuration always produces byte-identical
// output. Any element-level failure aborts the whole render; the only soft
// degradation is clamping of out-of-bounds coordinates.
package document

import (
	"sort"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/geometry"
)

// Canvas bounds for a valid document, in millimeters per axis.
const (
	MinCanvasDim = 10.0
	MaxCanvasDim = 300.0
)

// Vertical offset bounds in millimeters.
const (
	MinVerticalOffset = -5.0
	MaxVerticalOffset = 5.0
)

// Slot position bounds on the array.
const (
	MinPosition = 1
	MaxPosition = 8
)

// MaxSubPosition bounds LED code sub-positions within a slot.
const MaxSubPosition = 4

// Canvas is the rendering surface in millimeters.
type Canvas struct {
	Width, Height float64
}

// DefaultCanvas matches the standard array blank.
var DefaultCanvas = Canvas{Width: 148.0, Height: 113.7}

// Rotation is the whole-document rotation in degrees.
// Only 0, 90, 180, and 270 are valid; anything else is rejected rather
// than normalized, because silently moving geometry on a physical part is
// worse than failing.
type Rotation int

// BarcodeSpec places an externally rendered 2D barcode. X and Y are CAD
// coordinates of the fragment's top-left corner.
type BarcodeSpec struct {
	Data   string
	X, Y   float64
	SizeMM float64
}

// Slot holds the engraving data for one array position.
type Slot struct {
	Position    int            // 1..8
	Identifier  uint32         // required, 20-bit Micro-ID value
	Label       string         // optional human-readable module label
	BarcodeData string         // optional per-slot barcode payload
	LEDCodes    map[int]string // sub-position (1..4) -> 3-character code
}

// TextHeights carries the physical glyph heights per text kind.
type TextHeights struct {
	Label float64
	URL   float64
	LED   float64
}

// Document is the full engraving document configuration.
type Document struct {
	canvas         Canvas
	calibration    geometry.Point
	rotation       Rotation
	verticalOffset float64
	title          string
	crosshair      bool
	barcode        *BarcodeSpec
	urlBase        string
	heights        TextHeights
	ledTracking    float64
	legacyLED      bool

	slots map[int]Slot
}

// Option configures a Document.
type Option func(*Document)

// WithCanvas sets the canvas dimensions.
func WithCanvas(c Canvas) Option { return func(d *Document) { d.canvas = c } }

// WithCalibration sets the calibration offset applied after the CAD
// axis-flip transform.
func WithCalibration(dx, dy float64) Option {
	return func(d *Document) { d.calibration = geometry.Point{X: dx, Y: dy} }
}

// WithRotation sets the whole-document rotation.
func WithRotation(r Rotation) Option { return func(d *Document) { d.rotation = r } }

// WithVerticalOffset shifts engraved content in the visual downward
// direction (negative values shift upward), independent of rotation.
func WithVerticalOffset(mm float64) Option { return func(d *Document) { d.verticalOffset = mm } }

// WithTitle sets the title comment emitted into the document.
func WithTitle(title string) Option { return func(d *Document) { d.title = title } }

// WithCrosshair enables the center crosshair alignment mark.
func WithCrosshair() Option { return func(d *Document) { d.crosshair = true } }

// WithBarcode configures the design-level barcode element.
func WithBarcode(b BarcodeSpec) Option { return func(d *Document) { d.barcode = &b } }

// WithURLBase sets the prefix for identifier-URL texts.
func WithURLBase(base string) Option { return func(d *Document) { d.urlBase = base } }

// WithTextHeights overrides the default text heights.
func WithTextHeights(h TextHeights) Option { return func(d *Document) { d.heights = h } }

// WithLEDTracking sets the tracking multiplier for LED code texts.
// Values other than 1.0 switch to per-character placement.
func WithLEDTracking(t float64) Option { return func(d *Document) { d.ledTracking = t } }

// WithLegacyLEDCharset accepts the full alphanumeric LED charset instead
// of the restricted one.
func WithLegacyLEDCharset() Option { return func(d *Document) { d.legacyLED = true } }

// New creates a document and validates its configuration.
func New(opts ...Option) (*Document, error) {
	d := &Document{
		canvas:      DefaultCanvas,
		heights:     defaultTextHeights,
		ledTracking: 1.0,
		slots:       make(map[int]Slot),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) validate() error {
	for axis, v := range map[string]float64{"width": d.canvas.Width, "height": d.canvas.Height} {
		if v < MinCanvasDim || v > MaxCanvasDim {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"canvas %s %.4fmm outside [%.1f, %.1f]", axis, v, MinCanvasDim, MaxCanvasDim)
		}
	}

	switch d.rotation {
	case 0, 90, 180, 270:
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"rotation %d not one of 0, 90, 180, 270", d.rotation)
	}

	if d.verticalOffset < MinVerticalOffset || d.verticalOffset > MaxVerticalOffset {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"vertical offset %.4fmm outside [%.1f, %.1f]",
			d.verticalOffset, MinVerticalOffset, MaxVerticalOffset)
	}

	if d.heights.Label <= 0 || d.heights.URL <= 0 || d.heights.LED <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"text heights must be positive")
	}
	return nil
}

// AddSlot registers a module slot. Slots may be added in any order;
// rendering always iterates ascending by position.
func (d *Document) AddSlot(s Slot) error {
	if s.Position < MinPosition || s.Position > MaxPosition {
		return errors.New(errors.ErrCodeInvalidPosition,
			"slot position %d outside [%d, %d]", s.Position, MinPosition, MaxPosition)
	}
	if _, exists := d.slots[s.Position]; exists {
		return errors.New(errors.ErrCodeInvalidPosition,
			"slot position %d already occupied", s.Position)
	}
	for sub := range s.LEDCodes {
		if sub < 1 || sub > MaxSubPosition {
			return errors.New(errors.ErrCodeInvalidPosition,
				"LED sub-position %d at slot %d outside [1, %d]", sub, s.Position, MaxSubPosition)
		}
	}
	d.slots[s.Position] = s
	return nil
}

// Canvas returns the configured canvas.
func (d *Document) Canvas() Canvas { return d.canvas }

// Transformer returns the coordinate transformer for this document.
func (d *Document) Transformer() geometry.Transformer {
	return geometry.NewTransformer(d.canvas.Width, d.canvas.Height).
		WithCalibration(d.calibration.X, d.calibration.Y)
}

// sortedSlots returns the registered slots ascending by position.
func (d *Document) sortedSlots() []Slot {
	out := make([]Slot, 0, len(d.slots))
	for _, s := range d.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// sortedSubPositions returns a slot's LED sub-positions ascending.
func sortedSubPositions(codes map[int]string) []int {
	subs := make([]int, 0, len(codes))
	for sub := range codes {
		subs = append(subs, sub)
	}
	sort.Ints(subs)
	return subs
}
