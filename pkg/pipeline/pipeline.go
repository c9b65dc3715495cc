// Package pipeline orchestrates the build → render → convert flow for
// engraving documents.
//
// A fully resolved engraving request plus a device profile produce a
// deterministic SVG document; the pipeline adds artifact caching, raster
// conversion, and stage logging on top of the pure core. Both the CLI and
// any host framework embedding this module use the same Runner so caching
// and validation behave identically everywhere.
package pipeline

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/etchlab/etchmark/pkg/barcode"
	"github.com/etchlab/etchmark/pkg/document"
	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/profile"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// DefaultPNGScale is the default raster scale factor.
const DefaultPNGScale = 2.0

// Request is a fully resolved document-construction request. It is the
// complete input surface of the core: no database, network, or filesystem
// access happens past this point.
type Request struct {
	Title          string          `toml:"title" json:"title,omitempty"`
	Rotation       int             `toml:"rotation" json:"rotation,omitempty"`
	VerticalOffset float64         `toml:"vertical_offset" json:"vertical_offset,omitempty"`
	Barcode        *BarcodeRequest `toml:"barcode" json:"barcode,omitempty"`
	Slots          []SlotRequest   `toml:"slot" json:"slots,omitempty"`
}

// BarcodeRequest places the design-level barcode. X and Y are CAD
// coordinates in millimeters.
type BarcodeRequest struct {
	Data string  `toml:"data" json:"data"`
	X    float64 `toml:"x" json:"x"`
	Y    float64 `toml:"y" json:"y"`
	Size float64 `toml:"size" json:"size"`
}

// SlotRequest carries the engraving data for one array position. LED maps
// sub-position (as a string key, TOML convention) to a 3-character code.
type SlotRequest struct {
	Position   int               `toml:"position" json:"position"`
	Identifier uint32            `toml:"identifier" json:"identifier"`
	Label      string            `toml:"label" json:"label,omitempty"`
	Barcode    string            `toml:"barcode" json:"barcode,omitempty"`
	LED        map[string]string `toml:"led" json:"led,omitempty"`
}

// Options contains all configuration for a pipeline run.
type Options struct {
	Request Request         `json:"request"`
	Profile profile.Profile `json:"profile"`

	// Formats selects the output artifacts. Defaults to ["svg"].
	Formats []string `json:"formats,omitempty"`

	// PNGScale is the raster scale factor for PNG output.
	PNGScale float64 `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Renderer barcode.Renderer `json:"-"`
	Logger   *log.Logger      `json:"-"`

	validated bool
}

// ValidateAndSetDefaults validates the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"invalid format %q (must be one of: svg, png, pdf)", f)
		}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"PNG scale must be positive, got %.2f", o.PNGScale)
	}
	if o.Renderer == nil {
		o.Renderer = barcode.NewDataMatrix()
	}
	if err := o.Profile.Validate(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// BuildDocument assembles the document from the request and profile.
func BuildDocument(opts Options) (*document.Document, error) {
	docOpts := opts.Profile.DocumentOptions()
	docOpts = append(docOpts,
		document.WithRotation(document.Rotation(opts.Request.Rotation)),
		document.WithVerticalOffset(opts.Request.VerticalOffset),
		document.WithTitle(opts.Request.Title),
	)
	if b := opts.Request.Barcode; b != nil {
		docOpts = append(docOpts, document.WithBarcode(document.BarcodeSpec{
			Data:   b.Data,
			X:      b.X,
			Y:      b.Y,
			SizeMM: b.Size,
		}))
	}

	doc, err := document.New(docOpts...)
	if err != nil {
		return nil, err
	}

	for _, s := range opts.Request.Slots {
		leds, err := parseLEDKeys(s.LED, s.Position)
		if err != nil {
			return nil, err
		}
		if err := doc.AddSlot(document.Slot{
			Position:    s.Position,
			Identifier:  s.Identifier,
			Label:       s.Label,
			BarcodeData: s.Barcode,
			LEDCodes:    leds,
		}); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// parseLEDKeys converts TOML string sub-position keys to integers.
func parseLEDKeys(in map[string]string, position int) (map[int]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[int]string, len(in))
	for k, code := range in {
		sub, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"LED sub-position %q at slot %d is not a number", k, position)
		}
		out[sub] = code
	}
	return out, nil
}
