// Package text computes font sizing and character placement for engraved
// text elements.
//
// Sizing starts from a desired physical glyph height in millimeters and is
// converted to the renderer's font-size unit with an empirically fixed ratio
// for the engraving typeface. Character spacing has two modes: the normal
// path inserts a hair space between glyphs and emits one text primitive,
// while the tracking path emits one primitive per character at absolute
// coordinates, because the downstream laser software ignores native
// letter-spacing attributes and only honors per-character positions.
package text

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/etchlab/etchmark/pkg/geometry"
)

// FontScale converts a physical glyph height in millimeters to the
// font-size unit of the rendering system. The ratio is empirical and fixed
// to the engraving typeface.
const FontScale = 1.4056

// fontFamily is the fixed engraving typeface declared on every primitive.
const fontFamily = "ISOCPEUR"

// hairSpace (U+200A) separates glyphs in normal (non-tracking) rendering.
const hairSpace = "\u200a"

// Default physical text heights in millimeters per text kind.
const (
	DefaultLabelHeight   = 1.5
	VariantLabelHeight   = 1.3
	DefaultURLHeight     = 1.2
	DefaultLEDCodeHeight = 1.0
)

// trackingAdvanceRatio is the assumed average glyph width relative to the
// glyph height. It approximates the engraving typeface's proportions and is
// a documented heuristic, not a measured metric.
const trackingAdvanceRatio = 0.5

// Anchor selects the horizontal anchor mode of a text element. Values
// match the SVG text-anchor attribute.
type Anchor string

// Horizontal anchor modes.
const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Element is a positioned text element in render coordinates.
type Element struct {
	Content  string
	X, Y     float64 // anchor point, render coordinates (mm)
	HeightMM float64 // desired physical glyph height
	Anchor   Anchor
	Rotation float64 // degrees, about the element's own anchor point
	Tracking float64 // spacing multiplier; 0 or 1 selects hair-space layout
}

// FontSize converts a physical height in millimeters to font-size units.
func FontSize(heightMM float64) float64 {
	return heightMM * FontScale
}

// EstimateWidth returns a heuristic width estimate in millimeters for
// layout previews. It is not used for exact rendering.
func EstimateWidth(content string, heightMM float64) float64 {
	n := len(content)
	if n == 0 {
		return 0
	}
	return float64(n)*0.5*heightMM + float64(n-1)*0.05*heightMM
}

// Render writes the element as SVG text primitives. Tracking values other
// than 1.0 switch to per-character placement.
func (e Element) Render(buf *bytes.Buffer) {
	if e.Tracking != 0 && e.Tracking != 1.0 {
		e.renderTracked(buf)
		return
	}
	e.renderSpaced(buf)
}

// renderSpaced emits a single primitive with hair-space separators between
// every glyph.
func (e Element) renderSpaced(buf *bytes.Buffer) {
	glyphs := strings.Split(e.Content, "")
	spaced := strings.Join(glyphs, hairSpace)

	buf.WriteString("<text")
	e.writeCommonAttrs(buf, e.X, e.Y)
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(spaced))
}

// renderTracked emits one primitive per character. Each character is
// centered on its own x position; the run's starting position depends on
// the anchor mode, and the whole run rotates about the element's anchor
// point.
func (e Element) renderTracked(buf *bytes.Buffer) {
	chars := []rune(e.Content)
	if len(chars) == 0 {
		return
	}

	advance := e.HeightMM * trackingAdvanceRatio * e.Tracking
	span := float64(len(chars)-1) * advance

	startX := e.X
	switch e.Anchor {
	case AnchorEnd:
		startX = e.X - span
	case AnchorMiddle:
		startX = e.X - span/2
	}

	for i, c := range chars {
		x := startX + float64(i)*advance

		buf.WriteString("<text")
		char := e
		char.Anchor = AnchorMiddle
		char.writeCommonAttrs(buf, x, e.Y)
		fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(string(c)))
	}
}

// writeCommonAttrs writes position, size, anchor, fill, and rotation
// attributes. Rotation always pivots on the element's anchor point, not the
// per-character position.
func (e Element) writeCommonAttrs(buf *bytes.Buffer, x, y float64) {
	fmt.Fprintf(buf, ` x="%s" y="%s"`, geometry.FormatCoord(x), geometry.FormatCoord(y))
	fmt.Fprintf(buf, ` font-family="%s" font-size="%s"`, fontFamily, geometry.FormatCoord(FontSize(e.HeightMM)))

	anchor := e.Anchor
	if anchor == "" {
		anchor = AnchorStart
	}
	fmt.Fprintf(buf, ` text-anchor="%s" fill="#000000"`, anchor)

	if e.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`,
			geometry.FormatCoord(e.Rotation),
			geometry.FormatCoord(e.X),
			geometry.FormatCoord(e.Y))
	}
}

// EscapeXML escapes a string for embedding in XML text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
