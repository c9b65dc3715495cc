package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etchlab/etchmark/pkg/barcode"
	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/geometry"
	"github.com/etchlab/etchmark/pkg/microid"
	"github.com/etchlab/etchmark/pkg/text"
)

// svgHeader opens every document.
const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Render serializes the document as a self-contained SVG. The renderer is
// consulted for every configured barcode element; it may be nil when no
// barcodes are configured.
//
// Rendering walks a strictly ordered sequence of stages: canvas element,
// title and extensions placeholder, rotation group, alignment marks,
// design-level barcode, vertical-offset group, then one labeled group per
// slot ascending by position. The first failure aborts the render; no
// partial document is ever returned.
func (d *Document) Render(renderer barcode.Renderer) ([]byte, error) {
	var buf bytes.Buffer
	t := d.Transformer()

	// Stage 1: canvas element. For 90/270 the declared viewBox swaps
	// width and height so rotated content still fits.
	vw, vh := d.canvas.Width, d.canvas.Height
	if d.rotation == 90 || d.rotation == 270 {
		vw, vh = vh, vw
	}
	buf.WriteString(svgHeader)
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		geometry.FormatDim(vw), geometry.FormatDim(vh),
		geometry.FormatDim(vw), geometry.FormatDim(vh))

	// Stage 2: title comment and extensions placeholder.
	if d.title != "" {
		fmt.Fprintf(&buf, "<!-- %s -->\n", text.EscapeXML(d.title))
	}
	buf.WriteString("<defs></defs>\n")

	// Stage 3: rotation group.
	if d.rotation != 0 {
		fmt.Fprintf(&buf, `<g transform="%s">`+"\n", rotationTransform(d.rotation, d.canvas))
	}

	// Stage 4: alignment marks, outside the offset group so a vertical
	// offset never shifts the physical alignment reference.
	renderAlignmentMarks(&buf, d.canvas, d.crosshair)

	// Stage 5: design-level barcode.
	if d.barcode != nil {
		if err := d.renderBarcode(&buf, t, renderer, *d.barcode); err != nil {
			return nil, err
		}
	}

	// Stage 6: vertical-offset group.
	if d.verticalOffset != 0 {
		dx, dy := offsetTranslation(d.rotation, d.verticalOffset)
		fmt.Fprintf(&buf, `<g transform="translate(%s,%s)">`+"\n",
			geometry.FormatCoord(dx), geometry.FormatCoord(dy))
	}

	// Stage 7: slots, ascending by position.
	for _, s := range d.sortedSlots() {
		if err := d.renderSlot(&buf, t, renderer, s); err != nil {
			return nil, err
		}
	}

	// Stage 8: close groups and canvas.
	if d.verticalOffset != 0 {
		buf.WriteString("</g>\n")
	}
	if d.rotation != 0 {
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>\n")

	return buf.Bytes(), nil
}

// rotationTransform returns the translate+rotate pair that keeps rotated
// content on the declared canvas.
func rotationTransform(r Rotation, c Canvas) string {
	switch r {
	case 90:
		return fmt.Sprintf("translate(%s,0) rotate(90)", geometry.FormatCoord(c.Height))
	case 180:
		return fmt.Sprintf("translate(%s,%s) rotate(180)",
			geometry.FormatCoord(c.Width), geometry.FormatCoord(c.Height))
	case 270:
		return fmt.Sprintf("translate(0,%s) rotate(270)", geometry.FormatCoord(c.Width))
	}
	return ""
}

// offsetTranslation maps a vertical offset to a translation inside the
// rotation group so that a positive offset always moves content in the
// visual downward direction. This table is the authoritative source for
// the offset/rotation coupling.
func offsetTranslation(r Rotation, off float64) (dx, dy float64) {
	switch r {
	case 90:
		return off, 0
	case 180:
		return 0, -off
	case 270:
		return -off, 0
	default:
		return 0, off
	}
}

// renderBarcode emits an externally rendered barcode fragment wrapped in a
// positioning transform. The fragment itself is opaque to the compositor.
func (d *Document) renderBarcode(buf *bytes.Buffer, t geometry.Transformer, renderer barcode.Renderer, spec BarcodeSpec) error {
	if renderer == nil {
		return errors.New(errors.ErrCodeExternalRenderer,
			"barcode configured but no renderer is available")
	}

	frag, err := renderer.Render(spec.Data, spec.SizeMM)
	if err != nil {
		return err
	}

	p := t.ClampToBounds(t.CADToRender(geometry.Point{X: spec.X, Y: spec.Y}))
	fmt.Fprintf(buf, `<g transform="translate(%s,%s)">`+"\n",
		geometry.FormatCoord(p.X), geometry.FormatCoord(p.Y))
	buf.Write(frag)
	buf.WriteString("</g>\n")
	return nil
}

// renderSlot emits one labeled slot group: Micro-ID, optional barcode,
// module label, identifier URL, and LED codes by sub-position.
func (d *Document) renderSlot(buf *bytes.Buffer, t geometry.Transformer, renderer barcode.Renderer, s Slot) error {
	if s.Identifier == 0 {
		return errors.New(errors.ErrCodeMissingRequiredField,
			"slot %d has no identifier", s.Position)
	}

	center := slotCenter(s.Position)
	fmt.Fprintf(buf, `<g id="slot-%d">`+"\n", s.Position)

	if err := d.renderMicroID(buf, t, s.Identifier, offset(center, microIDOffset)); err != nil {
		return err
	}

	if s.BarcodeData != "" {
		bc := BarcodeSpec{
			Data:   s.BarcodeData,
			X:      center.X + slotBarcodeOffset.X,
			Y:      center.Y + slotBarcodeOffset.Y,
			SizeMM: slotBarcodeSize,
		}
		if err := d.renderBarcode(buf, t, renderer, bc); err != nil {
			return err
		}
	}

	if s.Label != "" {
		p := t.ClampToBounds(t.CADToRender(offset(center, labelOffset)))
		text.Element{
			Content:  s.Label,
			X:        p.X,
			Y:        p.Y,
			HeightMM: d.heights.Label,
			Anchor:   text.AnchorMiddle,
		}.Render(buf)
	}

	urlPoint := t.ClampToBounds(t.CADToRender(offset(center, urlOffset)))
	text.Element{
		Content:  d.urlBase + microid.Canonical(s.Identifier),
		X:        urlPoint.X,
		Y:        urlPoint.Y,
		HeightMM: d.heights.URL,
		Anchor:   text.AnchorMiddle,
	}.Render(buf)

	for _, sub := range sortedSubPositions(s.LEDCodes) {
		code := s.LEDCodes[sub]
		if err := text.ValidateLEDCode(code, d.legacyLED); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCode, err,
				"LED code %q at slot %d sub-position %d", code, s.Position, sub)
		}

		p := t.ClampToBounds(t.CADToRender(ledAnchor(center, sub)))
		text.Element{
			Content:  strings.ToUpper(code),
			X:        p.X,
			Y:        p.Y,
			HeightMM: d.heights.LED,
			Anchor:   text.AnchorMiddle,
			Tracking: d.ledTracking,
		}.Render(buf)
	}

	buf.WriteString("</g>\n")
	return nil
}

// renderMicroID emits the named dot-matrix container for an identifier.
// The CAD center point converts to a top-left origin, which is clamped to
// the canvas before the dots are placed.
func (d *Document) renderMicroID(buf *bytes.Buffer, t geometry.Transformer, id uint32, center geometry.Point) error {
	dots, err := microid.DotPositions(id)
	if err != nil {
		return err
	}

	origin := t.ClampToBounds(t.MicroIDAnchor(center))

	fmt.Fprintf(buf, `<g id="microid-%s">`+"\n", microid.Canonical(id))
	for _, dot := range dots {
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="#000000"/>`+"\n",
			geometry.FormatCoord(origin.X+dot.X),
			geometry.FormatCoord(origin.Y+dot.Y),
			geometry.FormatCoord(microid.DotRadius))
	}
	buf.WriteString("</g>\n")
	return nil
}
