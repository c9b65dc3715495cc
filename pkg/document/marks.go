package document

import (
	"bytes"
	"fmt"

	"github.com/etchlab/etchmark/pkg/geometry"
)

// Alignment mark geometry (mm).
const (
	boundaryInset  = 0.5  // inset of the boundary rectangle from the canvas edge
	markStrokeWide = 0.1  // stroke width of alignment marks
	crosshairArm   = 2.5  // half-length of each crosshair line
)

// renderAlignmentMarks emits the boundary rectangle and, when enabled, the
// center crosshair. Marks sit outside the vertical-offset group so an
// offset never shifts the physical alignment reference.
func renderAlignmentMarks(buf *bytes.Buffer, c Canvas, crosshair bool) {
	fmt.Fprintf(buf,
		`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#000000" stroke-width="%s"/>`+"\n",
		geometry.FormatCoord(boundaryInset),
		geometry.FormatCoord(boundaryInset),
		geometry.FormatCoord(c.Width-2*boundaryInset),
		geometry.FormatCoord(c.Height-2*boundaryInset),
		geometry.FormatCoord(markStrokeWide))

	if !crosshair {
		return
	}

	cx, cy := c.Width/2, c.Height/2
	renderLine(buf, cx-crosshairArm, cy, cx+crosshairArm, cy)
	renderLine(buf, cx, cy-crosshairArm, cx, cy+crosshairArm)
}

func renderLine(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf,
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#000000" stroke-width="%s"/>`+"\n",
		geometry.FormatCoord(x1), geometry.FormatCoord(y1),
		geometry.FormatCoord(x2), geometry.FormatCoord(y2),
		geometry.FormatCoord(markStrokeWide))
}
