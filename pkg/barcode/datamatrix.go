package barcode

import (
	"bytes"
	"fmt"
	"image"

	"github.com/boombuler/barcode/datamatrix"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/geometry"
)

// DataMatrix renders DataMatrix symbols as vector fragments.
//
// The symbol's module grid is emitted as filled unit rectangles inside a
// scaled group, so the whole fragment spans exactly the requested physical
// footprint. Horizontal runs of dark modules are merged into single
// rectangles to keep documents small.
type DataMatrix struct{}

// NewDataMatrix creates a DataMatrix renderer.
func NewDataMatrix() DataMatrix {
	return DataMatrix{}
}

// Render implements Renderer.
func (DataMatrix) Render(data string, sizeMM float64) (Fragment, error) {
	if err := validateRequest(data, sizeMM); err != nil {
		return nil, err
	}

	code, err := datamatrix.Encode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternalRenderer, err,
			"datamatrix encoding failed for %d bytes of data", len(data))
	}

	bounds := code.Bounds()
	modules := bounds.Dx()
	if modules <= 0 || bounds.Dy() != modules {
		return nil, errors.New(errors.ErrCodeExternalRenderer,
			"datamatrix produced a %dx%d symbol", bounds.Dx(), bounds.Dy())
	}

	scale := sizeMM / float64(modules)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<g transform="scale(%s)">`+"\n", geometry.FormatScale(scale))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := y - bounds.Min.Y
		for x := bounds.Min.X; x < bounds.Max.X; {
			if !darkAt(code, x, y) {
				x++
				continue
			}
			run := 0
			for x+run < bounds.Max.X && darkAt(code, x+run, y) {
				run++
			}
			fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="1"/>`+"\n",
				x-bounds.Min.X, row, run)
			x += run
		}
	}
	buf.WriteString("</g>\n")

	return Fragment(buf.Bytes()), nil
}

// darkAt reports whether the module at (x, y) is set.
func darkAt(code image.Image, x, y int) bool {
	r, _, _, _ := code.At(x, y).RGBA()
	return r == 0
}
