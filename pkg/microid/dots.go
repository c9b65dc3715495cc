package microid

// Physical dot geometry in millimeters, relative to the top-left corner of
// the 1mm x 1mm grid footprint.
const (
	// EdgeOffset is the distance from the grid edge to the first dot center.
	EdgeOffset = 0.05

	// Pitch is the center-to-center spacing between adjacent dots.
	Pitch = 0.225

	// DotRadius is the engraved radius of every dot.
	DotRadius = 0.05

	// Orientation marker offset relative to the grid origin.
	OrientationDX = -0.175
	OrientationDY = 0.05
)

// Kind classifies the semantic role of a rendered dot.
type Kind string

// Dot kinds.
const (
	KindOrientation Kind = "orientation"
	KindAnchor      Kind = "anchor"
	KindData        Kind = "data"
	KindParity      Kind = "parity"
)

// Dot is a single engravable point of a Micro-ID.
type Dot struct {
	Kind Kind

	// Row and Col locate the dot within the grid. Both are -1 for the
	// orientation marker, which sits outside the grid.
	Row, Col int

	// Bit is the data bit index (19..0) for data dots, -1 otherwise.
	Bit int

	// X and Y are millimeter offsets from the grid's top-left origin.
	X, Y float64
}

// cellDot positions a grid cell's dot center.
func cellDot(kind Kind, c Cell, bit int) Dot {
	return Dot{
		Kind: kind,
		Row:  c.Row,
		Col:  c.Col,
		Bit:  bit,
		X:    EdgeOffset + float64(c.Col)*Pitch,
		Y:    EdgeOffset + float64(c.Row)*Pitch,
	}
}

// DotPositions returns every dot to engrave for an identifier, in a fixed
// order: the orientation marker, the four anchors, each set data bit
// (most-significant first), and the parity dot when parity is 1.
//
// The total count is 5 + popcount(bits) + parity.
func DotPositions(id uint32) ([]Dot, error) {
	bits, err := Encode(id)
	if err != nil {
		return nil, err
	}

	dots := make([]Dot, 0, 5+BitCount+1)
	dots = append(dots, Dot{
		Kind: KindOrientation,
		Row:  -1, Col: -1, Bit: -1,
		X: OrientationDX,
		Y: OrientationDY,
	})
	for _, c := range anchorCells {
		dots = append(dots, cellDot(KindAnchor, c, -1))
	}
	for i, c := range dataCells {
		if bits[i] == '1' {
			dots = append(dots, cellDot(KindData, c, BitCount-1-i))
		}
	}

	p, err := Parity(bits)
	if err != nil {
		return nil, err
	}
	if p == 1 {
		dots = append(dots, cellDot(KindParity, parityCell, -1))
	}

	return dots, nil
}
