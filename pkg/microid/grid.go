package microid

import (
	"strings"

	"github.com/etchlab/etchmark/pkg/errors"
)

// Cell addresses a single grid position by row and column, both zero-based
// from the top-left of the grid.
type Cell struct {
	Row, Col int
}

// Grid is the 5x5 boolean dot matrix. true means a dot is engraved.
type Grid [GridSize][GridSize]bool

// anchorCells are the four fixed corner cells, always set.
var anchorCells = [4]Cell{
	{Row: 0, Col: 0},
	{Row: 0, Col: GridSize - 1},
	{Row: GridSize - 1, Col: 0},
	{Row: GridSize - 1, Col: GridSize - 1},
}

// parityCell carries the even-parity bit.
var parityCell = Cell{Row: 4, Col: 3}

// dataCells binds the 20 data bits to grid cells, most-significant bit
// first: the grid is filled row-major, skipping the corner anchors and the
// parity cell. dataCells[0] holds bit 19, dataCells[19] holds bit 0.
var dataCells = [BitCount]Cell{
	{0, 1}, {0, 2}, {0, 3},
	{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4},
	{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4},
	{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4},
	{4, 1}, {4, 2},
}

// NewGrid builds the full dot grid for an identifier: anchors set, data
// bits mapped through the bit table, and the parity cell set iff the data
// bit count is odd.
func NewGrid(id uint32) (Grid, error) {
	var g Grid

	bits, err := Encode(id)
	if err != nil {
		return g, err
	}

	for _, c := range anchorCells {
		g[c.Row][c.Col] = true
	}
	for i, c := range dataCells {
		g[c.Row][c.Col] = bits[i] == '1'
	}

	p, err := Parity(bits)
	if err != nil {
		return g, err
	}
	g[parityCell.Row][parityCell.Col] = p == 1

	return g, nil
}

// Decode extracts the identifier from a dot grid. It validates the four
// corner anchors, recomputes parity over the extracted data bits, compares
// it against the parity cell, and rejects the all-zero identifier.
func Decode(g Grid) (uint32, error) {
	for _, c := range anchorCells {
		if !g[c.Row][c.Col] {
			return 0, errors.New(errors.ErrCodeMissingAnchor,
				"anchor dot missing at row %d, col %d", c.Row, c.Col)
		}
	}

	var sb strings.Builder
	sb.Grow(BitCount)
	for _, c := range dataCells {
		if g[c.Row][c.Col] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	bits := sb.String()

	want, err := Parity(bits)
	if err != nil {
		return 0, err
	}
	got := byte(0)
	if g[parityCell.Row][parityCell.Col] {
		got = 1
	}
	if got != want {
		return 0, errors.New(errors.ErrCodeParityMismatch,
			"parity cell is %d, expected %d for data bits %s", got, want, bits)
	}

	id := bitsToValue(bits)
	if id < MinIdentifier {
		return 0, errors.New(errors.ErrCodeOutOfRange,
			"decoded identifier %d below minimum %d", id, MinIdentifier)
	}
	return id, nil
}

// ParseGrid parses a grid from a string of '0'/'1' characters, row by row
// from the top. Whitespace, commas, and pipes are ignored so both "25 flat
// characters" and human-formatted row input are accepted.
func ParseGrid(s string) (Grid, error) {
	var g Grid

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '|':
			return -1
		}
		return r
	}, s)

	if len(cleaned) != GridSize*GridSize {
		return g, errors.New(errors.ErrCodeInvalidFormat,
			"grid string has %d cells, want %d", len(cleaned), GridSize*GridSize)
	}

	for i := 0; i < len(cleaned); i++ {
		switch cleaned[i] {
		case '1':
			g[i/GridSize][i%GridSize] = true
		case '0':
			// unset
		default:
			return g, errors.New(errors.ErrCodeInvalidFormat,
				"grid string contains %q at cell %d", cleaned[i], i)
		}
	}
	return g, nil
}

// String renders the grid as five rows of '0'/'1' characters.
func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if r < GridSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// IsAnchor reports whether the cell is one of the four corner anchors.
func IsAnchor(c Cell) bool {
	for _, a := range anchorCells {
		if a == c {
			return true
		}
	}
	return false
}

// IsParity reports whether the cell is the parity cell.
func IsParity(c Cell) bool {
	return c == parityCell
}
