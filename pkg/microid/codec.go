// Package microid implements the Micro-ID 5x5 dot-matrix identifier codec.
//
// A Micro-ID encodes a 20-bit identifier into a 5x5 grid of engraved dots.
// The four corner cells are fixed anchors (always set), the cell at row 4,
// column 3 carries an even-parity bit, and the remaining 20 cells carry the
// identifier bits, most-significant first. A single orientation marker dot
// sits outside the grid and disambiguates rotation when the mark is read
// back optically.
//
// All functions are pure: they operate on value types and share no state.
package microid

import (
	"fmt"
	"strings"

	"github.com/etchlab/etchmark/pkg/errors"
)

const (
	// MinIdentifier is the smallest encodable identifier.
	MinIdentifier = 1

	// MaxIdentifier is the largest encodable identifier (20-bit capacity).
	MaxIdentifier = 1<<20 - 1

	// BitCount is the number of data bits in a Micro-ID.
	BitCount = 20

	// GridSize is the edge length of the dot grid.
	GridSize = 5
)

// Encode converts an identifier to its 20-character binary string,
// most-significant bit first.
func Encode(id uint32) (string, error) {
	if id < MinIdentifier || id > MaxIdentifier {
		return "", errors.New(errors.ErrCodeOutOfRange,
			"identifier %d outside [%d, %d]", id, MinIdentifier, MaxIdentifier)
	}
	return fmt.Sprintf("%020b", id), nil
}

// Parity returns the even-parity bit for a 20-character binary string:
// 1 if the count of set bits is odd, so that data plus parity always sums
// to an even number of dots.
func Parity(bits string) (byte, error) {
	if err := validateBits(bits); err != nil {
		return 0, err
	}
	ones := strings.Count(bits, "1")
	return byte(ones % 2), nil
}

// Canonical returns the canonical textual form of an identifier:
// an 8-digit zero-padded decimal string.
func Canonical(id uint32) string {
	return fmt.Sprintf("%08d", id)
}

// validateBits checks that bits is exactly BitCount characters of '0'/'1'.
func validateBits(bits string) error {
	if len(bits) != BitCount {
		return errors.New(errors.ErrCodeInvalidFormat,
			"binary string has %d characters, want %d", len(bits), BitCount)
	}
	for i := 0; i < len(bits); i++ {
		if c := bits[i]; c != '0' && c != '1' {
			return errors.New(errors.ErrCodeInvalidFormat,
				"binary string contains %q at index %d", c, i)
		}
	}
	return nil
}

// bitsToValue converts a validated 20-character binary string to an integer.
func bitsToValue(bits string) uint32 {
	var v uint32
	for i := 0; i < len(bits); i++ {
		v <<= 1
		if bits[i] == '1' {
			v |= 1
		}
	}
	return v
}
