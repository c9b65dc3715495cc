package geometry

import "strconv"

// Downstream laser-control software and golden-file tests depend on exact
// output bytes, so every number written into a document goes through one of
// these formatters instead of default float-to-string conversion.
//
// The precision convention mirrors the source design data:
//   - coordinates and transform values: 4 decimal places
//   - canvas dimensions: 1 decimal place
//   - scale factors: 6 decimal places
const (
	coordPrecision = 4
	dimPrecision   = 1
	scalePrecision = 6
)

// FormatCoord formats a coordinate or transform value with 4 decimal places.
func FormatCoord(v float64) string {
	return format(v, coordPrecision)
}

// FormatDim formats a canvas dimension with 1 decimal place.
func FormatDim(v float64) string {
	return format(v, dimPrecision)
}

// FormatScale formats a scale factor with 6 decimal places.
func FormatScale(v float64) string {
	return format(v, scalePrecision)
}

// format rounds half away from zero and keeps trailing zeros, so the same
// value always produces the same bytes. A negative zero result collapses
// to plain zero.
func format(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if len(s) > 1 && s[0] == '-' && isZero(s[1:]) {
		return s[1:]
	}
	return s
}

func isZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '0' && c != '.' {
			return false
		}
	}
	return true
}
