package geometry

import "testing"

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0000"},
		{0.05, "0.0500"},
		{21.325, "21.3250"},
		{113.7, "113.7000"},
		{-2.5, "-2.5000"},
		{1.00005, "1.0001"},
		{-0.00001, "0.0000"}, // negative zero collapses
	}

	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDim(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{148.0, "148.0"},
		{113.7, "113.7"},
		{113.74, "113.7"},
		{10, "10.0"},
	}

	for _, tt := range tests {
		if got := FormatDim(tt.in); got != tt.want {
			t.Errorf("FormatDim(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatScale(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.000000"},
		{0.1, "0.100000"},
		{8.0 / 26.0, "0.307692"},
	}

	for _, tt := range tests {
		if got := FormatScale(tt.in); got != tt.want {
			t.Errorf("FormatScale(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// The same value must always produce the same bytes regardless of how it
// was computed; golden documents depend on this.
func TestFormatDeterminism(t *testing.T) {
	a := 0.1 + 0.2
	b := 0.3
	if FormatCoord(a) != FormatCoord(b) {
		t.Errorf("FormatCoord(0.1+0.2)=%q differs from FormatCoord(0.3)=%q",
			FormatCoord(a), FormatCoord(b))
	}
}
