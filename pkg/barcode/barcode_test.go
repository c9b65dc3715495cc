package barcode

import (
	"strings"
	"testing"

	"github.com/etchlab/etchmark/pkg/errors"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		sizeMM  float64
		wantErr errors.Code
	}{
		{name: "valid", data: "HELLO", sizeMM: 5.0},
		{name: "minimum size", data: "X", sizeMM: 1.0},
		{name: "maximum size", data: "X", sizeMM: 100.0},
		{name: "empty data", data: "", sizeMM: 5.0, wantErr: errors.ErrCodeExternalRenderer},
		{name: "oversized payload", data: strings.Repeat("A", MaxDataBytes+1), sizeMM: 5.0, wantErr: errors.ErrCodeExternalRenderer},
		{name: "size too small", data: "X", sizeMM: 0.5, wantErr: errors.ErrCodeInvalidConfiguration},
		{name: "size too large", data: "X", sizeMM: 100.1, wantErr: errors.ErrCodeInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.data, tt.sizeMM)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("validateRequest error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("validateRequest unexpected error: %v", err)
			}
		})
	}
}

func TestDataMatrixRender(t *testing.T) {
	r := NewDataMatrix()

	frag, err := r.Render("https://etch.example/id/00123454", 5.0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(frag)
	if !strings.HasPrefix(out, `<g transform="scale(`) {
		t.Errorf("fragment does not open with a scale group:\n%s", out)
	}
	if !strings.HasSuffix(out, "</g>\n") {
		t.Errorf("fragment does not close the group:\n%s", out)
	}
	if !strings.Contains(out, `height="1"`) {
		t.Error("fragment contains no module rectangles")
	}
	// Finder pattern: the left column of a DataMatrix symbol is solid, so a
	// rect at x=0 must appear on every module row.
	if !strings.Contains(out, `<rect x="0" y="0"`) {
		t.Error("missing top-left finder module")
	}
}

func TestDataMatrixRenderDeterministic(t *testing.T) {
	r := NewDataMatrix()

	a, err := r.Render("00123454", 5.0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := r.Render("00123454", 5.0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(a) != string(b) {
		t.Error("identical requests produced different fragments")
	}
}

func TestDataMatrixRenderInvalid(t *testing.T) {
	r := NewDataMatrix()

	if _, err := r.Render("", 5.0); !errors.Is(err, errors.ErrCodeExternalRenderer) {
		t.Errorf("empty data error = %v, want EXTERNAL_RENDERER_FAILURE", err)
	}
	if _, err := r.Render("X", 0); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("zero size error = %v, want INVALID_CONFIGURATION", err)
	}
}
