package document

import (
	"testing"

	"github.com/etchlab/etchmark/pkg/errors"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "full configuration", opts: []Option{
			WithCanvas(Canvas{Width: 200, Height: 100}),
			WithCalibration(0.3, -0.2),
			WithRotation(180),
			WithVerticalOffset(2.5),
			WithTitle("Array 42"),
			WithCrosshair(),
			WithURLBase("https://etch.example/id/"),
		}},
		{name: "canvas too narrow", opts: []Option{WithCanvas(Canvas{Width: 9.9, Height: 100})}, wantErr: true},
		{name: "canvas too tall", opts: []Option{WithCanvas(Canvas{Width: 100, Height: 300.1})}, wantErr: true},
		{name: "rotation not a quarter turn", opts: []Option{WithRotation(45)}, wantErr: true},
		{name: "negative rotation", opts: []Option{WithRotation(-90)}, wantErr: true},
		{name: "offset too large", opts: []Option{WithVerticalOffset(5.1)}, wantErr: true},
		{name: "offset too small", opts: []Option{WithVerticalOffset(-5.1)}, wantErr: true},
		{name: "zero text height", opts: []Option{WithTextHeights(TextHeights{Label: 0, URL: 1.2, LED: 1.0})}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
					t.Errorf("New error = %v, want INVALID_CONFIGURATION", err)
				}
				return
			}
			if err != nil {
				t.Errorf("New unexpected error: %v", err)
			}
		})
	}
}

func TestAddSlot(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := d.AddSlot(Slot{Position: 3, Identifier: 42}); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}

	tests := []struct {
		name string
		slot Slot
	}{
		{"position zero", Slot{Position: 0, Identifier: 1}},
		{"position nine", Slot{Position: 9, Identifier: 1}},
		{"duplicate position", Slot{Position: 3, Identifier: 7}},
		{"LED sub-position zero", Slot{Position: 4, Identifier: 1, LEDCodes: map[int]string{0: "K7P"}}},
		{"LED sub-position five", Slot{Position: 4, Identifier: 1, LEDCodes: map[int]string{5: "K7P"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.AddSlot(tt.slot); !errors.Is(err, errors.ErrCodeInvalidPosition) {
				t.Errorf("AddSlot error = %v, want INVALID_POSITION", err)
			}
		})
	}
}

func TestSlotCenter(t *testing.T) {
	tests := []struct {
		position int
		wantX    float64
		wantY    float64
	}{
		{1, 22.0, 78.0},
		{4, 127.0, 78.0},
		{5, 22.0, 36.0},
		{8, 127.0, 36.0},
	}

	for _, tt := range tests {
		got := slotCenter(tt.position)
		if got.X != tt.wantX || got.Y != tt.wantY {
			t.Errorf("slotCenter(%d) = (%v,%v), want (%v,%v)",
				tt.position, got.X, got.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestLEDAnchor(t *testing.T) {
	center := slotCenter(1)
	first := ledAnchor(center, 1)
	last := ledAnchor(center, 4)

	if first.X != 10.0 || first.Y != 66.0 {
		t.Errorf("sub-position 1 anchor = (%v,%v), want (10,66)", first.X, first.Y)
	}
	if last.X != 34.0 || last.Y != 66.0 {
		t.Errorf("sub-position 4 anchor = (%v,%v), want (34,66)", last.X, last.Y)
	}
}
