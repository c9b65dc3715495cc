package microid

import (
	"math"
	"testing"

	"github.com/etchlab/etchmark/pkg/errors"
)

func TestDotPositionsCount(t *testing.T) {
	tests := []struct {
		name string
		id   uint32
		want int
	}{
		{
			name: "minimum identifier",
			id:   1,
			want: 7, // orientation + 4 anchors + 1 data + parity
		},
		{
			name: "maximum identifier",
			id:   1048575,
			want: 25, // orientation + 4 anchors + 20 data, parity off
		},
		{
			name: "mid-range",
			id:   123454,
			want: 15, // orientation + 4 anchors + 10 data, parity off
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dots, err := DotPositions(tt.id)
			if err != nil {
				t.Fatalf("DotPositions(%d): %v", tt.id, err)
			}
			if len(dots) != tt.want {
				t.Errorf("DotPositions(%d) count = %d, want %d", tt.id, len(dots), tt.want)
			}
		})
	}
}

func TestDotPositionsOrder(t *testing.T) {
	dots, err := DotPositions(1)
	if err != nil {
		t.Fatalf("DotPositions: %v", err)
	}

	wantKinds := []Kind{
		KindOrientation,
		KindAnchor, KindAnchor, KindAnchor, KindAnchor,
		KindData,
		KindParity,
	}
	for i, k := range wantKinds {
		if dots[i].Kind != k {
			t.Errorf("dot %d kind = %s, want %s", i, dots[i].Kind, k)
		}
	}
}

func TestDotGeometry(t *testing.T) {
	dots, err := DotPositions(1048575)
	if err != nil {
		t.Fatalf("DotPositions: %v", err)
	}

	orientation := dots[0]
	if orientation.X != OrientationDX || orientation.Y != OrientationDY {
		t.Errorf("orientation marker at (%v,%v), want (%v,%v)",
			orientation.X, orientation.Y, OrientationDX, OrientationDY)
	}

	for _, d := range dots[1:] {
		wantX := EdgeOffset + float64(d.Col)*Pitch
		wantY := EdgeOffset + float64(d.Row)*Pitch
		if math.Abs(d.X-wantX) > 1e-12 || math.Abs(d.Y-wantY) > 1e-12 {
			t.Errorf("dot (%d,%d) at (%v,%v), want (%v,%v)", d.Row, d.Col, d.X, d.Y, wantX, wantY)
		}
	}

	// The grid footprint is exactly 1mm: first center at 0.05, last at 0.95.
	last := EdgeOffset + float64(GridSize-1)*Pitch
	if math.Abs(last-0.95) > 1e-12 {
		t.Errorf("last dot center = %v, want 0.95", last)
	}
}

func TestDotPositionsBitMapping(t *testing.T) {
	// id 1 sets only bit 0, which lives in the last data cell (4,2).
	dots, err := DotPositions(1)
	if err != nil {
		t.Fatalf("DotPositions: %v", err)
	}

	var data *Dot
	for i := range dots {
		if dots[i].Kind == KindData {
			data = &dots[i]
			break
		}
	}
	if data == nil {
		t.Fatal("no data dot for id 1")
	}
	if data.Bit != 0 || data.Row != 4 || data.Col != 2 {
		t.Errorf("bit 0 dot = bit %d at (%d,%d), want bit 0 at (4,2)", data.Bit, data.Row, data.Col)
	}
}

func TestDotPositionsOutOfRange(t *testing.T) {
	for _, id := range []uint32{0, 1048576} {
		if _, err := DotPositions(id); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("DotPositions(%d) error = %v, want OUT_OF_RANGE", id, err)
		}
	}
}
