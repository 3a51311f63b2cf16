package h3geo

import (
	"math"
	"testing"
)

func TestBoundaryRes5(t *testing.T) {
	b := Cell(0x85283473fffffff).Boundary()
	want := [][2]float64{
		{37.271355866731895, -121.91508032705622},
		{37.353926450852256, -121.86222328902491},
		{37.42834118609435, -121.9235499963016},
		{37.42012867767778, -122.0377349642703},
		{37.33755608435298, -122.09042892904395},
		{37.26319797461824, -122.02910130919},
	}
	if len(b) != 6 {
		t.Fatalf("Boundary() returned %d vertices, want 6", len(b))
	}

	// vertex order is fixed but the starting vertex may differ
	match := func(off int) bool {
		for i, w := range want {
			v := b[(i+off)%6]
			if math.Abs(v.Lat.Degrees()-w[0]) > 1e-9 || math.Abs(v.Lng.Degrees()-w[1]) > 1e-9 {
				return false
			}
		}
		return true
	}
	for off := 0; off < 6; off++ {
		if match(off) {
			return
		}
	}
	t.Errorf("Boundary() vertices do not match expected ring: %v", b)
}

func TestBoundaryClassIII(t *testing.T) {
	b := Cell(0x87283472bffffff).Boundary()
	if len(b) < 6 || len(b) > 10 {
		t.Errorf("Class III Boundary() returned %d vertices, want 6..10", len(b))
	}
	for _, v := range b {
		if math.Abs(v.Lat.Degrees()) > 90 || math.Abs(v.Lng.Degrees()) > 180 {
			t.Errorf("vertex out of range: %v", v)
		}
	}
}

func TestBoundaryPentagon(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want int
	}{
		{"res 0 pentagon", 0x8009fffffffffff, 5},
		{"res 2 pentagon", 0x820807fffffffff, 5},
		// Class III pentagons pick up a face-crossing vertex on each edge
		{"res 3 pentagon", 0x830800fffffffff, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.cell.Boundary()); got != tt.want {
				t.Errorf("Boundary() returned %d vertices, want %d", got, tt.want)
			}
		})
	}
}

func TestBoundarySurroundsCentroid(t *testing.T) {
	for _, c := range []Cell{0x85283473fffffff, 0x87283472bffffff, 0x8928308280fffff} {
		b := c.Boundary()
		ll := c.LatLng()
		var lat, lng float64
		for _, v := range b {
			lat += v.Lat.Degrees()
			lng += v.Lng.Degrees()
		}
		lat /= float64(len(b))
		lng /= float64(len(b))
		if math.Abs(lat-ll.Lat.Degrees()) > 0.01 || math.Abs(lng-ll.Lng.Degrees()) > 0.01 {
			t.Errorf("cell %s: vertex mean (%f, %f) far from centroid %v", c, lat, lng, ll)
		}
	}
}

func TestIcosahedronFaces(t *testing.T) {
	faces := Cell(0x85283473fffffff).IcosahedronFaces()
	if len(faces) != 1 || faces[0] != 7 {
		t.Errorf("IcosahedronFaces() = %v, want [7]", faces)
	}
	if got := Cell(0x85283473fffffff).MaxFaceCount(); got != 2 {
		t.Errorf("MaxFaceCount() = %d, want 2", got)
	}

	pent := Cell(0x820807fffffffff)
	pf := pent.IcosahedronFaces()
	if len(pf) < 4 || len(pf) > pent.MaxFaceCount() {
		t.Errorf("pentagon IcosahedronFaces() = %v", pf)
	}
	if got := pent.MaxFaceCount(); got != 5 {
		t.Errorf("pentagon MaxFaceCount() = %d, want 5", got)
	}
}
