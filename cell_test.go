package h3geo

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		res  int
		want Cell
	}{
		{
			name: "mountain view res 7",
			lat:  37.3615593,
			lng:  -122.0553238,
			res:  7,
			want: 0x87283472bffffff,
		},
		{
			name: "mountain view res 5",
			lat:  37.3615593,
			lng:  -122.0553238,
			res:  5,
			want: 0x85283473fffffff,
		},
		{
			name: "longitude shifted a full rotation",
			lat:  37.3615593,
			lng:  -122.0553238 + 360,
			res:  7,
			want: 0x87283472bffffff,
		},
		{
			name: "longitude shifted two rotations down",
			lat:  37.3615593,
			lng:  -122.0553238 - 720,
			res:  5,
			want: 0x85283473fffffff,
		},
		{
			name: "latitude shifted a full rotation",
			lat:  37.3615593 + 360,
			lng:  -122.0553238,
			res:  7,
			want: 0x87283472bffffff,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(s2.LatLngFromDegrees(tt.lat, tt.lng), tt.res)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(s2.LatLngFromDegrees(math.NaN(), 0), 5); !errors.Is(err, ErrUnableToIndex) {
		t.Errorf("Encode(NaN) error = %v, want ErrUnableToIndex", err)
	}
	if _, err := Encode(s2.LatLngFromDegrees(0, math.Inf(1)), 5); !errors.Is(err, ErrUnableToIndex) {
		t.Errorf("Encode(Inf) error = %v, want ErrUnableToIndex", err)
	}
	if _, err := Encode(s2.LatLngFromDegrees(37, -122), 16); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Encode(res 16) error = %v, want ErrInvalidResolution", err)
	}
	if _, err := Encode(s2.LatLngFromDegrees(37, -122), -1); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Encode(res -1) error = %v, want ErrInvalidResolution", err)
	}
}

func TestDecode(t *testing.T) {
	ll := Cell(0x85283473fffffff).LatLng()
	if got, want := ll.Lat.Degrees(), 37.34579337536848; math.Abs(got-want) > 1e-9 {
		t.Errorf("LatLng().Lat = %v, want %v", got, want)
	}
	if got, want := ll.Lng.Degrees(), -121.97637597255124; math.Abs(got-want) > 1e-9 {
		t.Errorf("LatLng().Lng = %v, want %v", got, want)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want bool
	}{
		{"res 5 hexagon", 0x850dab63fffffff, true},
		{"res 7 hexagon", 0x87283472bffffff, true},
		{"res 2 pentagon", 0x820807fffffffff, true},
		{"garbage", 0x5004295803a88, false},
		{"zero", 0, false},
		{"high bit set", 0x8850dab63fffffff, false},
		{"digit past resolution not sentinel", 0x850dab63fffff00, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Valid(); got != tt.want {
				t.Errorf("Valid(%s) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestInspection(t *testing.T) {
	c := Cell(0x87283472bffffff)
	if got := c.Resolution(); got != 7 {
		t.Errorf("Resolution() = %d, want 7", got)
	}
	if !c.IsResolutionClassIII() {
		t.Error("IsResolutionClassIII() = false for res 7")
	}
	if Cell(0x85283473fffffff).IsResolutionClassIII() {
		t.Error("IsResolutionClassIII() = true for res 5")
	}
	if c.IsPentagon() {
		t.Error("IsPentagon() = true for a hexagon")
	}
	if !Cell(0x820807fffffffff).IsPentagon() {
		t.Error("IsPentagon() = false for a pentagon")
	}
	if got := Cell(0x820807fffffffff).BaseCell(); got != 4 {
		t.Errorf("BaseCell() = %d, want 4", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want Cell
	}{
		{"87283472bffffff", 0x87283472bffffff},
		{"0x87283472bffffff", 0x87283472bffffff},
		{"85283473FFFFFFF", 0x85283473fffffff},
	}
	for _, tt := range tests {
		got, err := CellFromString(tt.in)
		if err != nil {
			t.Fatalf("CellFromString(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("CellFromString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	c := Cell(0x87283472bffffff)
	if got := c.String(); got != "87283472BFFFFFF" {
		t.Errorf("String() = %q", got)
	}
	back, err := CellFromString(c.String())
	if err != nil || back != c {
		t.Errorf("round trip = %s, %v", back, err)
	}
}

func TestCellFromStringErrors(t *testing.T) {
	if _, err := CellFromString("not-hex"); !errors.Is(err, ErrUnableToSerialize) {
		t.Errorf("CellFromString(not-hex) error = %v, want ErrUnableToSerialize", err)
	}
	if _, err := CellFromString("ffffffffffffffff"); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("CellFromString(all ones) error = %v, want ErrInvalidIndex", err)
	}
}

func TestCentroidErrorScalesWithCellSize(t *testing.T) {
	// the centroid of the indexed cell can be no farther from the input
	// point than the cell's own extent at that resolution
	const earthRadiusKm = 6371.007180918475
	points := []s2.LatLng{
		s2.LatLngFromDegrees(37.3615593, -122.0553238),
		s2.LatLngFromDegrees(64.7, -147.35),
		s2.LatLngFromDegrees(-35.3, 149.1),
		s2.LatLngFromDegrees(-78.5, 106.9),
	}
	for _, p := range points {
		for res := 0; res <= 10; res++ {
			c, err := Encode(p, res)
			if err != nil {
				t.Fatalf("Encode(%v, %d) error = %v", p, res, err)
			}
			km := p.Distance(c.LatLng()).Radians() * earthRadiusKm
			if km > 2*EdgeLengthKm(res) {
				t.Errorf("res %d: centroid %.6f km from point, edge length %.6f km",
					res, km, EdgeLengthKm(res))
			}
		}
	}
}

func TestEncodeDecodeRoundTripAcrossResolutions(t *testing.T) {
	points := []s2.LatLng{
		s2.LatLngFromDegrees(37.3615593, -122.0553238),
		s2.LatLngFromDegrees(64.7, -147.35),
		s2.LatLngFromDegrees(-35.3, 149.1),
		s2.LatLngFromDegrees(0.0, 0.0),
		s2.LatLngFromDegrees(-78.5, 106.9),
	}
	for _, p := range points {
		for res := 0; res <= 9; res++ {
			c, err := Encode(p, res)
			if err != nil {
				t.Fatalf("Encode(%v, %d) error = %v", p, res, err)
			}
			back, err := Encode(c.LatLng(), res)
			if err != nil {
				t.Fatalf("Encode(centroid) error = %v", err)
			}
			if back != c {
				t.Errorf("centroid of %s at res %d re-indexed to %s", c, res, back)
			}
		}
	}
}
