package h3geo

import (
	"errors"
	"testing"

	"github.com/golang/geo/s2"
)

func cellSet(cells []Cell) map[Cell]struct{} {
	m := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		m[c] = struct{}{}
	}
	return m
}

var kRing1Expected = []Cell{
	0x8928308280fffff, 0x8928308280bffff, 0x89283082807ffff,
	0x89283082877ffff, 0x89283082803ffff, 0x89283082873ffff,
	0x8928308283bffff,
}

var kRing2Expected = []Cell{
	0x8928308280fffff, 0x8928308280bffff, 0x89283082873ffff,
	0x89283082877ffff, 0x8928308283bffff, 0x89283082807ffff,
	0x89283082803ffff, 0x8928308281bffff, 0x89283082857ffff,
	0x89283082847ffff, 0x8928308287bffff, 0x89283082863ffff,
	0x89283082867ffff, 0x8928308282bffff, 0x89283082823ffff,
	0x89283082833ffff, 0x89283082813ffff, 0x89283082817ffff,
	0x892830828abffff,
}

func TestKRing1(t *testing.T) {
	got := cellSet(KRing(0x8928308280fffff, 1))
	want := cellSet(kRing1Expected)
	if len(got) != len(want) {
		t.Fatalf("KRing(1) returned %d cells, want %d", len(got), len(want))
	}
	for c := range want {
		if _, ok := got[c]; !ok {
			t.Errorf("KRing(1) missing %s", c)
		}
	}
}

func TestKRing2(t *testing.T) {
	got := cellSet(KRing(0x8928308280fffff, 2))
	want := cellSet(kRing2Expected)
	if len(got) != len(want) {
		t.Fatalf("KRing(2) returned %d cells, want %d", len(got), len(want))
	}
	for c := range want {
		if _, ok := got[c]; !ok {
			t.Errorf("KRing(2) missing %s", c)
		}
	}
}

func TestKRingPentagon(t *testing.T) {
	got := cellSet(KRing(0x821c07fffffffff, 1))
	want := cellSet([]Cell{
		0x821c2ffffffffff, 0x821c27fffffffff, 0x821c07fffffffff,
		0x821c17fffffffff, 0x821c1ffffffffff, 0x821c37fffffffff,
	})
	if len(got) != 6 {
		t.Fatalf("pentagon KRing(1) returned %d cells, want 6", len(got))
	}
	for c := range want {
		if _, ok := got[c]; !ok {
			t.Errorf("pentagon KRing(1) missing %s", c)
		}
	}
}

func TestKRingWithDistances(t *testing.T) {
	m := KRingWithDistances(0x8928308280fffff, 1)
	if len(m) != 7 {
		t.Fatalf("KRingWithDistances(1) returned %d cells, want 7", len(m))
	}
	if m[0x8928308280fffff] != 0 {
		t.Errorf("origin distance = %d, want 0", m[0x8928308280fffff])
	}
	// the distance 1 bucket is exactly the six adjacent cells
	for _, c := range kRing1Expected {
		want := 1
		if c == 0x8928308280fffff {
			want = 0
		}
		d, ok := m[c]
		if !ok || d != want {
			t.Errorf("m[%s] = %d, %t, want %d", c, d, ok, want)
		}
	}
}

func TestMaxKRingSize(t *testing.T) {
	for k, want := range map[int]int{0: 1, 1: 7, 2: 19, 3: 37} {
		if got := MaxKRingSize(k); got != want {
			t.Errorf("MaxKRingSize(%d) = %d, want %d", k, got, want)
		}
		if got := len(KRing(0x8928308280fffff, k)); got != want {
			t.Errorf("KRing(%d) has %d cells, want %d", k, got, want)
		}
	}
}

func TestKRingWithDistancesNearPentagon(t *testing.T) {
	// origin adjacent to a pentagon: ring counts shrink
	m := KRingWithDistances(0x870800003ffffff, 2)
	counts := map[int]int{}
	for _, d := range m {
		counts[d]++
	}
	if counts[0] != 1 || counts[1] != 6 || counts[2] != 11 {
		t.Errorf("bucket sizes = %v, want {0:1 1:6 2:11}", counts)
	}
}

func TestHexRange(t *testing.T) {
	out, err := HexRange(0x8928308280fffff, 2)
	if err != nil {
		t.Fatalf("HexRange() error = %v", err)
	}
	if len(out) != 19 {
		t.Fatalf("HexRange(2) returned %d cells, want 19", len(out))
	}
	if out[0].Cell != 0x8928308280fffff || out[0].Distance != 0 {
		t.Errorf("HexRange()[0] = %+v", out[0])
	}
	// distances are ring-ordered and non-decreasing
	last := 0
	for _, cd := range out {
		if cd.Distance < last {
			t.Errorf("distance order violated at %s", cd.Cell)
		}
		last = cd.Distance
	}
}

func TestHexRangePentagonFails(t *testing.T) {
	if _, err := HexRange(0x821c07fffffffff, 1); !errors.Is(err, ErrUnableToComputeTraversal) {
		t.Errorf("HexRange(pentagon) error = %v, want ErrUnableToComputeTraversal", err)
	}
}

func TestHexRing(t *testing.T) {
	ring, err := HexRing(0x8928308280fffff, 1)
	if err != nil {
		t.Fatalf("HexRing() error = %v", err)
	}
	want := []Cell{
		0x89283082803ffff, 0x8928308280bffff, 0x89283082873ffff,
		0x89283082877ffff, 0x8928308283bffff, 0x89283082807ffff,
	}
	if len(ring) != len(want) {
		t.Fatalf("HexRing(1) returned %d cells, want %d", len(ring), len(want))
	}
	for i, c := range ring {
		if c != want[i] {
			t.Errorf("HexRing(1)[%d] = %s, want %s", i, c, want[i])
		}
	}

	ring2, err := HexRing(0x8928308280fffff, 2)
	if err != nil {
		t.Fatalf("HexRing(2) error = %v", err)
	}
	if len(ring2) != 12 {
		t.Fatalf("HexRing(2) returned %d cells, want 12", len(ring2))
	}
	inner := cellSet(kRing1Expected)
	outer := cellSet(kRing2Expected)
	for _, c := range ring2 {
		if _, ok := outer[c]; !ok {
			t.Errorf("HexRing(2) produced %s outside kRing(2)", c)
		}
		if _, ok := inner[c]; ok {
			t.Errorf("HexRing(2) produced inner cell %s", c)
		}
	}
}

func TestHexRingPentagonFails(t *testing.T) {
	if _, err := HexRing(0x821c07fffffffff, 1); !errors.Is(err, ErrUnableToComputeTraversal) {
		t.Errorf("HexRing(pentagon origin) error = %v, want ErrUnableToComputeTraversal", err)
	}
}

func TestHexRingZero(t *testing.T) {
	ring, err := HexRing(0x8928308280fffff, 0)
	if err != nil || len(ring) != 1 || ring[0] != 0x8928308280fffff {
		t.Errorf("HexRing(0) = %v, %v", ring, err)
	}
}

func TestGridDistance(t *testing.T) {
	origin := Cell(0x8928308280fffff)
	if d, err := GridDistance(origin, origin); err != nil || d != 0 {
		t.Errorf("GridDistance(self) = %d, %v", d, err)
	}

	// distance must agree with k-ring bucketing
	for c, want := range KRingWithDistances(origin, 3) {
		d, err := GridDistance(origin, c)
		if err != nil {
			t.Fatalf("GridDistance(%s) error = %v", c, err)
		}
		if d != want {
			t.Errorf("GridDistance(%s) = %d, want %d", c, d, want)
		}
	}
}

func TestGridDistanceResolutionMismatch(t *testing.T) {
	if _, err := GridDistance(0x8928308280fffff, 0x87283472bffffff); !errors.Is(err, ErrIncompatibleIndices) {
		t.Errorf("GridDistance(mixed res) error = %v, want ErrIncompatibleIndices", err)
	}
}

func TestLine(t *testing.T) {
	a, b := Cell(0x8928308280fffff), Cell(0x89283082837ffff)
	line, err := Line(a, b)
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	want := []Cell{
		0x8928308280fffff, 0x8928308283bffff, 0x89283082833ffff,
		0x89283082837ffff,
	}
	if len(line) != len(want) {
		t.Fatalf("Line() returned %d cells, want %d", len(line), len(want))
	}
	for i, c := range line {
		if c != want[i] {
			t.Errorf("Line()[%d] = %s, want %s", i, c, want[i])
		}
	}

	// consecutive cells must be grid-adjacent
	for i := 1; i < len(line); i++ {
		d, err := GridDistance(line[i-1], line[i])
		if err != nil || d != 1 {
			t.Errorf("line step %d: distance = %d, %v", i, d, err)
		}
	}
}

func TestLineResolutionMismatch(t *testing.T) {
	if _, err := Line(0x8928308280fffff, 0x87283472bffffff); !errors.Is(err, ErrUnableToComputeLine) {
		t.Errorf("Line(mixed res) error = %v, want ErrUnableToComputeLine", err)
	}
}

func TestLineAcrossIcosahedronFails(t *testing.T) {
	// endpoints in non-adjacent base cells exceed the local coordinate span
	a, err := Encode(s2.LatLngFromDegrees(37.77, -122.41), 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(s2.LatLngFromDegrees(-33.87, 151.21), 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Line(a, b); !errors.Is(err, ErrUnableToComputeLine) {
		t.Errorf("Line(non-adjacent base cells) error = %v, want ErrUnableToComputeLine", err)
	}
	if _, err := GridDistance(a, b); !errors.Is(err, ErrIncompatibleIndices) {
		t.Errorf("GridDistance(non-adjacent base cells) error = %v, want ErrIncompatibleIndices", err)
	}
}
