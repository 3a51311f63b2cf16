package h3geo

import (
	"testing"

	"github.com/golang/geo/s2"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type GridSuite struct {
	sfVerts []s2.LatLng
}

var _ = Suite(&GridSuite{})

func (s *GridSuite) SetUpSuite(c *C) {
	s.sfVerts = []s2.LatLng{
		s2.LatLngFromDegrees(37.813318999983238, -122.4089866999972145),
		s2.LatLngFromDegrees(37.7866302000007224, -122.3805436999997056),
		s2.LatLngFromDegrees(37.7198061999978478, -122.3544736999993603),
		s2.LatLngFromDegrees(37.7076131999975672, -122.5123436999983966),
		s2.LatLngFromDegrees(37.7835871999971715, -122.5247187000021967),
		s2.LatLngFromDegrees(37.8151571999998453, -122.4798767000009008),
	}
}

func (s *GridSuite) TestEncodeDecodeRoundTrip(c *C) {
	cell, err := Encode(s2.LatLngFromDegrees(37.3615593, -122.0553238), 7)
	c.Assert(err, IsNil)
	c.Assert(cell, Equals, Cell(0x87283472bffffff))
	c.Assert(cell.Valid(), Equals, true)

	// re-indexing the centroid must give the same cell
	back, err := Encode(cell.LatLng(), 7)
	c.Assert(err, IsNil)
	c.Assert(back, Equals, cell)
}

func (s *GridSuite) TestIndexKRingBoundaryPipeline(c *C) {
	cell, err := Encode(s2.LatLngFromDegrees(37.775, -122.418), 9)
	c.Assert(err, IsNil)

	ring := KRing(cell, 1)
	c.Assert(ring, HasLen, 7)
	for _, n := range ring {
		c.Assert(n.Valid(), Equals, true)
		c.Assert(n.Resolution(), Equals, 9)
		b := n.Boundary()
		c.Assert(len(b) >= 6, Equals, true)
	}
}

func (s *GridSuite) TestPolyfillCompactUncompact(c *C) {
	cells, err := Polyfill(GeoPolygon{Exterior: s.sfVerts}, 9)
	c.Assert(err, IsNil)
	c.Assert(cells, HasLen, 1253)

	comp, err := Compact(cells)
	c.Assert(err, IsNil)
	c.Assert(comp, HasLen, 209)

	unc, err := Uncompact(comp, 9)
	c.Assert(err, IsNil)
	c.Assert(unc, HasLen, 1253)

	want := make(map[Cell]struct{}, len(cells))
	for _, cl := range cells {
		want[cl] = struct{}{}
	}
	for _, cl := range unc {
		_, ok := want[cl]
		c.Assert(ok, Equals, true)
	}
}

func (s *GridSuite) TestTwelvePentagonsPerResolution(c *C) {
	for _, res := range []int{0, 1, 2} {
		pentagons := 0
		for bc := 0; bc < numBaseCells; bc++ {
			h := (cellInit | cellMode<<modeOffset).setResolution(res).setBaseCell(bc)
			for r := 1; r <= res; r++ {
				h = h.setDigit(r, centerDigit)
			}
			c.Assert(h.Valid(), Equals, true)
			if h.IsPentagon() {
				pentagons++
			}
		}
		c.Assert(pentagons, Equals, 12)
	}
}

func (s *GridSuite) TestCellCounts(c *C) {
	c.Assert(NumCells(0), Equals, 122)
	c.Assert(NumCells(1), Equals, 842)
	c.Assert(NumCells(2), Equals, 5882)

	// enumerate every res 1 cell from the base cells
	seen := make(map[Cell]struct{})
	for bc := 0; bc < numBaseCells; bc++ {
		h := (cellInit | cellMode<<modeOffset).setBaseCell(bc)
		kids, err := h.Children(1)
		c.Assert(err, IsNil)
		for _, k := range kids {
			seen[k] = struct{}{}
		}
	}
	c.Assert(seen, HasLen, 842)
}
