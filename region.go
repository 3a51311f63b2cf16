package h3geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GeoPolygon is a polygon region: one exterior ring and zero or more hole
// rings. Rings are ordered point sequences; closure is implicit.
type GeoPolygon struct {
	Exterior []s2.LatLng
	Holes    [][]s2.LatLng
}

// MultiPolygon is a set of dissolved polygon outlines.
type MultiPolygon []GeoPolygon

// loopIsTransmeridian reports whether any ring edge spans more than half a
// rotation in longitude, meaning the ring crosses the antimeridian rather
// than wrapping the long way around the globe.
func loopIsTransmeridian(loop []s2.LatLng) bool {
	n := len(loop)
	for i := 0; i < n; i++ {
		d := loop[i].Lng.Radians() - loop[(i+1)%n].Lng.Radians()
		if math.Abs(d) > math.Pi {
			return true
		}
	}
	return false
}

// normalizeLng shifts western longitudes into a continuous frame when the
// enclosing ring crosses the antimeridian.
func normalizeLng(lng float64, transmeridian bool) float64 {
	if transmeridian && lng < 0 {
		return lng + 2*math.Pi
	}
	return lng
}

// pointInLoop is a latitude ray cast. Points exactly on a vertex latitude or
// edge longitude are nudged by one ulp so boundary points resolve
// consistently inside.
func pointInLoop(loop []s2.LatLng, p s2.LatLng) bool {
	const eps = 2.220446049250313e-16

	contains := false
	n := len(loop)
	trans := loopIsTransmeridian(loop)
	lat, lng := p.Lat.Radians(), normalizeLng(p.Lng.Radians(), trans)
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		if a.Lat > b.Lat {
			a, b = b, a
		}
		aLat, aLng := a.Lat.Radians(), normalizeLng(a.Lng.Radians(), trans)
		bLat, bLng := b.Lat.Radians(), normalizeLng(b.Lng.Radians(), trans)

		la := lat
		if lat == aLat || lat == bLat {
			la = lat + eps
		}
		if la < aLat || la > bLat {
			continue
		}
		lg := lng
		if aLng == lg || bLng == lg {
			lg -= eps
		}
		ratio := (la - aLat) / (bLat - aLat)
		testLng := aLng + (bLng-aLng)*ratio
		if testLng > lg {
			contains = !contains
		}
	}
	return contains
}

func (gp GeoPolygon) contains(p s2.LatLng) bool {
	if !pointInLoop(gp.Exterior, p) {
		return false
	}
	for _, h := range gp.Holes {
		// empty hole rings have no interior to exclude
		if len(h) == 0 {
			continue
		}
		if pointInLoop(h, p) {
			return false
		}
	}
	return true
}

// Polyfill returns every cell at res whose centroid lies inside the polygon.
// Cells are discovered by tracing the rings and flood filling from them, so
// disjoint polygon lobes connected only through the exterior ring are still
// covered.
func Polyfill(gp GeoPolygon, res int) ([]Cell, error) {
	if res < 0 || res > MaxResolution {
		return nil, ErrInvalidResolution
	}
	if len(gp.Exterior) == 0 {
		return nil, nil
	}

	// seed with cells along each ring edge at sub-cell spacing
	seeds := make(map[Cell]struct{})
	rings := append([][]s2.LatLng{gp.Exterior}, gp.Holes...)
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			// interpolate across the antimeridian on the short arc
			aLng, bLng := a.Lng.Radians(), b.Lng.Radians()
			if d := bLng - aLng; d > math.Pi {
				bLng -= 2 * math.Pi
			} else if d < -math.Pi {
				bLng += 2 * math.Pi
			}
			const steps = 32
			for s := 0; s <= steps; s++ {
				t := float64(s) / steps
				ll := s2.LatLng{
					Lat: a.Lat + (b.Lat-a.Lat)*s1.Angle(t),
					Lng: s1.Angle(aLng + (bLng-aLng)*t),
				}
				if c, err := Encode(ll, res); err == nil {
					seeds[c] = struct{}{}
				}
			}
		}
	}

	frontier := make(map[Cell]struct{})
	for c := range seeds {
		for _, n := range KRing(c, 1) {
			frontier[n] = struct{}{}
		}
	}

	seen := make(map[Cell]struct{})
	var out []Cell
	for len(frontier) > 0 {
		next := make(map[Cell]struct{})
		for c := range frontier {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			if !gp.contains(c.LatLng()) {
				continue
			}
			out = append(out, c)
			for _, n := range KRing(c, 1) {
				if _, ok := seen[n]; !ok {
					next[n] = struct{}{}
				}
			}
		}
		frontier = next
	}
	return out, nil
}

// MaxPolyfillSize returns an upper bound on the number of cells Polyfill can
// produce for the polygon at res, suitable for buffer sizing. It may
// overestimate, never underestimate.
func MaxPolyfillSize(gp GeoPolygon, res int) (int, error) {
	if res < 0 || res > MaxResolution {
		return 0, ErrInvalidResolution
	}
	if len(gp.Exterior) == 0 {
		return 0, nil
	}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLng, maxLng := math.Inf(1), math.Inf(-1)
	for _, p := range gp.Exterior {
		minLat = math.Min(minLat, p.Lat.Radians())
		maxLat = math.Max(maxLat, p.Lat.Radians())
		minLng = math.Min(minLng, p.Lng.Radians())
		maxLng = math.Max(maxLng, p.Lng.Radians())
	}

	// spherical bounding box area in km^2
	const earthRadiusKm = 6371.007180918475
	lngSpan := maxLng - minLng
	if loopIsTransmeridian(gp.Exterior) {
		lngSpan = 2*math.Pi - lngSpan
	}
	area := math.Abs(math.Sin(maxLat)-math.Sin(minLat)) * lngSpan * earthRadiusKm * earthRadiusKm

	// cells near the icosahedron vertices run well under the average area,
	// so size the bound from a pessimistic per-cell area
	const minAreaFactor = 0.4
	cells := int(math.Ceil(area / (minAreaFactor * HexAreaKm2(res))))

	// pad for boundary cells straddling the rings
	perimeterSteps := len(gp.Exterior)
	for _, h := range gp.Holes {
		perimeterSteps += len(h)
	}
	return cells + 33*perimeterSteps + 1, nil
}

// ToMultiPolygon dissolves a cell set into merged polygon outlines.
//
// Not yet implemented: requires tracing shared edges across the cell set and
// reassembling minimal exterior and hole rings.
func ToMultiPolygon(cells []Cell) (MultiPolygon, error) {
	return nil, ErrNotImplemented
}
