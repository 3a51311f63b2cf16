package h3geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// Boundary vertex math operates on a substrate grid: the cell's coordinates
// subdivided by aperture 3 twice (and once more by aperture 7 for Class III
// resolutions), so that hexagon vertices land on substrate cell centers.

// vertexEpsilon matches FLT_EPSILON, coarse enough to absorb substrate
// rounding when comparing projected vertices.
const vertexEpsilon = 1.19209290e-07

// adjacentFaceDir caches, for each pair of adjacent faces, which quadrant of
// faceNeighbors connects them.
var adjacentFaceDir = func() [numIcosaFaces][numIcosaFaces]int {
	var m [numIcosaFaces][numIcosaFaces]int
	for i := range m {
		for j := range m[i] {
			m[i][j] = -1
		}
	}
	for f := 0; f < numIcosaFaces; f++ {
		for _, q := range []int{ijQuadrant, kiQuadrant, jkQuadrant} {
			m[f][faceNeighbors[f][q].face] = q
		}
	}
	return m
}()

// toVerts converts a cell's face coordinates to the substrate coordinates of
// its vertices. Returns the substrate resolution, the cell center on the
// substrate grid, and one faceIJK per vertex.
func (f faceIJK) toVerts(res int) (int, faceIJK, []faceIJK) {
	verts := &vertsCII
	if isResolutionClassIII(res) {
		verts = &vertsCIII
	}

	c := f.coord.downAp3().downAp3r()
	if isResolutionClassIII(res) {
		c = c.downAp7r()
		res++
	}

	out := make([]faceIJK, len(verts))
	for i, v := range verts {
		out[i] = faceIJK{face: f.face, coord: c.add(v).normalize()}
	}
	return res, faceIJK{face: f.face, coord: c}, out
}

func v2dAlmostEqual(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < vertexEpsilon && math.Abs(a.Y-b.Y) < vertexEpsilon
}

// faceEdgeEndpoints returns the substrate-plane endpoints of the face edge in the
// given quadrant direction.
func faceEdgeEndpoints(quadrant, maxDim int) (r2.Point, r2.Point) {
	m := float64(maxDim)
	v0 := r2.Point{X: 3.0 * m}
	v1 := r2.Point{X: -1.5 * m, Y: 3.0 * sqrt3Over2 * m}
	v2 := r2.Point{X: -1.5 * m, Y: -3.0 * sqrt3Over2 * m}
	switch quadrant {
	case ijQuadrant:
		return v0, v1
	case jkQuadrant:
		return v1, v2
	default:
		return v2, v0
	}
}

// Boundary returns the cell's outline as an ordered counterclockwise ring of
// vertices. Hexagons have 6 vertices and pentagons 5, plus extra vertices
// where a Class III cell's edge crosses an icosahedron face edge.
func (c Cell) Boundary() []s2.LatLng {
	f := c.toFaceIJK()
	res := c.Resolution()
	if c.IsPentagon() {
		return pentBoundary(f, res)
	}

	adjRes, center, fijkVerts := f.toVerts(res)

	var g []s2.LatLng
	lastFace := -1
	lastOverage := noOverage
	for vert := 0; vert < 7; vert++ {
		v := vert % 6
		ov, vf := fijkVerts[v].adjustOverageClassII(adjRes, false, true)

		// Class III cell edges can cross icosahedron edges between
		// vertices; add the crossing point
		if isResolutionClassIII(res) && vert > 0 && vf.face != lastFace && lastOverage != faceEdge {
			lastV := (v + 5) % 6
			orig2d0 := fijkVerts[lastV].coord.hex2d()
			orig2d1 := fijkVerts[v].coord.hex2d()

			maxDim := maxDimByCIIres[adjRes]
			face2 := lastFace
			if lastFace == center.face {
				face2 = vf.face
			}
			edge0, edge1 := faceEdgeEndpoints(adjacentFaceDir[center.face][face2], maxDim)
			inter := intersect(orig2d0, orig2d1, edge0, edge1)
			if !v2dAlmostEqual(orig2d0, inter) && !v2dAlmostEqual(orig2d1, inter) {
				g = append(g, hex2dToGeo(inter, center.face, adjRes, true))
			}
		}

		if vert < 6 {
			g = append(g, hex2dToGeo(vf.coord.hex2d(), vf.face, adjRes, true))
		}
		lastFace = vf.face
		lastOverage = ov
	}
	return g
}

func pentBoundary(f faceIJK, res int) []s2.LatLng {
	adjRes, _, fijkVerts := f.toVerts(res)
	fijkVerts = fijkVerts[:5]

	var g []s2.LatLng
	var lastFijk faceIJK
	for vert := 0; vert < 6; vert++ {
		v := vert % 5
		fijk := fijkVerts[v].adjustPentVertOverage(adjRes)

		if isResolutionClassIII(res) && vert > 0 {
			// project the previous vertex onto this vertex's face to
			// find the edge crossing
			orig2d0 := lastFijk.coord.hex2d()

			orient := faceNeighbors[fijk.face][adjacentFaceDir[fijk.face][lastFijk.face]]
			ijk := fijk.coord
			for i := 0; i < orient.ccwRot60; i++ {
				ijk = ijk.rotate60ccw()
			}
			ijk = ijk.add(orient.translate.scale(unitScaleByCIIres[adjRes] * 3)).normalize()
			orig2d1 := ijk.hex2d()

			maxDim := maxDimByCIIres[adjRes]
			edge0, edge1 := faceEdgeEndpoints(adjacentFaceDir[orient.face][fijk.face], maxDim)
			inter := intersect(orig2d0, orig2d1, edge0, edge1)
			g = append(g, hex2dToGeo(inter, orient.face, adjRes, true))
		}

		if vert < 5 {
			g = append(g, hex2dToGeo(fijk.coord.hex2d(), fijk.face, adjRes, true))
		}
		lastFijk = fijk
	}
	return g
}
