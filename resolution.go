package h3geo

// Average cell geometry per resolution. Values are averages over all cells
// at the resolution; individual cells vary with projection distortion.

// HexAreaKm2 returns the average hexagon area in square kilometers at the
// given resolution.
func HexAreaKm2(res int) float64 {
	return hexAreaKm2[res]
}

// EdgeLengthKm returns the average hexagon edge length in kilometers at the
// given resolution.
func EdgeLengthKm(res int) float64 {
	return edgeLengthKm[res]
}

// NumCells returns the number of unique cells at the given resolution: 110
// hexagons and 12 pentagons at resolution 0, multiplying by 7 per level with
// the 12 pentagons never splitting their deleted branch.
func NumCells(res int) int {
	n := 2
	pow := 1
	for i := 0; i < res; i++ {
		pow *= 7
	}
	return n + 120*pow
}

// MaxFaceCount returns the maximum number of icosahedron faces the cell's
// boundary may cross: pentagons sit on five faces, hexagons on at most two.
func (c Cell) MaxFaceCount() int {
	if c.IsPentagon() {
		return 5
	}
	return 2
}

// IcosahedronFaces returns the sorted distinct icosahedron faces on which
// the cell's boundary vertices lie.
func (c Cell) IcosahedronFaces() []int {
	f := c.toFaceIJK()
	res := c.Resolution()
	isPent := c.IsPentagon()

	adjRes, _, fijkVerts := f.toVerts(res)
	if isPent {
		fijkVerts = fijkVerts[:5]
	}

	found := make(map[int]struct{}, 2)
	for _, v := range fijkVerts {
		if isPent {
			v = v.adjustPentVertOverage(adjRes)
		} else {
			_, v = v.adjustOverageClassII(adjRes, false, true)
		}
		found[v.face] = struct{}{}
	}

	out := make([]int, 0, len(found))
	for face := 0; face < numIcosaFaces; face++ {
		if _, ok := found[face]; ok {
			out = append(out, face)
		}
	}
	return out
}
