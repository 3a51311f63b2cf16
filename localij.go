package h3geo

import (
	"fmt"
	"math"
)

func baseCellDirection(origin, neighbor int) direction {
	for d := centerDigit; d < invalidDigit; d++ {
		if baseCellNeighbors[origin][d] == neighbor {
			return d
		}
	}
	return invalidDigit
}

// toLocalIJK expresses h in ijk coordinates anchored at origin's base cell
// orientation. Only works for cells within roughly one base cell of origin;
// farther pairs and some pentagon configurations fail.
func (origin Cell) toLocalIJK(h Cell) (coordIJK, error) {
	res := origin.Resolution()
	if res != h.Resolution() {
		return coordIJK{}, fmt.Errorf("%w: resolutions %d and %d",
			ErrIncompatibleIndices, res, h.Resolution())
	}

	originBase := origin.BaseCell()
	base := h.BaseCell()

	dir := centerDigit
	revDir := centerDigit
	if originBase != base {
		dir = baseCellDirection(originBase, base)
		if dir == invalidDigit {
			return coordIJK{}, fmt.Errorf("%w: base cells not adjacent", ErrIncompatibleIndices)
		}
		revDir = baseCellDirection(base, originBase)
	}

	originOnPent := baseCellTable[originBase].isPentagon
	indexOnPent := baseCellTable[base].isPentagon

	if dir != centerDigit {
		// rotate index into the origin base cell's frame
		baseCellRotations := baseCellNeighbor60CCWRots[originBase][dir]
		if indexOnPent {
			for i := 0; i < baseCellRotations; i++ {
				h = h.rotatePent60cw()
				revDir = revDir.rotate60cw()
				if revDir == kAxesDigit {
					revDir = revDir.rotate60cw()
				}
			}
		} else {
			for i := 0; i < baseCellRotations; i++ {
				h = h.rotate60cw()
				revDir = revDir.rotate60cw()
			}
		}
	}

	f, _ := h.toFaceIJKWithBase(faceIJK{})
	coord := f.coord

	switch {
	case dir != centerDigit:
		pentagonRotations := 0
		if originOnPent {
			originLeading := origin.leadingNonZeroDigit()
			if failedDirections[originLeading][dir] {
				return coordIJK{}, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
			}
			pentagonRotations = pentagonDirRotations[originLeading][dir]
		} else if indexOnPent {
			indexLeading := h.leadingNonZeroDigit()
			if failedDirections[indexLeading][revDir] {
				return coordIJK{}, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
			}
			pentagonRotations = pentagonDirRotations[revDir][indexLeading]
		}
		for i := 0; i < pentagonRotations; i++ {
			coord = coord.rotate60cw()
		}

		// move the origin's frame to the neighboring base cell
		offset := coordIJK{}.neighbor(dir)
		for r := res - 1; r >= 0; r-- {
			if isResolutionClassIII(r + 1) {
				offset = offset.downAp7()
			} else {
				offset = offset.downAp7r()
			}
		}
		coord = coord.add(offset).normalize()

	case originOnPent && indexOnPent:
		originLeading := origin.leadingNonZeroDigit()
		indexLeading := h.leadingNonZeroDigit()
		if failedDirections[originLeading][indexLeading] {
			return coordIJK{}, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
		}
		n := pentagonDirRotations[originLeading][indexLeading]
		for i := 0; i < n; i++ {
			coord = coord.rotate60cw()
		}
	}
	return coord, nil
}

// fromLocalIJK is the inverse of toLocalIJK, resolving ijk coordinates in
// origin's frame back to a cell identifier.
func (origin Cell) fromLocalIJK(ijk coordIJK) (Cell, error) {
	res := origin.Resolution()
	originBase := origin.BaseCell()
	originOnPent := baseCellTable[originBase].isPentagon

	out := (cellInit | cellMode<<modeOffset).setResolution(res)

	if res == 0 {
		if ijk.i > 1 || ijk.j > 1 || ijk.k > 1 {
			return 0, fmt.Errorf("%w: coordinates out of range", ErrIncompatibleIndices)
		}
		dir := unitIjkToDigit(ijk)
		if dir == invalidDigit {
			return 0, fmt.Errorf("%w: coordinates out of range", ErrIncompatibleIndices)
		}
		newBase := baseCellNeighbors[originBase][dir]
		if newBase == invalidBaseCell {
			return 0, fmt.Errorf("%w: deleted pentagon neighbor", ErrIncompatibleIndices)
		}
		return out.setBaseCell(newBase), nil
	}

	// build the digit path bottom-up as in encoding
	c := ijk
	for r := res - 1; r >= 0; r-- {
		last := c
		var lastCenter coordIJK
		if isResolutionClassIII(r + 1) {
			c = c.upAp7()
			lastCenter = c.downAp7()
		} else {
			c = c.upAp7r()
			lastCenter = c.downAp7r()
		}
		out = out.setDigit(r+1, unitIjkToDigit(last.sub(lastCenter)))
	}

	if c.i > 1 || c.j > 1 || c.k > 1 {
		return 0, fmt.Errorf("%w: coordinates out of range", ErrIncompatibleIndices)
	}
	dir := unitIjkToDigit(c)
	base := invalidBaseCell
	if dir != invalidDigit {
		base = baseCellNeighbors[originBase][dir]
	}
	indexOnPent := base != invalidBaseCell && baseCellTable[base].isPentagon

	switch {
	case dir != centerDigit:
		if originOnPent {
			originLeading := origin.leadingNonZeroDigit()
			n := pentagonRotationsReverse[originLeading][dir]
			if n < 0 {
				return 0, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
			}
			for i := 0; i < n; i++ {
				dir = dir.rotate60ccw()
			}
			if dir == kAxesDigit {
				return 0, fmt.Errorf("%w: deleted pentagon subsequence", ErrIncompatibleIndices)
			}
			base = baseCellNeighbors[originBase][dir]
			indexOnPent = baseCellTable[base].isPentagon
		}
		if base == invalidBaseCell {
			return 0, fmt.Errorf("%w: deleted pentagon neighbor", ErrIncompatibleIndices)
		}

		baseCellRotations := baseCellNeighbor60CCWRots[originBase][dir]
		if indexOnPent {
			revDir := baseCellDirection(base, originBase)
			for i := 0; i < baseCellRotations; i++ {
				out = out.rotate60ccw()
			}
			indexLeading := out.leadingNonZeroDigit()
			var n int
			if isPolarPentagon(base) {
				n = pentagonRotationsReversePolar[revDir][indexLeading]
			} else {
				n = pentagonRotationsReverseNonpolar[revDir][indexLeading]
			}
			if n < 0 {
				return 0, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
			}
			for i := 0; i < n; i++ {
				out = out.rotatePent60ccw()
			}
		} else {
			for i := 0; i < baseCellRotations; i++ {
				out = out.rotate60ccw()
			}
		}

	case originOnPent && indexOnPent:
		originLeading := origin.leadingNonZeroDigit()
		indexLeading := out.leadingNonZeroDigit()
		n := pentagonRotationsReverse[originLeading][indexLeading]
		if n < 0 {
			return 0, fmt.Errorf("%w: pentagon distortion", ErrIncompatibleIndices)
		}
		for i := 0; i < n; i++ {
			out = out.rotatePent60ccw()
		}
	}

	if indexOnPent && out.leadingNonZeroDigit() == kAxesDigit {
		return 0, fmt.Errorf("%w: deleted pentagon subsequence", ErrIncompatibleIndices)
	}
	return out.setBaseCell(base), nil
}

// GridDistance returns the minimum number of cell steps between a and b.
// Both cells must share a resolution and lie close enough for local
// coordinates to resolve; pentagon distortion can make nearby cells
// unreachable.
func GridDistance(a, b Cell) (int, error) {
	ca, err := a.toLocalIJK(a)
	if err != nil {
		return 0, err
	}
	cb, err := a.toLocalIJK(b)
	if err != nil {
		return 0, err
	}
	return ca.distance(cb), nil
}

// cube coordinates for line interpolation

type cubeCoord struct {
	i, j, k int
}

func (c coordIJK) toCube() cubeCoord {
	i := -c.i + c.k
	j := c.j - c.k
	return cubeCoord{i, j, -i - j}
}

func (c cubeCoord) toIJK() coordIJK {
	return coordIJK{-c.i, c.j, 0}.normalize()
}

// cubeRound rounds fractional cube coordinates to the nearest cell,
// correcting the axis with the largest rounding error to keep i+j+k == 0.
func cubeRound(i, j, k float64) cubeCoord {
	ri, rj, rk := math.Round(i), math.Round(j), math.Round(k)
	iD, jD, kD := math.Abs(ri-i), math.Abs(rj-j), math.Abs(rk-k)
	switch {
	case iD > jD && iD > kD:
		ri = -rj - rk
	case jD > kD:
		rj = -ri - rk
	default:
		rk = -ri - rj
	}
	return cubeCoord{int(ri), int(rj), int(rk)}
}

// Line returns the ordered minimal path of cells from a to b inclusive, each
// consecutive pair adjacent. It fails with ErrUnableToComputeLine when the
// endpoints are at different resolutions or too far apart for local
// coordinates, or when pentagon distortion breaks the path.
func Line(a, b Cell) ([]Cell, error) {
	distance, err := GridDistance(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnableToComputeLine, err)
	}

	startIJK, err := a.toLocalIJK(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnableToComputeLine, err)
	}
	endIJK, err := a.toLocalIJK(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnableToComputeLine, err)
	}

	start, end := startIJK.toCube(), endIJK.toCube()
	var iStep, jStep, kStep float64
	if distance > 0 {
		iStep = float64(end.i-start.i) / float64(distance)
		jStep = float64(end.j-start.j) / float64(distance)
		kStep = float64(end.k-start.k) / float64(distance)
	}

	out := make([]Cell, 0, distance+1)
	for n := 0; n <= distance; n++ {
		c := cubeRound(
			float64(start.i)+iStep*float64(n),
			float64(start.j)+jStep*float64(n),
			float64(start.k)+kStep*float64(n))
		h, err := a.fromLocalIJK(c.toIJK())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnableToComputeLine, err)
		}
		out = append(out, h)
	}
	return out, nil
}
