package h3geo

import "fmt"

// Counterclockwise ring-walk direction order, and the direction that steps
// outward onto the next ring.
var ringDirections = [6]direction{
	jAxesDigit, jkAxesDigit, kAxesDigit, ikAxesDigit, iAxesDigit, ijAxesDigit,
}

const nextRingDirection = iAxesDigit

// neighborRotations returns the neighbor of origin in the given direction,
// where dir is expressed in a frame rotated by rotations 60 degree ccw turns
// from origin's own. The returned rotation count carries the accumulated
// frame adjustment for continued walking. Returns cell 0 when the step lands
// on a deleted pentagon subsequence.
func neighborRotations(origin Cell, dir direction, rotations int) (Cell, int) {
	out := origin
	for i := 0; i < rotations; i++ {
		dir = dir.rotate60ccw()
	}

	newRotations := 0
	oldBaseCell := out.BaseCell()
	oldLeadingDigit := out.leadingNonZeroDigit()

	// propagate the step from the finest digit up until it stops carrying
	r := out.Resolution() - 1
	for {
		if r == -1 {
			out = out.setBaseCell(baseCellNeighbors[oldBaseCell][dir])
			newRotations = baseCellNeighbor60CCWRots[oldBaseCell][dir]
			if out.BaseCell() == invalidBaseCell {
				// deleted k axis crossing: substitute the ik neighbor
				out = out.setBaseCell(baseCellNeighbors[oldBaseCell][ikAxesDigit])
				newRotations = baseCellNeighbor60CCWRots[oldBaseCell][ikAxesDigit]
				out = out.rotate60ccw()
				rotations++
			}
			break
		}
		oldDigit := out.digit(r + 1)
		if oldDigit == invalidDigit {
			return 0, rotations
		}
		var nextDir direction
		if isResolutionClassIII(r + 1) {
			out = out.setDigit(r+1, newDigitII[oldDigit][dir])
			nextDir = newAdjustmentII[oldDigit][dir]
		} else {
			out = out.setDigit(r+1, newDigitIII[oldDigit][dir])
			nextDir = newAdjustmentIII[oldDigit][dir]
		}
		if nextDir == centerDigit {
			// no more carries
			break
		}
		dir = nextDir
		r--
	}

	newBaseCell := out.BaseCell()
	if baseCellTable[newBaseCell].isPentagon {
		alreadyAdjustedKSubsequence := false
		if out.leadingNonZeroDigit() == kAxesDigit {
			if oldBaseCell != newBaseCell {
				// entered the pentagon over a deleted k subsequence
				if baseCellIsCwOffset(newBaseCell, baseCellTable[oldBaseCell].home.face) {
					out = out.rotate60cw()
				} else {
					out = out.rotate60ccw()
				}
				alreadyAdjustedKSubsequence = true
			} else {
				switch oldLeadingDigit {
				case centerDigit:
					// undefined: the origin was a pentagon center
					return 0, rotations
				case jkAxesDigit:
					out = out.rotate60ccw()
					rotations++
				case ikAxesDigit:
					out = out.rotate60cw()
					rotations += 5
				default:
					return 0, rotations
				}
			}
		}
		for i := 0; i < newRotations; i++ {
			out = out.rotatePent60ccw()
		}
		if oldBaseCell != newBaseCell {
			if isPolarPentagon(newBaseCell) {
				if oldBaseCell != 118 && oldBaseCell != 8 &&
					out.leadingNonZeroDigit() != jkAxesDigit {
					rotations++
				}
			} else if out.leadingNonZeroDigit() == ikAxesDigit && !alreadyAdjustedKSubsequence {
				rotations++
			}
		}
	} else {
		for i := 0; i < newRotations; i++ {
			out = out.rotate60ccw()
		}
	}
	return out, (rotations + newRotations) % 6
}

// CellDistance pairs a cell with its grid distance from a traversal origin.
type CellDistance struct {
	Cell     Cell
	Distance int
}

// MaxKRingSize returns the number of cells within grid distance k of a
// hexagon origin clear of pentagon distortion, 3k^2+3k+1. An advisory
// capacity bound; actual counts near pentagons are smaller.
func MaxKRingSize(k int) int {
	return 3*k*k + 3*k + 1
}

// HexRange collects all cells within grid distance k of origin by walking
// concentric rings, paired with their ring distance and ordered ring by
// ring. It fails with ErrUnableToComputeTraversal when the walk encounters a
// pentagon, where ring geometry is distorted; KRing falls back to a flood
// fill in that case.
func HexRange(origin Cell, k int) ([]CellDistance, error) {
	out := make([]CellDistance, 1, MaxKRingSize(k))
	out[0] = CellDistance{origin, 0}
	if origin.IsPentagon() {
		return nil, fmt.Errorf("%w: pentagon origin %s", ErrUnableToComputeTraversal, origin)
	}

	h := origin
	ring, i, dirIdx, rotations := 1, 0, 0, 0
	for ring <= k {
		if dirIdx == 0 && i == 0 {
			// step out to the next ring
			h, rotations = neighborRotations(h, nextRingDirection, rotations)
			if h == 0 || h.IsPentagon() {
				return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
			}
		}
		h, rotations = neighborRotations(h, ringDirections[dirIdx], rotations)
		if h == 0 {
			return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
		}
		out = append(out, CellDistance{h, ring})
		i++
		if i == ring {
			i = 0
			dirIdx++
			if dirIdx == 6 {
				dirIdx = 0
				ring++
			}
		}
		if h.IsPentagon() {
			return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
		}
	}
	return out, nil
}

// KRingWithDistances returns every cell within grid distance k of origin,
// mapped to its exact distance. The distance 0 entry is origin itself.
func KRingWithDistances(origin Cell, k int) map[Cell]int {
	if fast, err := HexRange(origin, k); err == nil {
		m := make(map[Cell]int, len(fast))
		for _, cd := range fast {
			m[cd.Cell] = cd.Distance
		}
		return m
	}

	// pentagon in range: flood fill, keeping the minimum distance seen
	m := make(map[Cell]int, MaxKRingSize(k))
	var fill func(h Cell, curK int)
	fill = func(h Cell, curK int) {
		if h == 0 {
			return
		}
		if d, ok := m[h]; ok && d <= curK {
			return
		}
		m[h] = curK
		if curK >= k {
			return
		}
		for _, dir := range ringDirections {
			next, _ := neighborRotations(h, dir, 0)
			fill(next, curK+1)
		}
	}
	fill(origin, 0)
	return m
}

// KRing returns every cell within grid distance k of origin, origin
// included.
func KRing(origin Cell, k int) []Cell {
	m := KRingWithDistances(origin, k)
	out := make([]Cell, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	return out
}

// HexRing returns the hollow ring of cells at exact grid distance k from
// origin, in traversal order. It fails with ErrUnableToComputeTraversal when
// a pentagon lies on or inside the ring; callers can filter
// KRingWithDistances instead.
func HexRing(origin Cell, k int) ([]Cell, error) {
	if k == 0 {
		return []Cell{origin}, nil
	}
	if origin.IsPentagon() {
		return nil, fmt.Errorf("%w: pentagon origin %s", ErrUnableToComputeTraversal, origin)
	}

	// walk out to the ring
	rotations := 0
	h := origin
	for i := 0; i < k; i++ {
		h, rotations = neighborRotations(h, nextRingDirection, rotations)
		if h == 0 || h.IsPentagon() {
			return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
		}
	}

	last := h
	out := make([]Cell, 0, 6*k)
	out = append(out, h)
	for dirIdx := 0; dirIdx < 6; dirIdx++ {
		for pos := 0; pos < k; pos++ {
			h, rotations = neighborRotations(h, ringDirections[dirIdx], rotations)
			if h == 0 {
				return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
			}
			// the last step closes the loop back onto the first cell
			if pos != k-1 || dirIdx != 5 {
				out = append(out, h)
				if h.IsPentagon() {
					return nil, fmt.Errorf("%w: pentagon distortion", ErrUnableToComputeTraversal)
				}
			}
		}
	}
	if h != last {
		return nil, fmt.Errorf("%w: ring failed to close", ErrUnableToComputeTraversal)
	}
	return out, nil
}
