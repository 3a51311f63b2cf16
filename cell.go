// Package h3geo implements a hierarchical hexagonal grid over an icosahedral
// projection of the sphere. Cells at sixteen resolutions are packed into
// 64-bit identifiers supporting containment, traversal, and region coverage
// queries.
package h3geo

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s2"
)

// Cell is a 64-bit grid cell identifier. The bit layout packs an index mode,
// a resolution, a base cell number, and fifteen 3-bit subdivision digits;
// digits below the cell's resolution hold a sentinel value.
type Cell uint64

const (
	cellMode = 1

	modeOffset     = 59
	resOffset      = 52
	baseCellOffset = 45

	// all fifteen digits set to the unused sentinel
	cellInit Cell = (1 << baseCellOffset) - 1
)

func (c Cell) mode() int {
	return int(c>>modeOffset) & 0xF
}

// Resolution returns the cell's grid resolution, 0 (coarsest) through
// MaxResolution.
func (c Cell) Resolution() int {
	return int(c>>resOffset) & 0xF
}

// BaseCell returns the resolution 0 ancestor cell number, 0 through 121.
func (c Cell) BaseCell() int {
	return int(c>>baseCellOffset) & 0x7F
}

func (c Cell) digit(r int) direction {
	return direction(c>>uint((MaxResolution-r)*3)) & 0x7
}

func (c Cell) setDigit(r int, d direction) Cell {
	off := uint((MaxResolution - r) * 3)
	return (c &^ (0x7 << off)) | Cell(d)<<off
}

func (c Cell) setBaseCell(bc int) Cell {
	return (c &^ (0x7F << baseCellOffset)) | Cell(bc)<<baseCellOffset
}

func (c Cell) setResolution(res int) Cell {
	return (c &^ (0xF << resOffset)) | Cell(res)<<resOffset
}

// leadingNonZeroDigit returns the highest-resolution digit that is not the
// center digit, or centerDigit if all digits are.
func (c Cell) leadingNonZeroDigit() direction {
	for r := 1; r <= c.Resolution(); r++ {
		if d := c.digit(r); d != centerDigit {
			return d
		}
	}
	return centerDigit
}

func (c Cell) rotate60ccw() Cell {
	for r := 1; r <= c.Resolution(); r++ {
		c = c.setDigit(r, c.digit(r).rotate60ccw())
	}
	return c
}

func (c Cell) rotate60cw() Cell {
	for r := 1; r <= c.Resolution(); r++ {
		c = c.setDigit(r, c.digit(r).rotate60cw())
	}
	return c
}

// rotatePent60ccw rotates the digit path counterclockwise while skipping the
// deleted k axis subsequence of a pentagonal cell.
func (c Cell) rotatePent60ccw() Cell {
	foundFirst := false
	for r := 1; r <= c.Resolution(); r++ {
		c = c.setDigit(r, c.digit(r).rotate60ccw())
		if !foundFirst && c.digit(r) != centerDigit {
			foundFirst = true
			if c.leadingNonZeroDigit() == kAxesDigit {
				c = c.rotate60ccw()
			}
		}
	}
	return c
}

func (c Cell) rotatePent60cw() Cell {
	foundFirst := false
	for r := 1; r <= c.Resolution(); r++ {
		c = c.setDigit(r, c.digit(r).rotate60cw())
		if !foundFirst && c.digit(r) != centerDigit {
			foundFirst = true
			if c.leadingNonZeroDigit() == kAxesDigit {
				c = c.rotate60cw()
			}
		}
	}
	return c
}

// Valid reports whether c is a well-formed cell identifier: reserved bits
// clear, correct mode, a real base cell, digits consistent with the declared
// resolution, and no deleted pentagon subsequence.
func (c Cell) Valid() bool {
	if c>>63 != 0 {
		return false
	}
	if c.mode() != cellMode {
		return false
	}
	// reserved bits between the mode and resolution fields
	if (c>>56)&0x7 != 0 {
		return false
	}
	bc := c.BaseCell()
	if bc >= numBaseCells {
		return false
	}
	res := c.Resolution()
	foundFirst := false
	for r := 1; r <= res; r++ {
		d := c.digit(r)
		if d == invalidDigit {
			return false
		}
		if !foundFirst && d != centerDigit {
			foundFirst = true
			if baseCellTable[bc].isPentagon && d == kAxesDigit {
				return false
			}
		}
	}
	for r := res + 1; r <= MaxResolution; r++ {
		if c.digit(r) != invalidDigit {
			return false
		}
	}
	return true
}

// IsPentagon reports whether the cell is one of the twelve pentagons at its
// resolution.
func (c Cell) IsPentagon() bool {
	return baseCellTable[c.BaseCell()].isPentagon && c.leadingNonZeroDigit() == centerDigit
}

// IsResolutionClassIII reports whether the cell's resolution has a Class III
// (rotated) grid orientation. Odd resolutions are Class III.
func (c Cell) IsResolutionClassIII() bool {
	return isResolutionClassIII(c.Resolution())
}

// String formats the cell as minimal uppercase hexadecimal.
func (c Cell) String() string {
	return fmt.Sprintf("%X", uint64(c))
}

// CellFromString parses a hexadecimal cell identifier, accepting either case
// and an optional 0x prefix.
func CellFromString(s string) (Cell, error) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnableToSerialize, s)
	}
	c := Cell(v)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	return c, nil
}

func baseCellIsCwOffset(bc, face int) bool {
	d := baseCellTable[bc]
	return d.isPentagon && (d.cwOffsetPent[0] == face || d.cwOffsetPent[1] == face)
}

func isPolarPentagon(bc int) bool {
	return bc == 4 || bc == 117
}

// faceIJKToCell encodes a face position at the given resolution into a cell
// identifier, working from the finest digit up to the containing base cell.
// Returns 0 if the coordinates lie outside the face's base cell range.
func faceIJKToCell(f faceIJK, res int) Cell {
	c := cellInit.setResolution(res) | cellMode<<modeOffset

	if res == 0 {
		if f.coord.i > maxFaceCoord || f.coord.j > maxFaceCoord || f.coord.k > maxFaceCoord {
			return 0
		}
		return c.setBaseCell(faceIjkToBaseCell(f))
	}

	ijk := f.coord
	for r := res - 1; r >= 0; r-- {
		last := ijk
		var lastCenter coordIJK
		if isResolutionClassIII(r + 1) {
			ijk = ijk.upAp7()
			lastCenter = ijk.downAp7()
		} else {
			ijk = ijk.upAp7r()
			lastCenter = ijk.downAp7r()
		}
		c = c.setDigit(r+1, unitIjkToDigit(last.sub(lastCenter)))
	}

	if ijk.i > maxFaceCoord || ijk.j > maxFaceCoord || ijk.k > maxFaceCoord {
		return 0
	}
	base := faceIJK{face: f.face, coord: ijk}
	bc := faceIjkToBaseCell(base)
	c = c.setBaseCell(bc)

	// rotate out of the base cell's home orientation
	numRots := faceIjkToBaseCellCCWRot60(base)
	if baseCellTable[bc].isPentagon {
		if c.leadingNonZeroDigit() == kAxesDigit {
			if baseCellIsCwOffset(bc, f.face) {
				c = c.rotate60cw()
			} else {
				c = c.rotate60ccw()
			}
		}
		for i := 0; i < numRots; i++ {
			c = c.rotatePent60ccw()
		}
	} else {
		for i := 0; i < numRots; i++ {
			c = c.rotate60ccw()
		}
	}
	return c
}

func faceIjkToBaseCell(f faceIJK) int {
	return faceIjkBaseCells[f.face][f.coord.i][f.coord.j][f.coord.k].baseCell
}

func faceIjkToBaseCellCCWRot60(f faceIJK) int {
	return faceIjkBaseCells[f.face][f.coord.i][f.coord.j][f.coord.k].ccwRot60
}

// Encode indexes a geographic point to the containing cell at the given
// resolution. Coordinates differing by whole rotations index identically.
func Encode(ll s2.LatLng, res int) (Cell, error) {
	if res < 0 || res > MaxResolution {
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	lat, lng := ll.Lat.Radians(), ll.Lng.Radians()
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, fmt.Errorf("%w: non-finite coordinates", ErrUnableToIndex)
	}
	// projection works through sines and cosines, so coordinates wrap
	// naturally modulo full rotations
	c := faceIJKToCell(geoToFaceIJK(ll, res), res)
	if c == 0 {
		return 0, ErrUnableToIndex
	}
	return c, nil
}

// toFaceIJKWithBase expands the cell's digit path down from the given face
// position. The boolean is false when the result cannot have overflowed the
// home face.
func (c Cell) toFaceIJKWithBase(start faceIJK) (faceIJK, bool) {
	res := c.Resolution()
	possibleOverage := true
	if !baseCellTable[c.BaseCell()].isPentagon &&
		(res == 0 || start.coord == (coordIJK{})) {
		possibleOverage = false
	}
	ijk := start.coord
	for r := 1; r <= res; r++ {
		if isResolutionClassIII(r) {
			ijk = ijk.downAp7()
		} else {
			ijk = ijk.downAp7r()
		}
		ijk = ijk.neighbor(c.digit(r))
	}
	return faceIJK{face: start.face, coord: ijk}, possibleOverage
}

// toFaceIJK resolves the cell to face coordinates, folding any overage onto
// the correct face.
func (c Cell) toFaceIJK() faceIJK {
	bc := c.BaseCell()
	if baseCellTable[bc].isPentagon && c.leadingNonZeroDigit() == ikAxesDigit {
		c = c.rotate60cw()
	}
	f, possibleOverage := c.toFaceIJKWithBase(baseCellTable[bc].home)
	if !possibleOverage {
		return f
	}

	orig := f.coord
	res := c.Resolution()
	if isResolutionClassIII(res) {
		// adjust for the Class III grid offset in a Class II substrate
		f.coord = f.coord.downAp7r()
		res++
	}

	pentLeading4 := baseCellTable[bc].isPentagon && c.leadingNonZeroDigit() == iAxesDigit
	ov, adjusted := f.adjustOverageClassII(res, pentLeading4, false)
	if ov != noOverage {
		if baseCellTable[bc].isPentagon {
			for ov != noOverage {
				ov, adjusted = adjusted.adjustOverageClassII(res, false, false)
			}
		}
		if res != c.Resolution() {
			adjusted.coord = adjusted.coord.upAp7r()
		}
		return adjusted
	}
	if res != c.Resolution() {
		f.coord = orig
	}
	return f
}

// LatLng returns the cell's centroid.
func (c Cell) LatLng() s2.LatLng {
	return c.toFaceIJK().toGeo(c.Resolution())
}
