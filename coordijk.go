package h3geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// direction is one of the seven aperture 7 subdivision digits: the center
// child or one of the six ijk axis neighbors.
type direction int

const (
	centerDigit direction = iota
	kAxesDigit
	jAxesDigit
	jkAxesDigit
	iAxesDigit
	ikAxesDigit
	ijAxesDigit
	invalidDigit
)

// coordIJK holds a cell position in non-negative ijk+ coordinates on a
// single icosahedron face.
type coordIJK struct {
	i, j, k int
}

func (c coordIJK) add(o coordIJK) coordIJK {
	return coordIJK{c.i + o.i, c.j + o.j, c.k + o.k}
}

func (c coordIJK) sub(o coordIJK) coordIJK {
	return coordIJK{c.i - o.i, c.j - o.j, c.k - o.k}
}

func (c coordIJK) scale(f int) coordIJK {
	return coordIJK{c.i * f, c.j * f, c.k * f}
}

func (c coordIJK) sum() int {
	return c.i + c.j + c.k
}

// normalize folds negative components away and removes the common minimum so
// that at least one of i, j, k is zero.
func (c coordIJK) normalize() coordIJK {
	i, j, k := c.i, c.j, c.k
	if i < 0 {
		j -= i
		k -= i
		i = 0
	}
	if j < 0 {
		i -= j
		k -= j
		j = 0
	}
	if k < 0 {
		i -= k
		j -= k
		k = 0
	}
	m := min(i, min(j, k))
	return coordIJK{i - m, j - m, k - m}
}

// unitIjkToDigit resolves a normalized unit ijk vector to its direction
// digit, or invalidDigit if the vector is not a unit vector.
func unitIjkToDigit(c coordIJK) direction {
	n := c.normalize()
	for d := centerDigit; d < invalidDigit; d++ {
		if unitVecs[d] == n {
			return d
		}
	}
	return invalidDigit
}

// neighbor moves one cell in the given direction.
func (c coordIJK) neighbor(d direction) coordIJK {
	if d > centerDigit && d < invalidDigit {
		return c.add(unitVecs[d]).normalize()
	}
	return c
}

func (c coordIJK) rotate60ccw() coordIJK {
	iv := coordIJK{1, 1, 0}.scale(c.i)
	jv := coordIJK{0, 1, 1}.scale(c.j)
	kv := coordIJK{1, 0, 1}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

func (c coordIJK) rotate60cw() coordIJK {
	iv := coordIJK{1, 0, 1}.scale(c.i)
	jv := coordIJK{1, 1, 0}.scale(c.j)
	kv := coordIJK{0, 1, 1}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

func (d direction) rotate60ccw() direction {
	switch d {
	case kAxesDigit:
		return ikAxesDigit
	case ikAxesDigit:
		return iAxesDigit
	case iAxesDigit:
		return ijAxesDigit
	case ijAxesDigit:
		return jAxesDigit
	case jAxesDigit:
		return jkAxesDigit
	case jkAxesDigit:
		return kAxesDigit
	}
	return d
}

func (d direction) rotate60cw() direction {
	switch d {
	case kAxesDigit:
		return jkAxesDigit
	case jkAxesDigit:
		return jAxesDigit
	case jAxesDigit:
		return ijAxesDigit
	case ijAxesDigit:
		return iAxesDigit
	case iAxesDigit:
		return ikAxesDigit
	case ikAxesDigit:
		return kAxesDigit
	}
	return d
}

// upAp7 finds the center of the containing cell one aperture 7 counter-
// clockwise resolution coarser.
func (c coordIJK) upAp7() coordIJK {
	i := float64(c.i - c.k)
	j := float64(c.j - c.k)
	ni := int(math.Round((3*i - j) / 7.0))
	nj := int(math.Round((i + 2*j) / 7.0))
	return coordIJK{ni, nj, 0}.normalize()
}

// upAp7r is the clockwise counterpart of upAp7.
func (c coordIJK) upAp7r() coordIJK {
	i := float64(c.i - c.k)
	j := float64(c.j - c.k)
	ni := int(math.Round((2*i + j) / 7.0))
	nj := int(math.Round((3*j - i) / 7.0))
	return coordIJK{ni, nj, 0}.normalize()
}

// downAp7 finds the same position one aperture 7 counterclockwise resolution
// finer.
func (c coordIJK) downAp7() coordIJK {
	iv := coordIJK{3, 0, 1}.scale(c.i)
	jv := coordIJK{1, 3, 0}.scale(c.j)
	kv := coordIJK{0, 1, 3}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

func (c coordIJK) downAp7r() coordIJK {
	iv := coordIJK{3, 1, 0}.scale(c.i)
	jv := coordIJK{0, 3, 1}.scale(c.j)
	kv := coordIJK{1, 0, 3}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

// downAp3 and downAp3r move into the aperture 3 substrate grids used for
// boundary vertex generation.
func (c coordIJK) downAp3() coordIJK {
	iv := coordIJK{2, 0, 1}.scale(c.i)
	jv := coordIJK{1, 2, 0}.scale(c.j)
	kv := coordIJK{0, 1, 2}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

func (c coordIJK) downAp3r() coordIJK {
	iv := coordIJK{2, 1, 0}.scale(c.i)
	jv := coordIJK{0, 2, 1}.scale(c.j)
	kv := coordIJK{1, 0, 2}.scale(c.k)
	return iv.add(jv).add(kv).normalize()
}

// distance is the hex grid distance between two ijk coordinates.
func (c coordIJK) distance(o coordIJK) int {
	d := c.sub(o).normalize()
	return max(abs(d.i), max(abs(d.j), abs(d.k)))
}

// hex2d projects the ijk coordinate onto orthogonal 2D coordinates in the
// face plane.
func (c coordIJK) hex2d() r2.Point {
	i := float64(c.i - c.k)
	j := float64(c.j - c.k)
	return r2.Point{X: i - 0.5*j, Y: j * sqrt3Over2}
}

// hex2dToIJK discretizes a face-plane point to the containing cell's ijk
// coordinates.
func hex2dToIJK(v r2.Point) coordIJK {
	a1, a2 := math.Abs(v.X), math.Abs(v.Y)

	// first do a reverse conversion
	x2 := a2 / sqrt3Over2
	x1 := a1 + x2/2.0

	m1, m2 := int(x1), int(x2)
	r1, r2v := x1-float64(m1), x2-float64(m2)

	var i, j int
	if r1 < 0.5 {
		if r1 < 1.0/3.0 {
			i = m1
			if r2v < (1.0+r1)/2.0 {
				j = m2
			} else {
				j = m2 + 1
			}
		} else {
			if r2v < (1.0 - r1) {
				j = m2
			} else {
				j = m2 + 1
			}
			if (1.0-r1) <= r2v && r2v < (2.0*r1) {
				i = m1 + 1
			} else {
				i = m1
			}
		}
	} else {
		if r1 < 2.0/3.0 {
			if r2v < (1.0 - r1) {
				j = m2
			} else {
				j = m2 + 1
			}
			if (2.0*r1-1.0) < r2v && r2v < (1.0-r1) {
				i = m1
			} else {
				i = m1 + 1
			}
		} else {
			i = m1 + 1
			if r2v < (r1 / 2.0) {
				j = m2
			} else {
				j = m2 + 1
			}
		}
	}

	// fold across the axes if necessary
	if v.X < 0.0 {
		if j%2 == 0 {
			axisi := j / 2
			diff := i - axisi
			i -= 2 * diff
		} else {
			axisi := (j + 1) / 2
			diff := i - axisi
			i -= 2*diff + 1
		}
	}
	if v.Y < 0.0 {
		i -= (2*j + 1) / 2
		j = -j
	}
	return coordIJK{i, j, 0}.normalize()
}

// intersect finds the intersection of line p0-p1 with line p2-p3.
func intersect(p0, p1, p2, p3 r2.Point) r2.Point {
	s1 := p1.Sub(p0)
	s2 := p3.Sub(p2)
	t := (s2.X*(p0.Y-p2.Y) - s2.Y*(p0.X-p2.X)) / (-s2.X*s1.Y + s1.X*s2.Y)
	return r2.Point{X: p0.X + t*s1.X, Y: p0.Y + t*s1.Y}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
