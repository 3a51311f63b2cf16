package h3geo

import "fmt"

// Parent returns the containing cell at the coarser parentRes: the digits
// below parentRes are replaced with the unused sentinel. Fails when parentRes
// is finer than the cell's own resolution or out of range.
func (c Cell) Parent(parentRes int) (Cell, error) {
	childRes := c.Resolution()
	if parentRes < 0 || parentRes > childRes {
		return 0, fmt.Errorf("%w: parent resolution %d for cell at %d",
			ErrInvalidResolution, parentRes, childRes)
	}
	if parentRes == childRes {
		return c, nil
	}
	p := c.setResolution(parentRes)
	for r := parentRes + 1; r <= childRes; r++ {
		p = p.setDigit(r, invalidDigit)
	}
	return p, nil
}

// directChild appends one subdivision digit, giving the child at the next
// finer resolution.
func (c Cell) directChild(cellNumber direction) Cell {
	childRes := c.Resolution() + 1
	return c.setResolution(childRes).setDigit(childRes, cellNumber)
}

// MaxChildrenCount returns the number of descendants the cell has at
// childRes. Hexagons have 7^n; a pentagon loses one branch per level, giving
// 1 + 5*(7^n - 1)/6.
func (c Cell) MaxChildrenCount(childRes int) (int, error) {
	res := c.Resolution()
	if childRes < res || childRes > MaxResolution {
		return 0, fmt.Errorf("%w: child resolution %d for cell at %d",
			ErrInvalidResolution, childRes, res)
	}
	n := childRes - res
	pow := 1
	for i := 0; i < n; i++ {
		pow *= 7
	}
	if c.IsPentagon() {
		return 1 + 5*(pow-1)/6, nil
	}
	return pow, nil
}

// Children enumerates every descendant of the cell at childRes, skipping the
// deleted k axis branch under pentagons.
func (c Cell) Children(childRes int) ([]Cell, error) {
	n, err := c.MaxChildrenCount(childRes)
	if err != nil {
		return nil, err
	}
	out := make([]Cell, 0, n)
	var expand func(h Cell)
	expand = func(h Cell) {
		if h.Resolution() == childRes {
			out = append(out, h)
			return
		}
		isPent := h.IsPentagon()
		for d := centerDigit; d < invalidDigit; d++ {
			if isPent && d == kAxesDigit {
				continue
			}
			expand(h.directChild(d))
		}
	}
	expand(c)
	return out, nil
}

// Compact collapses every complete sibling group in the input into its
// parent, repeatedly, returning a minimal covering set. Fails on invalid
// cells and on duplicates, including a cell appearing alongside one of its
// own descendants.
func Compact(cells []Cell) ([]Cell, error) {
	if len(cells) == 0 {
		return nil, nil
	}
	seen := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: invalid cell %s", ErrUnableToCompact, c)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: duplicate cell %s", ErrUnableToCompact, c)
		}
		seen[c] = struct{}{}
	}
	// a cell and its own descendant cover the same area twice
	for _, c := range cells {
		for r := c.Resolution() - 1; r >= 0; r-- {
			a, _ := c.Parent(r)
			if _, ok := seen[a]; ok {
				return nil, fmt.Errorf("%w: cell %s overlaps ancestor %s",
					ErrUnableToCompact, c, a)
			}
		}
	}

	remaining := cells
	for {
		byParent := make(map[Cell][]Cell)
		out := make([]Cell, 0, len(remaining))
		for _, c := range remaining {
			res := c.Resolution()
			if res == 0 {
				out = append(out, c)
				continue
			}
			p, _ := c.Parent(res - 1)
			byParent[p] = append(byParent[p], c)
		}

		changed := false
		for p, group := range byParent {
			need, _ := p.MaxChildrenCount(p.Resolution() + 1)
			center := p.directChild(centerDigit)
			complete := len(group) == need
			if complete {
				complete = false
				for _, g := range group {
					if g == center {
						complete = true
						break
					}
				}
			}
			if complete {
				out = append(out, p)
				changed = true
			} else {
				out = append(out, group...)
			}
		}
		if !changed {
			return out, nil
		}
		// collapsed parents may complete a sibling group one level up
		remaining = out
	}
}

// Uncompact expands every cell to its descendant set at res. Fails when an
// input cell is already finer than res.
func Uncompact(cells []Cell, res int) ([]Cell, error) {
	var out []Cell
	for _, c := range cells {
		if c.Resolution() > res {
			return nil, fmt.Errorf("%w: cell %s finer than resolution %d",
				ErrUnableToUncompact, c, res)
		}
		children, err := c.Children(res)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnableToUncompact, err)
		}
		out = append(out, children...)
	}
	return out, nil
}
