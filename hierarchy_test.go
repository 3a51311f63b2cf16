package h3geo

import (
	"errors"
	"testing"
)

func TestParent(t *testing.T) {
	c := Cell(0x87283472bffffff)

	p, err := c.Parent(5)
	if err != nil {
		t.Fatalf("Parent() error = %v", err)
	}
	if p != 0x85283473fffffff {
		t.Errorf("Parent(5) = %s, want 85283473fffffff", p)
	}

	same, err := c.Parent(7)
	if err != nil || same != c {
		t.Errorf("Parent(same res) = %s, %v", same, err)
	}

	if _, err := c.Parent(8); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Parent(finer res) error = %v, want ErrInvalidResolution", err)
	}
	if _, err := c.Parent(-1); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Parent(-1) error = %v, want ErrInvalidResolution", err)
	}
}

func TestChildren(t *testing.T) {
	c := Cell(0x87283472bffffff)

	same, err := c.Children(7)
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if len(same) != 1 || same[0] != c {
		t.Errorf("Children(same res) = %v", same)
	}

	kids, err := c.Children(8)
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	want := []Cell{
		0x88283472b1fffff, 0x88283472b3fffff, 0x88283472b5fffff,
		0x88283472b7fffff, 0x88283472b9fffff, 0x88283472bbfffff,
		0x88283472bdfffff,
	}
	if len(kids) != len(want) {
		t.Fatalf("Children(8) returned %d cells, want %d", len(kids), len(want))
	}
	for i, k := range kids {
		if k != want[i] {
			t.Errorf("Children(8)[%d] = %s, want %s", i, k, want[i])
		}
		p, err := k.Parent(7)
		if err != nil || p != c {
			t.Errorf("child %s parent = %s, %v", k, p, err)
		}
	}
}

func TestMaxChildrenCount(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		childRes int
		want     int
	}{
		{"hexagon same res", 0x87283472bffffff, 7, 1},
		{"hexagon one level", 0x87283472bffffff, 8, 7},
		{"hexagon two levels", 0x87283472bffffff, 9, 49},
		{"pentagon one level", 0x820807fffffffff, 3, 6},
		{"pentagon two levels", 0x820807fffffffff, 4, 1 + 5*(49-1)/6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cell.MaxChildrenCount(tt.childRes)
			if err != nil {
				t.Fatalf("MaxChildrenCount() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MaxChildrenCount(%d) = %d, want %d", tt.childRes, got, tt.want)
			}
		})
	}

	if _, err := Cell(0x87283472bffffff).MaxChildrenCount(6); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("MaxChildrenCount(coarser) error = %v, want ErrInvalidResolution", err)
	}
}

func TestPentagonChildren(t *testing.T) {
	pent := Cell(0x820807fffffffff)
	kids, err := pent.Children(3)
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if len(kids) != 6 {
		t.Fatalf("pentagon Children(3) returned %d cells, want 6", len(kids))
	}
	pentKids := 0
	for _, k := range kids {
		if !k.Valid() {
			t.Errorf("child %s is invalid", k)
		}
		if k.IsPentagon() {
			pentKids++
		}
	}
	if pentKids != 1 {
		t.Errorf("pentagon has %d pentagon children, want 1", pentKids)
	}
}

func TestCompactUncompact(t *testing.T) {
	parent := Cell(0x85283473fffffff)
	kids, err := parent.Children(7)
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}

	comp, err := Compact(kids)
	if err != nil {
		t.Fatalf("Compact() error = %v", err)
	}
	if len(comp) != 1 || comp[0] != parent {
		t.Errorf("Compact(full sibling set) = %v, want [%s]", comp, parent)
	}

	unc, err := Uncompact(comp, 7)
	if err != nil {
		t.Fatalf("Uncompact() error = %v", err)
	}
	if len(unc) != len(kids) {
		t.Fatalf("Uncompact() returned %d cells, want %d", len(unc), len(kids))
	}
	want := make(map[Cell]struct{}, len(kids))
	for _, k := range kids {
		want[k] = struct{}{}
	}
	for _, u := range unc {
		if _, ok := want[u]; !ok {
			t.Errorf("Uncompact() produced unexpected cell %s", u)
		}
	}
}

func TestCompactIncompleteGroup(t *testing.T) {
	kids, err := Cell(0x85283473fffffff).Children(7)
	if err != nil {
		t.Fatal(err)
	}
	partial := kids[1:]
	comp, err := Compact(partial)
	if err != nil {
		t.Fatalf("Compact() error = %v", err)
	}
	// nothing to collapse without the full sibling set
	if len(comp) != len(partial) {
		t.Errorf("Compact(partial) returned %d cells, want %d", len(comp), len(partial))
	}
}

func TestCompactRejectsDescendantOverlap(t *testing.T) {
	parent := Cell(0x85283473fffffff)
	kids, err := parent.Children(6)
	if err != nil {
		t.Fatal(err)
	}
	// no literal duplicates, but the children re-cover the parent's area
	if _, err := Compact(append(kids, parent)); !errors.Is(err, ErrUnableToCompact) {
		t.Errorf("Compact(cell with its descendants) error = %v, want ErrUnableToCompact", err)
	}
}

func TestCompactAcrossResolutions(t *testing.T) {
	parent := Cell(0x85283473fffffff)
	kids, err := parent.Children(6)
	if err != nil {
		t.Fatal(err)
	}
	grand, err := kids[0].Children(7)
	if err != nil {
		t.Fatal(err)
	}
	// one child replaced by its own full child set still covers the parent
	in := append([]Cell{}, kids[1:]...)
	in = append(in, grand...)

	comp, err := Compact(in)
	if err != nil {
		t.Fatalf("Compact() error = %v", err)
	}
	if len(comp) != 1 || comp[0] != parent {
		t.Errorf("Compact(mixed resolutions) = %v, want [%s]", comp, parent)
	}
}

func TestCompactErrors(t *testing.T) {
	c := Cell(0x87283472bffffff)
	if _, err := Compact([]Cell{c, c}); !errors.Is(err, ErrUnableToCompact) {
		t.Errorf("Compact(duplicates) error = %v, want ErrUnableToCompact", err)
	}
	if _, err := Compact([]Cell{0}); !errors.Is(err, ErrUnableToCompact) {
		t.Errorf("Compact(invalid) error = %v, want ErrUnableToCompact", err)
	}
}

func TestUncompactRejectsFinerInput(t *testing.T) {
	if _, err := Uncompact([]Cell{0x87283472bffffff}, 5); !errors.Is(err, ErrUnableToUncompact) {
		t.Errorf("Uncompact(finer input) error = %v, want ErrUnableToUncompact", err)
	}
}
