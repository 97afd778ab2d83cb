package tileswap

import (
	"slices"
	"testing"
)

func testCollection(grid int) *Collection {
	return NewCollection(grid, ComputeLayout(300, 300, 300, grid))
}

func TestNewCollectionSolvedOrder(t *testing.T) {
	c := testCollection(3)
	if c.Len() != 9 {
		t.Fatalf("Len = %d, want 9", c.Len())
	}
	if c.Grid() != 3 {
		t.Errorf("Grid = %d, want 3", c.Grid())
	}
	for i, tile := range c.Tiles() {
		if tile.Slot != i {
			t.Errorf("tile %d: Slot = %d", i, tile.Slot)
		}
	}
	if !c.Solved() {
		t.Error("fresh collection should be solved")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNewCollectionCropOrigins(t *testing.T) {
	c := NewCollection(2, ComputeLayout(200, 100, 200, 2))
	want := []Vec2{{0, 0}, {100, 0}, {0, 50}, {100, 50}}
	for i, w := range want {
		if got := c.At(i).Crop; got != w {
			t.Errorf("tile %d Crop = %v, want %v", i, got, w)
		}
	}
}

func TestNewCollectionPanicsOnBadGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for grid 0")
		}
	}()
	NewCollection(0, Layout{})
}

func TestCollectionSwap(t *testing.T) {
	c := testCollection(3)
	a, b := c.At(0), c.At(4)
	if !c.Swap(a, b) {
		t.Fatal("Swap returned false")
	}
	if c.At(0) != b || c.At(4) != a {
		t.Error("tiles not exchanged")
	}
	if c.IndexOf(a) != 4 || c.IndexOf(b) != 0 {
		t.Errorf("IndexOf = %d, %d", c.IndexOf(a), c.IndexOf(b))
	}
	if c.Solved() {
		t.Error("transposed collection reported solved")
	}
	if c.Misplaced() != 2 {
		t.Errorf("Misplaced = %d, want 2", c.Misplaced())
	}
}

func TestCollectionSwapIsSelfInverse(t *testing.T) {
	c := testCollection(4)
	before := c.Slots()
	a, b := c.At(3), c.At(11)
	c.Swap(a, b)
	c.Swap(a, b)
	if !slices.Equal(c.Slots(), before) {
		t.Errorf("slots = %v, want %v", c.Slots(), before)
	}
}

func TestCollectionSwapRejects(t *testing.T) {
	c := testCollection(2)
	stranger := &Tile{Slot: 1}
	tests := []struct {
		name string
		a, b *Tile
	}{
		{"same tile", c.At(0), c.At(0)},
		{"missing first", stranger, c.At(1)},
		{"missing second", c.At(1), stranger},
		{"nil", nil, c.At(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.Slots()
			if c.Swap(tt.a, tt.b) {
				t.Error("Swap returned true")
			}
			if !slices.Equal(c.Slots(), before) {
				t.Error("collection changed")
			}
		})
	}
}

func TestCollectionSwapAt(t *testing.T) {
	c := testCollection(2)
	tests := []struct {
		i, j int
		want bool
	}{
		{0, 1, true},
		{1, 1, false},
		{-1, 0, false},
		{0, 4, false},
	}
	for _, tt := range tests {
		if got := c.SwapAt(tt.i, tt.j); got != tt.want {
			t.Errorf("SwapAt(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCollectionEmpty(t *testing.T) {
	var c *Collection
	if c.Len() != 0 {
		t.Error("nil collection Len != 0")
	}
	if c.Solved() {
		t.Error("nil collection reported solved")
	}
	if c.IndexOf(&Tile{}) != -1 {
		t.Error("IndexOf on nil collection != -1")
	}
}

func TestCollectionValidateDetectsDuplicates(t *testing.T) {
	c := testCollection(2)
	c.tiles[1] = &Tile{Slot: 0}
	if err := c.Validate(); err == nil {
		t.Error("expected duplicate slot error")
	}

	c = testCollection(2)
	c.tiles = c.tiles[:3]
	if err := c.Validate(); err == nil {
		t.Error("expected length error")
	}

	c = testCollection(2)
	c.tiles[2] = &Tile{Slot: 9}
	if err := c.Validate(); err == nil {
		t.Error("expected out of range error")
	}
}
