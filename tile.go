package tileswap

import "fmt"

// Tile is one piece of the puzzle image. Slot and Crop are fixed at creation;
// only the tile's position inside a Collection changes during play.
type Tile struct {
	// Slot is the index the tile occupies when the puzzle is solved.
	Slot int
	// Crop is the top-left of the tile's region in board coordinates.
	Crop Vec2
}

// Collection is the ordered sequence of tiles on the board. The index of a tile
// is its current placement. A collection built by NewCollection always holds
// each slot in [0, Len()) exactly once; Swap is the only mutation and it
// preserves that.
type Collection struct {
	tiles []*Tile
	grid  int
}

// NewCollection creates grid*grid tiles in solved order using the crop origins
// from layout. Panics if grid < 1.
func NewCollection(grid int, layout Layout) *Collection {
	if grid < 1 {
		panic("tileswap: collection grid must be positive")
	}
	n := grid * grid
	c := &Collection{tiles: make([]*Tile, n), grid: grid}
	for i := range n {
		c.tiles[i] = &Tile{Slot: i, Crop: layout.CropOrigin(i)}
	}
	return c
}

// Len returns the number of tiles.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tiles)
}

// Grid returns the board dimension N (the collection holds N*N tiles).
func (c *Collection) Grid() int {
	return c.grid
}

// At returns the tile currently at position i.
func (c *Collection) At(i int) *Tile {
	return c.tiles[i]
}

// Tiles returns the tiles in placement order. The returned slice MUST NOT be
// mutated by the caller.
func (c *Collection) Tiles() []*Tile {
	if c == nil {
		return nil
	}
	return c.tiles
}

// IndexOf returns the current position of t, or -1 if t is not in the collection.
func (c *Collection) IndexOf(t *Tile) int {
	if c == nil || t == nil {
		return -1
	}
	for i, tile := range c.tiles {
		if tile == t {
			return i
		}
	}
	return -1
}

// Swap exchanges the positions of a and b. It reports false and leaves the
// collection untouched if a == b or either tile is not in the collection.
func (c *Collection) Swap(a, b *Tile) bool {
	if a == b {
		return false
	}
	i := c.IndexOf(a)
	j := c.IndexOf(b)
	if i < 0 || j < 0 {
		return false
	}
	c.tiles[i], c.tiles[j] = c.tiles[j], c.tiles[i]
	return true
}

// SwapAt exchanges the tiles at positions i and j. Out-of-range or equal
// positions are a no-op reporting false.
func (c *Collection) SwapAt(i, j int) bool {
	if c == nil || i == j || i < 0 || j < 0 || i >= len(c.tiles) || j >= len(c.tiles) {
		return false
	}
	c.tiles[i], c.tiles[j] = c.tiles[j], c.tiles[i]
	return true
}

// Solved reports whether every tile sits at its slot. Returns false for an
// empty collection.
func (c *Collection) Solved() bool {
	if c.Len() == 0 {
		return false
	}
	for i, t := range c.tiles {
		if t.Slot != i {
			return false
		}
	}
	return true
}

// Misplaced counts tiles that are not at their slot.
func (c *Collection) Misplaced() int {
	n := 0
	for i, t := range c.Tiles() {
		if t.Slot != i {
			n++
		}
	}
	return n
}

// Slots returns the slot of each tile in placement order.
func (c *Collection) Slots() []int {
	out := make([]int, c.Len())
	for i, t := range c.Tiles() {
		out[i] = t.Slot
	}
	return out
}

// Validate checks that the collection holds grid*grid tiles whose slots form a
// permutation of [0, grid*grid).
func (c *Collection) Validate() error {
	want := c.grid * c.grid
	if len(c.tiles) != want {
		return fmt.Errorf("tileswap: collection has %d tiles, want %d", len(c.tiles), want)
	}
	seen := make([]bool, want)
	for i, t := range c.tiles {
		if t == nil {
			return fmt.Errorf("tileswap: nil tile at position %d", i)
		}
		if t.Slot < 0 || t.Slot >= want {
			return fmt.Errorf("tileswap: tile at position %d has slot %d out of range", i, t.Slot)
		}
		if seen[t.Slot] {
			return fmt.Errorf("tileswap: slot %d appears more than once", t.Slot)
		}
		seen[t.Slot] = true
	}
	return nil
}
