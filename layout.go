package tileswap

import "math"

// Layout is the board geometry for one level: the board size after fitting the
// source image into the maximum bounding box, and the size of a single tile.
// Values may be fractional.
type Layout struct {
	Grid        int
	BoardWidth  float64
	BoardHeight float64
	TileWidth   float64
	TileHeight  float64
}

// ComputeLayout fits an image of imgW x imgH into a maxSize square so that the
// larger image side maps to maxSize and the aspect ratio is preserved, then
// splits the board into grid x grid tiles.
//
// Panics if any dimension is not positive or grid < 1.
func ComputeLayout(imgW, imgH, maxSize float64, grid int) Layout {
	if !(imgW > 0) || !(imgH > 0) || math.IsInf(imgW, 0) || math.IsInf(imgH, 0) {
		panic("tileswap: image dimensions must be positive")
	}
	if !(maxSize > 0) || math.IsInf(maxSize, 0) {
		panic("tileswap: layout bound must be positive")
	}
	if grid < 1 {
		panic("tileswap: grid dimension must be positive")
	}

	aspect := imgW / imgH
	var bw, bh float64
	if aspect >= 1 {
		bw = maxSize
		bh = maxSize / aspect
	} else {
		bh = maxSize
		bw = maxSize * aspect
	}

	return Layout{
		Grid:        grid,
		BoardWidth:  bw,
		BoardHeight: bh,
		TileWidth:   bw / float64(grid),
		TileHeight:  bh / float64(grid),
	}
}

// CropOrigin returns the top-left of slot i's region of the board image
// (row-major, 0-based).
func (l Layout) CropOrigin(i int) Vec2 {
	return Vec2{
		X: float64(i%l.Grid) * l.TileWidth,
		Y: float64(i/l.Grid) * l.TileHeight,
	}
}

// SlotRect returns the board-local rectangle of position i.
func (l Layout) SlotRect(i int) Rect {
	o := l.CropOrigin(i)
	return Rect{X: o.X, Y: o.Y, Width: l.TileWidth, Height: l.TileHeight}
}

// SourceRect maps a crop origin in board space back onto the source image
// (imgW x imgH pixels), returning the region a tile samples from.
func (l Layout) SourceRect(crop Vec2, imgW, imgH float64) Rect {
	sx := imgW / l.BoardWidth
	sy := imgH / l.BoardHeight
	return Rect{
		X:      crop.X * sx,
		Y:      crop.Y * sy,
		Width:  l.TileWidth * sx,
		Height: l.TileHeight * sy,
	}
}

// PositionAt returns the position whose slot rectangle contains the
// board-local point (x, y), or -1 if the point is off the board.
func (l Layout) PositionAt(x, y float64) int {
	if x < 0 || y < 0 || x >= l.BoardWidth || y >= l.BoardHeight {
		return -1
	}
	col := int(x / l.TileWidth)
	row := int(y / l.TileHeight)
	if col >= l.Grid {
		col = l.Grid - 1
	}
	if row >= l.Grid {
		row = l.Grid - 1
	}
	return row*l.Grid + col
}
