package tileswap

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name            string
		imgW, imgH, max float64
		grid            int
		boardW, boardH  float64
		tileW, tileH    float64
	}{
		{"landscape", 800, 600, 360, 3, 360, 270, 120, 90},
		{"portrait", 600, 800, 360, 3, 270, 360, 90, 120},
		{"square", 500, 500, 360, 4, 360, 360, 90, 90},
		{"small image scales up", 40, 20, 300, 2, 300, 150, 150, 75},
		{"fractional tiles", 1000, 1000, 100, 3, 100, 100, 100.0 / 3, 100.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.imgW, tt.imgH, tt.max, tt.grid)
			if !approxEqual(l.BoardWidth, tt.boardW) || !approxEqual(l.BoardHeight, tt.boardH) {
				t.Errorf("board = %vx%v, want %vx%v", l.BoardWidth, l.BoardHeight, tt.boardW, tt.boardH)
			}
			if !approxEqual(l.TileWidth, tt.tileW) || !approxEqual(l.TileHeight, tt.tileH) {
				t.Errorf("tile = %vx%v, want %vx%v", l.TileWidth, l.TileHeight, tt.tileW, tt.tileH)
			}
			if l.Grid != tt.grid {
				t.Errorf("Grid = %d, want %d", l.Grid, tt.grid)
			}
		})
	}
}

func TestComputeLayoutPreservesAspect(t *testing.T) {
	for _, dims := range [][2]float64{{640, 480}, {300, 900}, {1, 1}, {1920, 1080}} {
		l := ComputeLayout(dims[0], dims[1], 360, 3)
		if !approxEqual(l.BoardWidth/l.BoardHeight, dims[0]/dims[1]) {
			t.Errorf("%v: aspect %v, want %v", dims, l.BoardWidth/l.BoardHeight, dims[0]/dims[1])
		}
		if !approxEqual(math.Max(l.BoardWidth, l.BoardHeight), 360) {
			t.Errorf("%v: larger side = %v, want 360", dims, math.Max(l.BoardWidth, l.BoardHeight))
		}
	}
}

func TestComputeLayoutPanics(t *testing.T) {
	tests := []struct {
		name            string
		imgW, imgH, max float64
		grid            int
	}{
		{"zero width", 0, 100, 100, 2},
		{"negative height", 100, -1, 100, 2},
		{"NaN width", math.NaN(), 100, 100, 2},
		{"zero bound", 100, 100, 0, 2},
		{"infinite bound", 100, 100, math.Inf(1), 2},
		{"zero grid", 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			ComputeLayout(tt.imgW, tt.imgH, tt.max, tt.grid)
		})
	}
}

func TestLayoutCropOriginRowMajor(t *testing.T) {
	l := ComputeLayout(300, 200, 300, 3)
	tests := []struct {
		i    int
		want Vec2
	}{
		{0, Vec2{0, 0}},
		{1, Vec2{100, 0}},
		{2, Vec2{200, 0}},
		{3, Vec2{0, 200.0 / 3}},
		{8, Vec2{200, 400.0 / 3}},
	}
	for _, tt := range tests {
		got := l.CropOrigin(tt.i)
		if !approxEqual(got.X, tt.want.X) || !approxEqual(got.Y, tt.want.Y) {
			t.Errorf("CropOrigin(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestLayoutSlotRect(t *testing.T) {
	l := ComputeLayout(400, 400, 400, 4)
	r := l.SlotRect(6)
	want := Rect{X: 200, Y: 100, Width: 100, Height: 100}
	if r != want {
		t.Errorf("SlotRect(6) = %v, want %v", r, want)
	}
}

func TestLayoutSourceRect(t *testing.T) {
	// 800x600 image on a 360x270 board: 3x3 tiles are 120x90 on the board
	// and 266.67x200 in the source.
	l := ComputeLayout(800, 600, 360, 3)
	r := l.SourceRect(l.CropOrigin(4), 800, 600)
	if !approxEqual(r.X, 800.0/3) || !approxEqual(r.Y, 200) {
		t.Errorf("origin = (%v, %v), want (%v, 200)", r.X, r.Y, 800.0/3)
	}
	if !approxEqual(r.Width, 800.0/3) || !approxEqual(r.Height, 200) {
		t.Errorf("size = %vx%v, want %vx200", r.Width, r.Height, 800.0/3)
	}
}

func TestLayoutPositionAt(t *testing.T) {
	l := ComputeLayout(300, 300, 300, 3)
	tests := []struct {
		x, y float64
		want int
	}{
		{0, 0, 0},
		{150, 50, 1},
		{299, 299, 8},
		{50, 150, 3},
		{-1, 10, -1},
		{10, 300, -1},
	}
	for _, tt := range tests {
		if got := l.PositionAt(tt.x, tt.y); got != tt.want {
			t.Errorf("PositionAt(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
