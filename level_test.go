package tileswap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`
maxBoardSize: 400
levels:
  - name: Harbor
    image: photos/harbor.jpg
    grid: 3
  - image: "  builtin:rings  "
    grid: 5
`)
	c, err := ParseCatalog(data)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxBoardSize != 400 || c.Len() != 2 {
		t.Fatalf("catalog = %+v", c)
	}
	if l, _ := c.Level(0); l.Name != "Harbor" || l.Image != "photos/harbor.jpg" || l.Grid != 3 {
		t.Errorf("level 0 = %+v", l)
	}
	l, _ := c.Level(1)
	if l.Image != "builtin:rings" {
		t.Errorf("image not trimmed: %q", l.Image)
	}
	if l.Name != "Level 2" {
		t.Errorf("default name = %q, want Level 2", l.Name)
	}
}

func TestParseCatalogDefaultsBoardSize(t *testing.T) {
	c, err := ParseCatalog([]byte("levels:\n  - image: a.png\n    grid: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxBoardSize != DefaultMaxBoardSize {
		t.Errorf("MaxBoardSize = %v, want %v", c.MaxBoardSize, DefaultMaxBoardSize)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no levels", "maxBoardSize: 300\n", ErrNoLevels},
		{"empty list", "levels: []\n", ErrNoLevels},
		{"grid one", "levels:\n  - image: a.png\n    grid: 1\n", ErrInvalidGrid},
		{"grid missing", "levels:\n  - image: a.png\n", ErrInvalidGrid},
		{"no image", "levels:\n  - grid: 3\n", ErrMissingImage},
		{"blank image", "levels:\n  - image: '   '\n    grid: 3\n", ErrMissingImage},
		{"negative board", "maxBoardSize: -1\nlevels:\n  - image: a.png\n    grid: 2\n", ErrInvalidBoardSize},
		{"bad yaml", "levels: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCatalogNavigation(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		i       int
		exists  bool
		hasNext bool
	}{
		{-1, false, false},
		{0, true, true},
		{1, true, false},
		{2, false, false},
	}
	for _, tt := range tests {
		if _, ok := c.Level(tt.i); ok != tt.exists {
			t.Errorf("Level(%d) ok = %v, want %v", tt.i, ok, tt.exists)
		}
		if got := c.HasNext(tt.i); got != tt.hasNext {
			t.Errorf("HasNext(%d) = %v, want %v", tt.i, got, tt.hasNext)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() < 2 {
		t.Fatalf("default catalog has %d levels", c.Len())
	}
	for i, l := range c.Levels {
		if _, err := (FSLoader{}).Load(t.Context(), l.Image); err != nil {
			t.Errorf("level %d image %q: %v", i, l.Image, err)
		}
	}
	// Each call returns a fresh copy.
	DefaultCatalog().Levels[0].Grid = 99
	if DefaultCatalog().Levels[0].Grid == 99 {
		t.Error("DefaultCatalog shares state between calls")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("levels:\n  - image: builtin:mosaic\n    grid: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(good)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("levels: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(bad); !errors.Is(err, ErrNoLevels) {
		t.Errorf("LoadCatalog(bad) = %v", err)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}
