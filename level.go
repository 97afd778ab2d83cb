package tileswap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxBoardSize is the board bound used when a catalog does not set one.
const DefaultMaxBoardSize = 360

var (
	// ErrNoLevels is returned when a catalog defines no levels.
	ErrNoLevels = errors.New("tileswap: catalog has no levels")
	// ErrInvalidGrid is returned for a level whose grid is below 2.
	ErrInvalidGrid = errors.New("tileswap: grid must be at least 2")
	// ErrMissingImage is returned for a level without an image resource.
	ErrMissingImage = errors.New("tileswap: level has no image")
	// ErrInvalidBoardSize is returned for a non-positive maxBoardSize.
	ErrInvalidBoardSize = errors.New("tileswap: maxBoardSize must be positive")
)

// Level is one puzzle configuration: the image to cut and the grid dimension.
type Level struct {
	Image string `yaml:"image"` // resource identifier handed to the ImageLoader
	Grid  int    `yaml:"grid"`  // N; the board has N*N tiles
	Name  string `yaml:"name"`  // display name (optional)
}

// Catalog is the ordered list of levels, played first to last.
type Catalog struct {
	MaxBoardSize float64 `yaml:"maxBoardSize"` // larger board side in pixels
	Levels       []Level `yaml:"levels"`
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tileswap: read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tileswap: parse catalog: %w", err)
	}
	applyCatalogDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyCatalogDefaults(c *Catalog) {
	if c.MaxBoardSize == 0 {
		c.MaxBoardSize = DefaultMaxBoardSize
	}
	for i := range c.Levels {
		c.Levels[i].Image = strings.TrimSpace(c.Levels[i].Image)
		if c.Levels[i].Name == "" {
			c.Levels[i].Name = fmt.Sprintf("Level %d", i+1)
		}
	}
}

// Validate checks the catalog for configuration errors. Problems are reported
// here, before play, rather than surfacing mid-game.
func (c *Catalog) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	if !(c.MaxBoardSize > 0) {
		return fmt.Errorf("%w (got %v)", ErrInvalidBoardSize, c.MaxBoardSize)
	}
	for i, l := range c.Levels {
		if l.Image == "" {
			return fmt.Errorf("level %d: %w", i, ErrMissingImage)
		}
		if l.Grid < 2 {
			return fmt.Errorf("level %d: %w (got %d)", i, ErrInvalidGrid, l.Grid)
		}
	}
	return nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.Levels)
}

// Level returns the level at index i and whether it exists.
func (c *Catalog) Level(i int) (Level, bool) {
	if i < 0 || i >= len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[i], true
}

// HasNext reports whether a level follows index i.
func (c *Catalog) HasNext(i int) bool {
	return i >= 0 && i < len(c.Levels)-1
}
