package tileswap

import (
	_ "embed"
	"fmt"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// DefaultCatalog returns the embedded catalog shipped with the game.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("tileswap: embedded catalog: %v", err))
	}
	return c
}
