// Package seed loads the starting customers and items of the desk
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the YAML seed document
type Catalog struct {
	Customers []domain.Customer `yaml:"customers"`
	Items     []domain.Item     `yaml:"items"`
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, or the bundled catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &c, nil
}

// Directories builds the in-memory directories holding the catalog
func (c *Catalog) Directories() (*store.MemoryItemStore, *store.MemoryCustomerStore, error) {
	items, err := store.NewMemoryItemStore(c.Items...)
	if err != nil {
		return nil, nil, fmt.Errorf("seed items: %w", err)
	}
	customers, err := store.NewMemoryCustomerStore(c.Customers...)
	if err != nil {
		return nil, nil, fmt.Errorf("seed customers: %w", err)
	}
	return items, customers, nil
}
