package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/menu.yaml
var defaultSeed []byte

type seedFile struct {
	Items []MenuItem `yaml:"items"`
}

// Default builds the catalog from the embedded menu seed.
func Default() (*Catalog, error) {
	return FromYAML(defaultSeed)
}

// FromYAML builds a catalog from a YAML seed document.
func FromYAML(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(seed.Items) == 0 {
		return nil, fmt.Errorf("catalog seed contains no items")
	}
	return New(seed.Items)
}
