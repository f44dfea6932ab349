package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MierenManz/D-Enmap/internal/enmap"
)

// StoreConfig describes a named store in a YAML config file.
//
// Example:
//
//	name: inventory
//	dir: ./data
//	max_entries: 100
//	driver: sqlite
type StoreConfig struct {
	// Name identifies the store and its persistence file.
	Name string `yaml:"name"`

	// Dir is the base directory for persistence files.
	Dir string `yaml:"dir,omitempty"`

	// MaxEntries caps the stored entry count (0 = unlimited).
	MaxEntries int `yaml:"max_entries,omitempty"`

	// Driver selects the mirror backend: "sqlite" (default) or "bolt".
	Driver string `yaml:"driver,omitempty"`
}

// LoadStoreConfig reads and validates a store config file.
func LoadStoreConfig(path string) (*StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg StoreConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the config for usability as a persistent store.
func (c *StoreConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("store name is required")
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative, got %d", c.MaxEntries)
	}
	switch c.Driver {
	case "", enmap.DriverSQLite, enmap.DriverBolt:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	return nil
}
