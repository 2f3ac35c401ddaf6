package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalog []byte

// Config holds the static lookup tables raidblk runs with. It is built once
// from the embedded catalogue and never modified afterwards.
type Config struct {
	Columns    Columns    `yaml:"columns"`
	Controller Controller `yaml:"controller"`
	Commands   Commands   `yaml:"commands"`
}

// Columns lists the two disjoint column sets
type Columns struct {
	Base  ColumnSet `yaml:"base"`
	Extra ColumnSet `yaml:"extra"`
}

// Column is one selectable output column
type Column struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ColumnSet is an ordered set of columns
type ColumnSet []Column

// Has reports whether name is a member of the set. Matching is exact.
func (s ColumnSet) Has(name string) bool {
	for _, c := range s {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Names returns the column names in catalogue order
func (s ColumnSet) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

type Controller struct {
	// SCSIInfo is the pseudo-file listing attached SCSI host adapters
	SCSIInfo      string   `yaml:"scsi_info"`
	Vendors       []Vendor `yaml:"vendors"`
	Fallback      Vendor   `yaml:"fallback"`
	InventoryArgs []string `yaml:"inventory_args"`
}

// Vendor maps a RAID card vendor to its management CLI.
// Marker is a regular expression matched against SCSI adapter lines.
type Vendor struct {
	Name   string `yaml:"name"`
	Marker string `yaml:"marker,omitempty"`
	Binary string `yaml:"binary"`
}

type Commands struct {
	Lsblk   string        `yaml:"lsblk"`
	Lspci   string        `yaml:"lspci"`
	Timeout time.Duration `yaml:"timeout"`
}

// Parse decodes and validates a catalogue
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Columns.Base) == 0 {
		return errors.New("catalogue defines no base columns")
	}
	seen := make(map[string]bool)
	for _, set := range []ColumnSet{c.Columns.Base, c.Columns.Extra} {
		for _, col := range set {
			if col.Name == "" {
				return errors.New("catalogue column without a name")
			}
			if seen[col.Name] {
				return fmt.Errorf("column %q defined twice", col.Name)
			}
			seen[col.Name] = true
		}
	}
	if c.Controller.Fallback.Name == "" || c.Controller.Fallback.Binary == "" {
		return errors.New("catalogue has no fallback controller binary")
	}
	for _, v := range c.Controller.Vendors {
		if v.Name == "" || v.Marker == "" || v.Binary == "" {
			return fmt.Errorf("incomplete vendor entry %q", v.Name)
		}
	}
	if c.Commands.Lsblk == "" {
		return errors.New("catalogue has no lsblk command")
	}
	return nil
}

var (
	loaded  *Config
	loadErr error
	once    sync.Once
)

// Load returns the embedded catalogue, parsed on first use
func Load() (*Config, error) {
	once.Do(func() {
		loaded, loadErr = Parse(catalog)
	})
	return loaded, loadErr
}
