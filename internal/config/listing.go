package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"book-journal/internal/common/pagination"
	envconfig "book-journal/pkg/config"
)

// ListingConfig overrides pagination settings of one listing.
// Zero values keep the listing's own defaults.
type ListingConfig struct {
	DefaultTake  int      `yaml:"default_take"`
	MaxTake      int      `yaml:"max_take"`
	DefaultOrder []string `yaml:"default_order"`
}

// ListingFile is the document read from LISTING_CONFIG_PATH:
//
//	listings:
//	  posts:
//	    default_order: [startDate_DESC, id_DESC]
//	    max_take: 50
type ListingFile struct {
	Listings map[string]ListingConfig `yaml:"listings"`
}

// LoadListingConfig reads the listing file at path. An empty path yields an
// empty file so every listing keeps its defaults.
func LoadListingConfig(path string) (*ListingFile, error) {
	if path == "" {
		return &ListingFile{}, nil
	}

	// #nosec G304 -- path comes from the operator's environment, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing config: %w", err)
	}

	var file ListingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse listing config: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("listing config validation failed: %w", err)
	}
	return &file, nil
}

func (f *ListingFile) validate() error {
	for name, l := range f.Listings {
		if l.MaxTake < 0 || l.DefaultTake < 0 {
			return fmt.Errorf("listing %q: take values must not be negative", name)
		}
		if l.MaxTake > 0 {
			if err := envconfig.ValidateIntRange(l.DefaultTake, 0, l.MaxTake); err != nil {
				return fmt.Errorf("listing %q: default_take: %w", name, err)
			}
		}
		if _, err := pagination.ParseOrder(l.DefaultOrder); err != nil {
			return fmt.Errorf("listing %q: default_order: %w", name, err)
		}
	}
	return nil
}

// Apply layers the overrides for listing name on top of base.
func (f *ListingFile) Apply(name string, base pagination.Config) pagination.Config {
	l, ok := f.Listings[name]
	if !ok {
		return base
	}
	cfg := base.WithDefaultOrder(l.DefaultOrder).WithMaxTake(l.MaxTake)
	if l.DefaultTake > 0 {
		cfg.DefaultTake = l.DefaultTake
	}
	return cfg
}
