package poller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ZoneLister discovers the zones of the vendor.
type ZoneLister interface {
	ListZones(ctx context.Context) ([]string, error)
}

type zonesFile struct {
	Zones []string `yaml:"zones"`
}

// ResolveZones picks the zones to poll for the process lifetime: the static list if set,
// otherwise the zones file if set, otherwise a single discovery through the lister.
func ResolveZones(ctx context.Context, lister ZoneLister, static []string, file string) ([]string, error) {
	var zones []string
	switch {
	case len(static) > 0:
		zones = static
	case file != "":
		var err error
		if zones, err = LoadZonesFile(file); err != nil {
			return nil, err
		}
	case lister != nil:
		var err error
		if zones, err = lister.ListZones(ctx); err != nil {
			return nil, fmt.Errorf("zone discovery failed: %w", err)
		}
	default:
		return nil, errors.New("no zones configured and no zone discovery available")
	}

	zones = normalize(zones)
	if len(zones) == 0 {
		return nil, errors.New("no zones to poll")
	}
	return zones, nil
}

// LoadZonesFile reads a YAML document of the form
//
//	zones:
//	  - BERLIN
//	  - PARIS
func LoadZonesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zones file: %w", err)
	}

	var f zonesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse zones file %s: %w", path, err)
	}
	return f.Zones, nil
}

// normalize trims ids and drops empties and duplicates, keeping the first occurrence.
func normalize(zones []string) []string {
	seen := make(map[string]struct{}, len(zones))
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		z = strings.TrimSpace(z)
		if z == "" {
			continue
		}
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		out = append(out, z)
	}
	return out
}
