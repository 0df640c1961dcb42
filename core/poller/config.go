package poller

import (
	"strings"
	"time"
)

// Config holds the polling schedule and the zones to poll.
type Config struct {
	// IntervalSeconds is the pause after every cycle.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60" validate:"gte=1"`
	// Zones is a comma separated list of zone ids. Empty means discover them.
	Zones string `mapstructure:"zones" default:""`
	// ZonesFile is a YAML file with a "zones" list, used when Zones is empty.
	ZonesFile string `mapstructure:"zones_file" default:""`
	// MaxConcurrency bounds the zones reconciled at once. 0 is unbounded.
	MaxConcurrency int `mapstructure:"max_concurrency" default:"0" validate:"gte=0"`
}

// ZoneList returns the static zones, trimmed and without empties.
func (c Config) ZoneList() []string {
	var zones []string
	for _, z := range strings.Split(c.Zones, ",") {
		if z = strings.TrimSpace(z); z != "" {
			zones = append(zones, z)
		}
	}
	return zones
}

// Interval returns the pause between cycles.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
