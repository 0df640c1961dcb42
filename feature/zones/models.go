package zones

import (
	"time"

	"fleet-tracker/core/fleet"
)

// ZoneSummary describes one cached zone.
type ZoneSummary struct {
	Zone     string `json:"zone"`
	Vehicles int    `json:"vehicles"`
}

// ZoneDetail is the cached snapshot of one zone.
type ZoneDetail struct {
	Zone     string      `json:"zone"`
	Vehicles int         `json:"vehicles"`
	Newest   *time.Time  `json:"newest,omitempty"`
	Logs     []fleet.Log `json:"logs"`
}
