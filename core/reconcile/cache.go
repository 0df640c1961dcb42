package reconcile

import (
	"sort"
	"sync"

	"fleet-tracker/core/fleet"
)

// ZoneCache holds the last known logs of every reconciled zone.
// A missing zone means the zone was never reconciled, which is distinct
// from a zone whose snapshot is empty.
type ZoneCache struct {
	mu    sync.RWMutex
	zones map[string][]fleet.Log
}

// NewZoneCache creates an empty cache.
func NewZoneCache() *ZoneCache {
	return &ZoneCache{
		zones: make(map[string][]fleet.Log),
	}
}

// Get returns a copy of the snapshot for the zone and whether the zone was ever reconciled.
func (c *ZoneCache) Get(zone string) ([]fleet.Log, bool) {
	c.mu.RLock()
	logs, ok := c.zones[zone]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return cloneLogs(logs), true
}

// Put replaces the snapshot of the zone.
// The copy is made before taking the lock so writers hold it only for the map assignment.
func (c *ZoneCache) Put(zone string, logs []fleet.Log) {
	snapshot := cloneLogs(logs)

	c.mu.Lock()
	c.zones[zone] = snapshot
	c.mu.Unlock()
}

// Len returns the snapshot size of the zone, or -1 if the zone was never reconciled.
func (c *ZoneCache) Len(zone string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	logs, ok := c.zones[zone]
	if !ok {
		return -1
	}
	return len(logs)
}

// Zones returns the sorted ids of all reconciled zones.
func (c *ZoneCache) Zones() []string {
	c.mu.RLock()
	zones := make([]string, 0, len(c.zones))
	for zone := range c.zones {
		zones = append(zones, zone)
	}
	c.mu.RUnlock()

	sort.Strings(zones)
	return zones
}

func cloneLogs(logs []fleet.Log) []fleet.Log {
	out := make([]fleet.Log, len(logs))
	copy(out, logs)
	return out
}
