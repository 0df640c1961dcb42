package zones

import (
	"errors"

	"fleet-tracker/core/reconcile"

	"go.uber.org/zap"
)

// ErrZoneNotFound is returned for zones that were never reconciled.
var ErrZoneNotFound = errors.New("zone not reconciled yet")

// Service reads zone snapshots from the reconciliation cache.
type Service struct {
	cache  *reconcile.ZoneCache
	logger *zap.Logger
}

// NewService creates a new zones service.
func NewService(cache *reconcile.ZoneCache, logger *zap.Logger) *Service {
	return &Service{cache: cache, logger: logger}
}

// ListZones returns every cached zone, sorted by id.
func (s *Service) ListZones() []ZoneSummary {
	ids := s.cache.Zones()
	out := make([]ZoneSummary, 0, len(ids))
	for _, id := range ids {
		n := s.cache.Len(id)
		if n < 0 {
			continue
		}
		out = append(out, ZoneSummary{Zone: id, Vehicles: n})
	}
	return out
}

// GetZone returns the cached snapshot of a zone.
func (s *Service) GetZone(zone string) (*ZoneDetail, error) {
	logs, ok := s.cache.Get(zone)
	if !ok {
		return nil, ErrZoneNotFound
	}

	detail := &ZoneDetail{Zone: zone, Vehicles: len(logs), Logs: logs}
	for i := range logs {
		if detail.Newest == nil || logs[i].Time.After(*detail.Newest) {
			t := logs[i].Time
			detail.Newest = &t
		}
	}
	return detail, nil
}
