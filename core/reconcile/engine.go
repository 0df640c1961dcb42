package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-tracker/core/fleet"

	"go.uber.org/zap"
)

// Reconciler decides which observations of a zone are worth persisting and keeps
// the zone's cache entry current.
type Reconciler struct {
	source    Source
	resolver  Resolver
	store     Store
	cache     *ZoneCache
	publisher Publisher
	logger    *zap.Logger
}

// NewReconciler creates a new zone reconciler.
func NewReconciler(source Source, resolver Resolver, store Store, cache *ZoneCache, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		source:   source,
		resolver: resolver,
		store:    store,
		cache:    cache,
		logger:   logger,
	}
}

// SetPublisher registers a publisher notified with the logs persisted by each run.
func (r *Reconciler) SetPublisher(p Publisher) {
	r.publisher = p
}

// Cache returns the cache the reconciler maintains.
func (r *Reconciler) Cache() *ZoneCache {
	return r.cache
}

// Reconcile runs one reconciliation of the zone.
//
// Any error aborts the run. Writes already committed to the store are kept and the
// zone's cache entry is left untouched, so the next run starts from the last good snapshot.
func (r *Reconciler) Reconcile(ctx context.Context, zone string) (*Result, error) {
	start := time.Now()
	l := r.logger.With(zap.String("zone", zone))

	vehicles, fetched, err := r.source.FetchZone(ctx, zone)
	if err != nil {
		return nil, fmt.Errorf("fetch zone: %w", err)
	}
	fresh := uniqueByVehicle(fetched)

	if err := r.store.UpsertVehicles(ctx, vehicles); err != nil {
		return nil, fmt.Errorf("upsert vehicles: %w", err)
	}

	cached, ok := r.cache.Get(zone)
	result := &Result{
		Zone:      zone,
		ColdStart: !ok,
		Fetched:   len(fresh),
	}

	pending := make(map[string]fleet.Log, len(fresh))
	for _, log := range fresh {
		pending[log.VehicleUUID] = log
	}

	snapshot := make([]fleet.Log, 0, len(fresh)+len(cached))
	snapshot = append(snapshot, fresh...)

	var inserts []fleet.Log
	seen := make(map[string]struct{}, len(cached))

	for _, prev := range cached {
		if _, dup := seen[prev.VehicleUUID]; dup {
			continue
		}
		seen[prev.VehicleUUID] = struct{}{}

		if cur, found := pending[prev.VehicleUUID]; found {
			delete(pending, prev.VehicleUUID)
			if fleet.IsSignificant(prev, cur) {
				inserts = append(inserts, cur)
			}
			continue
		}

		// The vehicle dropped out of the listing; keep tracking it directly.
		hidden, err := r.resolver.Resolve(ctx, prev.VehicleUUID)
		if errors.Is(err, fleet.ErrVehicleNotFound) {
			l.Debug("Hidden vehicle no longer exists", zap.String("vehicle", prev.VehicleUUID))
			result.Dropped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve hidden vehicle %s: %w", prev.VehicleUUID, err)
		}

		result.Hidden++
		snapshot = append(snapshot, hidden)
		if fleet.IsSignificant(prev, hidden) {
			inserts = append(inserts, hidden)
		}
	}

	// Vehicles without a cache entry fall back to the store.
	for _, cur := range fresh {
		if _, found := pending[cur.VehicleUUID]; !found {
			continue
		}

		latest, err := r.store.LatestLog(ctx, cur.VehicleUUID)
		if err != nil {
			return nil, fmt.Errorf("latest log of %s: %w", cur.VehicleUUID, err)
		}
		if latest == nil || fleet.IsSignificant(*latest, cur) {
			inserts = append(inserts, cur)
		}
	}

	if err := r.store.InsertLogs(ctx, inserts); err != nil {
		return nil, fmt.Errorf("insert logs: %w", err)
	}

	r.cache.Put(zone, snapshot)

	result.Inserted = len(inserts)
	result.Cached = len(snapshot)
	result.Duration = time.Since(start)

	if r.publisher != nil && len(inserts) > 0 {
		if err := r.publisher.Publish(ctx, zone, inserts); err != nil {
			l.Warn("Failed to publish new logs", zap.Int("count", len(inserts)), zap.Error(err))
		}
	}

	l.Debug("Zone reconciled",
		zap.Bool("cold_start", result.ColdStart),
		zap.Int("fetched", result.Fetched),
		zap.Int("hidden", result.Hidden),
		zap.Int("dropped", result.Dropped),
		zap.Int("inserted", result.Inserted),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// uniqueByVehicle keeps the first log of every vehicle, preserving order.
func uniqueByVehicle(logs []fleet.Log) []fleet.Log {
	seen := make(map[string]struct{}, len(logs))
	out := make([]fleet.Log, 0, len(logs))
	for _, log := range logs {
		if _, ok := seen[log.VehicleUUID]; ok {
			continue
		}
		seen[log.VehicleUUID] = struct{}{}
		out = append(out, log)
	}
	return out
}
