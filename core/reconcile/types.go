package reconcile

import (
	"context"
	"time"

	"fleet-tracker/core/fleet"
)

// Source fetches the current vehicle listing of a zone.
type Source interface {
	// FetchZone returns every vehicle currently visible in the zone together with
	// its latest observation. There is at most one log per vehicle.
	FetchZone(ctx context.Context, zone string) ([]fleet.Vehicle, []fleet.Log, error)
}

// VehicleFetcher performs single-vehicle lookups regardless of zone visibility.
type VehicleFetcher interface {
	FetchVehicle(ctx context.Context, uuid string) (fleet.Vehicle, fleet.Log, error)
}

// Resolver returns the current log of a vehicle that dropped out of its zone listing.
// Implementations return fleet.ErrVehicleNotFound when the vehicle no longer exists.
type Resolver interface {
	Resolve(ctx context.Context, vehicleUUID string) (fleet.Log, error)
}

// Store is the persistence contract the reconciler depends on.
type Store interface {
	// UpsertVehicles inserts vehicles that do not exist yet. Existing rows are never modified.
	UpsertVehicles(ctx context.Context, vehicles []fleet.Vehicle) error
	// InsertLogs appends logs without any deduplication.
	InsertLogs(ctx context.Context, logs []fleet.Log) error
	// LatestLog returns the most recent log of a vehicle, or nil if it was never logged.
	LatestLog(ctx context.Context, vehicleUUID string) (*fleet.Log, error)
}

// Publisher receives the logs persisted by a successful reconciliation.
type Publisher interface {
	Publish(ctx context.Context, zone string, logs []fleet.Log) error
}

// Result summarizes a single zone reconciliation.
type Result struct {
	// Zone is the reconciled zone id.
	Zone string `json:"zone"`

	// ColdStart is true when the zone had no cache entry before this run.
	ColdStart bool `json:"cold_start"`

	// Fetched is the number of logs returned by the zone listing.
	Fetched int `json:"fetched"`

	// Hidden is the number of cached vehicles missing from the listing that were looked up directly.
	Hidden int `json:"hidden"`

	// Dropped is the number of hidden vehicles the vendor no longer knows.
	Dropped int `json:"dropped"`

	// Inserted is the number of logs persisted by this run.
	Inserted int `json:"inserted"`

	// Cached is the size of the refreshed cache snapshot.
	Cached int `json:"cached"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}
