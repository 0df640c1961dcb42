package reconcile

import (
	"context"

	"fleet-tracker/core/fleet"

	"golang.org/x/sync/singleflight"
)

// FetcherResolver resolves hidden vehicles through single-vehicle lookups.
// Concurrent lookups of the same vehicle, e.g. from two zones that both lost it,
// share one request.
type FetcherResolver struct {
	fetcher VehicleFetcher
	sf      singleflight.Group
}

// NewResolver creates a resolver backed by the given fetcher.
func NewResolver(fetcher VehicleFetcher) *FetcherResolver {
	return &FetcherResolver{fetcher: fetcher}
}

// Resolve returns the current log of the vehicle.
func (r *FetcherResolver) Resolve(ctx context.Context, vehicleUUID string) (fleet.Log, error) {
	v, err, _ := r.sf.Do(vehicleUUID, func() (interface{}, error) {
		_, log, err := r.fetcher.FetchVehicle(ctx, vehicleUUID)
		if err != nil {
			return nil, err
		}
		return log, nil
	})
	if err != nil {
		return fleet.Log{}, err
	}
	return v.(fleet.Log), nil
}
