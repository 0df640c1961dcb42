// Package reconcile implements the per-zone deduplication engine of the tracker.
//
// Every poll cycle produces a fresh listing of the vehicles visible in a zone. Most of
// those observations repeat what is already known, so persisting all of them would flood
// the store with duplicates. The reconciler keeps only the observations that carry new
// information.
//
// # Components
//
//   - ZoneCache: concurrency-safe map from zone id to the last known logs of that zone.
//     Snapshots are replaced wholesale and copied on read and write.
//   - Reconciler: fetches a zone, upserts its vehicles, compares every observation with the
//     best available reference (cache entry, else the store's latest log, else none),
//     bulk-inserts the significant ones and refreshes the zone's cache entry.
//   - Resolver: looks up vehicles that dropped out of the zone listing. FetcherResolver
//     collapses concurrent lookups of the same vehicle with singleflight.
//
// # Algorithm
//
//  1. Fetch vehicles and fresh logs for the zone.
//  2. Upsert the vehicles (insert-if-absent).
//  3. For every cached log, consume the fresh log of the same vehicle and keep it if it
//     is significant. Cached vehicles missing from the listing are resolved directly and
//     stay in the snapshot, unless the vendor no longer knows them (they are dropped).
//  4. Fresh logs without a cache entry are compared with the store's latest log.
//  5. Insert the significant logs and replace the cache entry.
//  6. Hand the inserted logs to the Publisher, if one is set. Failures are only logged.
//
// A failure in steps 1 to 5 aborts the run and leaves the cache entry unchanged.
//
// # Usage
//
//	cache := reconcile.NewZoneCache()
//	r := reconcile.NewReconciler(client, reconcile.NewResolver(client), store, cache, logger)
//	result, err := r.Reconcile(ctx, "BERLIN")
package reconcile
