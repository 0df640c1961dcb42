// Package store persists vehicles and logs through GORM.
//
// The Store type implements the three operations the reconciler depends on:
//
//   - UpsertVehicles: bulk insert-if-absent keyed by uuid. Existing vehicles are never updated.
//   - InsertLogs: bulk append. The caller alone decides what is inserted.
//   - LatestLog: the most recent log of a vehicle, or nil if it was never logged.
//
// The store is dialect agnostic; conflict handling is rendered by GORM for MySQL
// (ON DUPLICATE KEY UPDATE), Postgres and SQLite (ON CONFLICT DO NOTHING).
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	s := store.New(db, store.DefaultBatchSize)
//	err = s.UpsertVehicles(ctx, vehicles)
package store
