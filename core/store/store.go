package store

import (
	"context"
	"errors"
	"fmt"

	"fleet-tracker/core/fleet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize is the number of rows written per INSERT statement.
const DefaultBatchSize = 500

// Store is the GORM-backed vehicle and log store.
type Store struct {
	db        *gorm.DB
	batchSize int
}

// New creates a store on top of an open connection.
func New(db *gorm.DB, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{db: db, batchSize: batchSize}
}

// UpsertVehicles inserts the vehicles that do not exist yet.
func (s *Store) UpsertVehicles(ctx context.Context, vehicles []fleet.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoNothing: true,
		}).
		CreateInBatches(&vehicles, s.batchSize).Error
	if err != nil {
		return fmt.Errorf("%w: upsert %d vehicles: %w", fleet.ErrPersistence, len(vehicles), err)
	}
	return nil
}

// InsertLogs appends the logs. The input slice is not modified.
func (s *Store) InsertLogs(ctx context.Context, logs []fleet.Log) error {
	if len(logs) == 0 {
		return nil
	}

	rows := make([]fleet.Log, len(logs))
	copy(rows, logs)
	for i := range rows {
		rows[i].ID = 0
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&rows, s.batchSize).Error; err != nil {
		return fmt.Errorf("%w: insert %d logs: %w", fleet.ErrPersistence, len(logs), err)
	}
	return nil
}

// LatestLog returns the most recent log of the vehicle, or nil if there is none.
func (s *Store) LatestLog(ctx context.Context, vehicleUUID string) (*fleet.Log, error) {
	var log fleet.Log
	err := s.db.WithContext(ctx).
		Where("vehicle_uuid = ?", vehicleUUID).
		Order("time DESC").
		Take(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: latest log of %s: %w", fleet.ErrPersistence, vehicleUUID, err)
	}
	return &log, nil
}

// CountLogs returns the number of logs stored for the vehicle.
func (s *Store) CountLogs(ctx context.Context, vehicleUUID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&fleet.Log{}).Where("vehicle_uuid = ?", vehicleUUID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count logs of %s: %w", fleet.ErrPersistence, vehicleUUID, err)
	}
	return count, nil
}

// GetVehicle returns the stored vehicle, or nil if it does not exist.
func (s *Store) GetVehicle(ctx context.Context, vehicleUUID string) (*fleet.Vehicle, error) {
	var v fleet.Vehicle
	err := s.db.WithContext(ctx).Where("uuid = ?", vehicleUUID).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get vehicle %s: %w", fleet.ErrPersistence, vehicleUUID, err)
	}
	return &v, nil
}
