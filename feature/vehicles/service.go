package vehicles

import (
	"context"
	"errors"

	"fleet-tracker/core/fleet"

	"go.uber.org/zap"
)

// ErrVehicleNotFound is returned for vehicles the store has never seen.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleStore is the read side of the store used by the feature.
type VehicleStore interface {
	GetVehicle(ctx context.Context, vehicleUUID string) (*fleet.Vehicle, error)
	LatestLog(ctx context.Context, vehicleUUID string) (*fleet.Log, error)
	CountLogs(ctx context.Context, vehicleUUID string) (int64, error)
}

// VehicleDetail is a stored vehicle with its most recent log.
type VehicleDetail struct {
	Vehicle   fleet.Vehicle `json:"vehicle"`
	LatestLog *fleet.Log    `json:"latest_log"`
	LogCount  int64         `json:"log_count"`
}

// Service handles vehicle lookups.
type Service struct {
	store  VehicleStore
	logger *zap.Logger
}

// NewService creates a new vehicles service.
func NewService(store VehicleStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// GetVehicle returns the stored vehicle, its latest log and how many logs it has.
func (s *Service) GetVehicle(ctx context.Context, vehicleUUID string) (*VehicleDetail, error) {
	v, err := s.store.GetVehicle(ctx, vehicleUUID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}

	latest, err := s.store.LatestLog(ctx, vehicleUUID)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountLogs(ctx, vehicleUUID)
	if err != nil {
		return nil, err
	}

	return &VehicleDetail{Vehicle: *v, LatestLog: latest, LogCount: count}, nil
}
