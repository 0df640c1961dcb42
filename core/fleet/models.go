package fleet

import "time"

// Vehicle is the static identity record of a fleet unit.
type Vehicle struct {
	UUID         string `gorm:"column:uuid;primaryKey;size:36" json:"uuid"`
	Code         int    `gorm:"column:code" json:"code"`
	MaxSpeed     int    `gorm:"column:max_speed" json:"max_speed"`
	HasBox       bool   `gorm:"column:has_box" json:"has_box"`
	HasHelmet    bool   `gorm:"column:has_helmet" json:"has_helmet"`
	Zone         string `gorm:"column:zone;size:64" json:"zone"`
	Kind         string `gorm:"column:kind;size:32" json:"kind"`
	Vendor       string `gorm:"column:vendor;size:64" json:"vendor"`
	LicensePlate string `gorm:"column:license_plate;size:32" json:"license_plate"`
}

// TableName overrides the table name used by GORM.
func (Vehicle) TableName() string {
	return "vehicles"
}

// Log is a single telemetry observation of a vehicle.
// ID is only assigned by the store; it is zero for logs that were never persisted.
type Log struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	VehicleUUID string    `gorm:"column:vehicle_uuid;size:36;not null;index:idx_logs_vehicle_time,priority:1" json:"vehicle_uuid"`
	Time        time.Time `gorm:"column:time;not null;index:idx_logs_vehicle_time,priority:2" json:"time"`
	Lat         float64   `gorm:"column:lat" json:"lat"`
	Lng         float64   `gorm:"column:lng" json:"lng"`
	Battery     int       `gorm:"column:battery" json:"battery"`
	Rentable    bool      `gorm:"column:rentable" json:"rentable"`
	State       string    `gorm:"column:state;size:32" json:"state"`
}

// TableName overrides the table name used by GORM.
func (Log) TableName() string {
	return "logs"
}
