package fleet

import "errors"

var (
	// ErrTransport marks failures reaching the vendor API or the database.
	ErrTransport = errors.New("transport error")
	// ErrParse marks malformed vendor payloads.
	ErrParse = errors.New("parse error")
	// ErrPersistence marks failed store operations.
	ErrPersistence = errors.New("persistence error")
	// ErrVehicleNotFound is returned by single-vehicle lookups when the vendor no longer knows the vehicle.
	ErrVehicleNotFound = errors.New("vehicle not found")
)
