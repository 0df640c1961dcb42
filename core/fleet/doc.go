// Package fleet defines the domain model shared by every part of the tracker.
//
// # Entities
//
//   - Vehicle: the static identity record of one fleet unit, keyed by its vendor UUID.
//     Vehicles are inserted once and never updated afterwards.
//   - Log: one timestamped observation (position, battery, rentability, state) of a vehicle.
//     Logs are append-only.
//
// # Significance
//
// IsSignificant decides whether a candidate Log carries new information compared to a
// reference Log of the same vehicle: the timestamps must differ and the haversine distance
// between both positions must exceed SignificantDistance (10 meters).
//
// # Errors
//
// The package also declares the error taxonomy used across the tracker (ErrTransport,
// ErrParse, ErrPersistence, ErrVehicleNotFound). Callers wrap them with fmt.Errorf and "%w"
// and test them with errors.Is.
package fleet
