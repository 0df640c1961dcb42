// Package tier is the client for the vendor's vehicle platform.
//
// It lists root zones, fetches every vehicle of a zone and looks up single vehicles,
// turning the vendor's JSON:API style payloads into fleet.Vehicle and fleet.Log values.
//
// Failures are classified with the fleet error sentinels:
//
//   - fleet.ErrTransport for network failures and non-2xx answers
//   - fleet.ErrParse for malformed bodies, non-UUID ids, missing coordinates or timestamps
//   - fleet.ErrVehicleNotFound when a single-vehicle lookup answers 404
//
// Raw response bodies can be archived through an Archiver (see core/storage).
package tier
