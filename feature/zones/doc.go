// Package zones exposes the reconciliation cache over HTTP.
//
// # HTTP Endpoints
//
//   - GET /zones : every reconciled zone with its number of cached vehicles.
//   - GET /zones/:zone : the zone's snapshot, 404 until its first successful run.
package zones
