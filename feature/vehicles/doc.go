// Package vehicles exposes stored vehicles over HTTP.
//
// # HTTP Endpoints
//
//   - GET /vehicles/:uuid : static attributes, latest persisted log and log count.
package vehicles
