// Package middleware contains HTTP middleware for the status API.
//
// # Components
//
//   - auth: API key validation on the X-Api-Key header.
//   - rayid: a request id (RayID) per request, stored in the context locals and echoed
//     in the X-Ray-ID response header for tracing.
package middleware
