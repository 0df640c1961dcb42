// Package server holds the status API server configuration.
//
// The status API is optional. When enabled, the start command serves it next to the
// poller on the configured port, protected by the API key when one is set.
package server
