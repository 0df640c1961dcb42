// Package poller drives zone reconciliation on a timer.
//
// Every cycle starts one goroutine per zone, optionally bounded by MaxConcurrency,
// and waits for all of them before sleeping for the configured interval. A zone that
// fails or panics is logged with its zone id and cause; the other zones and the next
// cycle are unaffected.
//
// ResolveZones fixes the zone list at startup from, in order of preference, the
// configured list, a YAML zones file or a one-time discovery against the vendor.
package poller
