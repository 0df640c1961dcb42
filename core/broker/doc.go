// Package broker publishes newly persisted logs to an MQTT broker.
//
// Every zone run that persists at least one log produces a single JSON message
// {"zone": ..., "logs": [...]} on the topic pattern with {zone} substituted,
// for example fleet/BERLIN/logs. Publication happens after the zone's cache entry
// is replaced and never fails the run.
package broker
