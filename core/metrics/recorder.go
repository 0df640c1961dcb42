package metrics

import (
	"context"

	"fleet-tracker/core/reconcile"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every instrument below.
const MeterName = "fleet-tracker/reconcile"

// Recorder records the outcome of zone runs.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	runs     metric.Int64Counter
	fetched  metric.Int64Counter
	inserted metric.Int64Counter
	hidden   metric.Int64Counter
	dropped  metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRecorder creates the instruments on the given provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(MeterName)

	var (
		r   Recorder
		err error
	)
	if r.runs, err = meter.Int64Counter("fleet.zone.runs",
		metric.WithDescription("Zone reconciliations by outcome")); err != nil {
		return nil, err
	}
	if r.fetched, err = meter.Int64Counter("fleet.logs.fetched",
		metric.WithDescription("Logs returned by the vendor")); err != nil {
		return nil, err
	}
	if r.inserted, err = meter.Int64Counter("fleet.logs.inserted",
		metric.WithDescription("Logs persisted as significant")); err != nil {
		return nil, err
	}
	if r.hidden, err = meter.Int64Counter("fleet.vehicles.hidden",
		metric.WithDescription("Cached vehicles missing from the zone listing")); err != nil {
		return nil, err
	}
	if r.dropped, err = meter.Int64Counter("fleet.vehicles.dropped",
		metric.WithDescription("Hidden vehicles the vendor no longer knows")); err != nil {
		return nil, err
	}
	if r.duration, err = meter.Float64Histogram("fleet.zone.duration",
		metric.WithDescription("Duration of a zone reconciliation"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return &r, nil
}

// RecordRun records one zone run. res may be nil when err is set.
func (r *Recorder) RecordRun(ctx context.Context, zone string, res *reconcile.Result, err error) {
	if r == nil {
		return
	}

	zoneAttr := attribute.String("zone", zone)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.runs.Add(ctx, 1, metric.WithAttributes(zoneAttr, attribute.String("outcome", outcome)))

	if res == nil {
		return
	}
	attrs := metric.WithAttributes(zoneAttr)
	r.fetched.Add(ctx, int64(res.Fetched), attrs)
	r.inserted.Add(ctx, int64(res.Inserted), attrs)
	r.hidden.Add(ctx, int64(res.Hidden), attrs)
	r.dropped.Add(ctx, int64(res.Dropped), attrs)
	r.duration.Record(ctx, res.Duration.Seconds(), attrs)
}
