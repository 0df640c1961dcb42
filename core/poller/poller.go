package poller

import (
	"context"
	"fmt"
	"time"

	"fleet-tracker/core/metrics"
	"fleet-tracker/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ZoneReconciler runs one reconciliation of a zone.
type ZoneReconciler interface {
	Reconcile(ctx context.Context, zone string) (*reconcile.Result, error)
}

// Outcome is the result of one zone within a cycle.
type Outcome struct {
	Zone   string
	Result *reconcile.Result
	Err    error
}

// Poller reconciles a fixed set of zones over and over.
type Poller struct {
	reconciler ZoneReconciler
	zones      []string
	interval   time.Duration
	limit      int
	recorder   *metrics.Recorder
	logger     *zap.Logger
}

// New creates a poller. recorder may be nil.
func New(r ZoneReconciler, zones []string, cfg Config, recorder *metrics.Recorder, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		reconciler: r,
		zones:      append([]string(nil), zones...),
		interval:   cfg.Interval(),
		limit:      cfg.MaxConcurrency,
		recorder:   recorder,
		logger:     logger,
	}
}

// Zones returns the polled zones.
func (p *Poller) Zones() []string {
	return append([]string(nil), p.zones...)
}

// Run polls until ctx is cancelled. A cycle in flight is allowed to observe the
// cancellation through its context; Run returns once it has joined.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Poller started",
		zap.Int("zones", len(p.zones)),
		zap.Duration("interval", p.interval),
	)

	for {
		p.RunCycle(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return nil
		case <-time.After(p.interval):
		}
	}
}

// RunCycle reconciles every zone concurrently and waits for all of them.
// A failing zone never affects the others; outcomes are returned in zone order.
func (p *Poller) RunCycle(ctx context.Context) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, len(p.zones))

	var g errgroup.Group
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}

	for i, zone := range p.zones {
		g.Go(func() error {
			res, err := p.reconcileZone(ctx, zone)
			outcomes[i] = Outcome{Zone: zone, Result: res, Err: err}
			p.report(ctx, outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	p.logger.Info("Cycle finished",
		zap.Int("zones", len(outcomes)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
	return outcomes
}

// reconcileZone turns a panic inside one zone into that zone's error.
func (p *Poller) reconcileZone(ctx context.Context, zone string) (res *reconcile.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.reconciler.Reconcile(ctx, zone)
}

func (p *Poller) report(ctx context.Context, o Outcome) {
	p.recorder.RecordRun(ctx, o.Zone, o.Result, o.Err)

	if o.Err != nil {
		p.logger.Error("Zone reconciliation failed",
			zap.String("zone", o.Zone),
			zap.Error(o.Err),
		)
		return
	}
	p.logger.Info("Zone reconciled",
		zap.String("zone", o.Zone),
		zap.Bool("cold_start", o.Result.ColdStart),
		zap.Int("fetched", o.Result.Fetched),
		zap.Int("hidden", o.Result.Hidden),
		zap.Int("dropped", o.Result.Dropped),
		zap.Int("inserted", o.Result.Inserted),
		zap.Duration("duration", o.Result.Duration),
	)
}
