package cmd

import (
	"context"
	"fmt"
	"time"

	"fleet-tracker/core/poller"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd runs a single cycle and exits.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [zone...]",
	Short: "Reconcile zones once",
	Long: `Runs one reconciliation cycle and exits. With no arguments the configured
or discovered zones are used.

Since the cache starts empty, every vehicle is checked against its latest stored log.

Examples:
  # One cycle over the configured zones
  reconcile

  # Only two zones
  reconcile BERLIN PARIS`,
	RunE: runReconcile,
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadBase()
	if err != nil {
		return err
	}

	a, err := newPipeline(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Close(shutdownCtx)
	}()

	static := args
	if len(static) == 0 {
		static = cfg.Poller.ZoneList()
	}
	zoneList, err := poller.ResolveZones(ctx, a.client, static, cfg.Poller.ZonesFile)
	if err != nil {
		return err
	}

	p := poller.New(a.reconciler, zoneList, cfg.Poller, a.recorder, l)
	return summarize(l, p.RunCycle(ctx))
}

// summarize logs the cycle totals and fails when any zone failed.
func summarize(l *zap.Logger, outcomes []poller.Outcome) error {
	var inserted, failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		inserted += o.Result.Inserted
	}

	l.Info("Reconciliation report",
		zap.Int("zones", len(outcomes)),
		zap.Int("failed", failed),
		zap.Int("inserted", inserted),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d zones failed", failed, len(outcomes))
	}
	return nil
}
