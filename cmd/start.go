package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-tracker/core/loader"
	"fleet-tracker/core/logger"
	"fleet-tracker/core/middleware/auth"
	"fleet-tracker/core/middleware/rayid"
	"fleet-tracker/core/poller"
	"fleet-tracker/feature/vehicles"
	"fleet-tracker/feature/zones"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "fleet-tracker/docs/swagger"
)

// @title Fleet Tracker API
// @version 1.0
// @description Status API over the zone cache and the vehicle log store.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start polling every zone",
	Long: `Resolves the zones to poll, then reconciles all of them every interval until
interrupted. Optionally serves the status API next to the poller.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration and logger
	cfg, logg, err := loadBase()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logg)

	// 2. Dependencies
	a, err := newPipeline(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Close(shutdownCtx)
	}()

	// 3. Zones are fixed for the process lifetime
	zoneList, err := poller.ResolveZones(ctx, a.client, cfg.Poller.ZoneList(), cfg.Poller.ZonesFile)
	if err != nil {
		return err
	}
	logg.Info("Resolved zones", zap.Strings("zones", zoneList))

	// 4. Status API (optional)
	var srv *fiber.App
	if cfg.Server.Enabled {
		srv, err = newStatusServer(a, logg)
		if err != nil {
			return err
		}
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := srv.Listen(cfg.Server.Addr()); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	// 5. Poll until interrupted
	p := poller.New(a.reconciler, zoneList, cfg.Poller, a.recorder, logg)
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("poller failed: %w", err)
	}

	if srv != nil {
		logg.Info("Shutting down server...")
		_ = srv.ShutdownWithTimeout(5 * time.Second)
	}
	return nil
}

// newStatusServer assembles the Fiber app serving the zones and vehicles features.
func newStatusServer(a *pipeline, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger Documentation (Public)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(zones.NewFeature(a.reconciler.Cache(), logg))
	mgr.Register(vehicles.NewFeature(a.store, logg))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Info("Loaded features", zap.Strings("features", loaded))
	return app, nil
}
