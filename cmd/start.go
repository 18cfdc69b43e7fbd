package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-sync/docs/swagger"
)

// @title Catalog Sync API
// @version 1.0
// @description API for importing the card catalog.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Starts the HTTP server, the metrics endpoint and the scheduled import.`,
	RunE:  runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(false)
	if err != nil {
		return err
	}
	logg := rt.log
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	if err := rt.cfg.Server.ValidateSchedule(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc := rt.service(catalog.NewMetrics(reg))

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager(logg)
	mgr.Register(catalog.NewFeature(svc))
	mgr.Register(integrity.NewFeature(integrity.NewService(rt.store, rt.cfg.Storage.Bucket, rt.cfg.Catalog.ArchivePrefix, rt.db, logg)))

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
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

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{"/metrics"}}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var scheduler *cron.Cron
	if rt.cfg.Server.HasSchedule() {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(rt.cfg.Server.ImportSchedule, func() {
			if _, err := svc.Import(ctx, reconcile.All(), catalog.ImportOptions{}); err != nil {
				logg.Error("Scheduled import failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
		scheduler.Start()
		logg.Info("Import scheduled", zap.String("schedule", rt.cfg.Server.ImportSchedule))
	}

	go func() {
		logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
		if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logg.Info("Shutting down server...")

	cancel()
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	return app.Shutdown()
}
