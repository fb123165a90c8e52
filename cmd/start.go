package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"addressable-resources/core/addressables"
	"addressable-resources/core/assets"
	"addressable-resources/core/loader"
	"addressable-resources/core/logger"
	"addressable-resources/core/middleware/auth"
	"addressable-resources/core/middleware/rayid"
	"addressable-resources/feature/discovery"
	"addressable-resources/feature/integrity"
	"addressable-resources/feature/resources"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "addressable-resources/docs/swagger"
)

// @title Addressable Resources API
// @version 1.0
// @description Path-keyed resource loading with reference counted lifetimes.
// @host localhost:8080
// @BasePath /

// bootstrap is the process-wide loader installation.
var bootstrap resources.Bootstrap

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the resources server",
	Long:  `Builds the key table, installs the redirecting loader and starts the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 1. Configuration, logger, storage and database
		svc, err := newServices(false)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := svc.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Key table
		table, err := svc.loadTable(ctx)
		if err != nil {
			logg.Fatal("Failed to build key table", zap.String("source", svc.tableSource()), zap.Error(err))
		}

		// 3. Install the loader
		registry := assets.NewRegistry()
		opts, engine := svc.loaderOptions(registry)
		resLoader := bootstrap.Initialize(table, opts)

		// 4. Authoring mode follows the content root
		if svc.mode == addressables.ModeAuthoring && svc.cfg.Resources.Watch {
			w, err := discovery.NewWatcher(svc.cfg.Resources.ContentRoot, svc.cfg.Resources.Marker,
				discovery.DefaultDebounce, resLoader.ReplaceTable, logg.Named("watcher"))
			if err != nil {
				logg.Warn("Content watcher disabled", zap.Error(err))
			} else {
				go func() {
					if err := w.Run(ctx); err != nil {
						logg.Error("Content watcher stopped", zap.Error(err))
					}
				}()
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(svc.cfg.Server.ReadTimeout()) * time.Second,
		})

		// 6. Register Features
		mgr := loader.NewManager(logg)
		mgr.Register(resources.NewFeature(resLoader, registry, logg))
		mgr.Register(integrity.NewFeature(svc.store, svc.cfg.Storage.Bucket, svc.cfg.Resources.Prefix,
			svc.cfg.Resources.Marker, resLoader, svc.db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
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

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: svc.cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", svc.cfg.Server.Port),
				zap.String("mode", svc.mode.String()),
				zap.Int("keys", table.Len()))
			if err := app.Listen(":" + svc.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()

		s := resLoader.Stats()
		logg.Info("Loader state at shutdown",
			zap.Int("tracked", s.Tracked),
			zap.Int("held", s.Held),
			zap.Int64("operations_started", engine.Started()),
			zap.Int64("operations_released", engine.Released()))
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
