package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mention-scanner/core/loader"
	"mention-scanner/core/logger"
	"mention-scanner/core/middleware/auth"
	"mention-scanner/core/middleware/rayid"
	"mention-scanner/feature/catalog"
	"mention-scanner/feature/mentions"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the mention scanner server",
	Long:  `Seeds the entity catalog, starts the HTTP server, and loads all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApplication()
		if err != nil {
			log.Fatalf("Failed to initialize application: %v", err)
		}
		logg := app.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Seed the catalog before accepting traffic: store first, then wiki,
		// then the archived snapshot.
		if err := app.catalog.Start(context.Background()); err != nil {
			logg.Fatal("Failed to seed catalog", zap.Error(err))
		}

		server := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(app.cfg.Catalog, app.catalog))
		mgr.Register(mentions.NewFeature(app.cfg.Mentions, app.scanners(), logg))

		// RayID first so every request is traceable.
		server.Use(rayid.New())

		// Logging middleware (Zap + RayID)
		server.Use(func(c *fiber.Ctx) error {
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

		// Auth (protects every route)
		server.Use(auth.New(auth.Config{ApiKey: app.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(server); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", app.cfg.Server.Port))
			if err := server.Listen(":" + app.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = server.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
