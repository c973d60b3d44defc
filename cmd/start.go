package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopsync/core/config"
	"shopsync/core/database"
	"shopsync/core/loader"
	"shopsync/core/logger"
	"shopsync/core/middleware/auth"
	"shopsync/core/middleware/rayid"
	"shopsync/core/storage"
	"shopsync/feature/shopify"
	"shopsync/feature/shopify/models"
	shopifysync "shopsync/feature/shopify/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync service",
	Long:  `Starts the HTTP control plane and the recurring sync schedules.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed, sync feature disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to inventory database")
		}

		// 4. Archive storage (optional)
		var archive storage.Client
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(cmd.Context(), client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
			}
			archive = client
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Register Features
		mgr := loader.NewManager()
		feature := shopify.NewFeature(db, archive, cfg.Storage.Bucket, cfg.Shopify, logg)
		mgr.Register(feature)

		// Middleware: RayID first so everything is traceable
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

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Recurring schedules
		scheduler := cron.New()
		if feature.IsEnabled() {
			registerSchedules(scheduler, feature.Service(), cfg.Sync, logg)
			scheduler.Start()
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		<-scheduler.Stop().Done()
		_ = app.Shutdown()
	},
}

// registerSchedules wires the configured cron expressions to orchestrator
// invocations. Empty expressions disable the trigger.
func registerSchedules(scheduler *cron.Cron, svc *shopifysync.Service, cfg shopifysync.Config, logg *zap.Logger) {
	schedules := []struct {
		spec   string
		flavor models.SyncType
	}{
		{cfg.FullCron, models.SyncTypeFullInventory},
		{cfg.IncrementalCron, models.SyncTypeIncrementalInventory},
		{cfg.PriceCron, models.SyncTypePriceUpdate},
	}

	for _, s := range schedules {
		if s.spec == "" {
			continue
		}
		flavor := s.flavor
		if _, err := scheduler.AddFunc(s.spec, func() {
			svc.Run(context.Background(), flavor)
		}); err != nil {
			logg.Error("Invalid cron expression, trigger disabled",
				zap.String("sync_type", string(flavor)),
				zap.String("cron", s.spec),
				zap.Error(err))
			continue
		}
		logg.Info("Recurring sync scheduled",
			zap.String("sync_type", string(flavor)),
			zap.String("cron", s.spec))
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
