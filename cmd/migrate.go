package cmd

import (
	"log"

	"shopsync/core/config"
	"shopsync/core/database"
	"shopsync/core/logger"
	"shopsync/feature/shopify/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the sync tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		cfg.Log.Format = "console"
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		err = db.AutoMigrate(
			&models.EcommerceInventory{},
			&models.SyncRun{},
			&models.SyncLog{},
		)
		if err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}

		logg.Info("Schema is up to date")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
