// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Log: logging level and format
//   - Database: MySQL connection details
//   - Storage: MinIO/S3 settings for run-summary archival
//   - Shopify: admin API credentials, store list and client tuning
//   - Sync: recurring-trigger cron schedules
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
