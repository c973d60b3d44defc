// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL connections based on
// the application's configuration. The sqlite driver is supported as well,
// which the repository tests use to run against an in-memory database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
