// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL (production) and
// SQLite (local/test) connections based on the application's configuration.
// Table structure extraction itself lives in core/schema, which runs
// catalog queries over the connection established here.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
