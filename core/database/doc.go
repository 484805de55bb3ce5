// Package database handles database connections for the duplicate monitor.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that supports
// the embedded SQLite store the monitor ships with by default, as well as MySQL
// for deployments that already run one.
//
// # Connect
//
// The Connect function establishes a connection based on the configured driver.
// SQLite connections are serialized (single open connection) to avoid busy errors
// between the broker API and the notifier worker sharing one file.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
