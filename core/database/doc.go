// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL or SQLite connections based on the application's configuration. The
// resource service uses it to persist the asset key table between deployments.
//
// # Connect
//
// Connect establishes a connection using the configured driver, applies pool
// settings and verifies the connection with a bounded ping.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the integrity feature verify that the
// persisted key table has the columns the service expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "resource_keys", []string{"resource_key"})
package database
