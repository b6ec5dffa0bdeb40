// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL and SQLite connections based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database with
// DSN-level timeouts and sane pool limits, and verifies it with a ping.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. The images feature
// uses them at wiring time to verify that the business collections actually
// carry the image-bearing columns the reference checkers query.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "restaurants", "logo_public_id")
package database
