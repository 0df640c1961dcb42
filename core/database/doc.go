// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM to open MySQL, Postgres or SQLite connections from the application's
// configuration, with connection and I/O timeouts on every driver that supports them.
//
// # Migrations
//
// SQL migrations for MySQL and Postgres are embedded from the migrations directory and
// applied with golang-migrate. SQLite (used by tests and local runs) is migrated from
// the GORM models.
//
// # Schema Inspection
//
// VerifySchema checks at startup that the vehicles and logs tables carry every column
// the store depends on, so an unmigrated database fails fast instead of failing every zone.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	err = database.VerifySchema(db)
package database
