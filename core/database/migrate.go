package database

import (
	"embed"
	"errors"
	"fmt"

	"fleet-tracker/core/fleet"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationFS embed.FS

// ErrNoChange is returned when the schema is already at the requested version.
var ErrNoChange = migrate.ErrNoChange

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Migrate applies the embedded migrations of the given driver in the given direction.
// SQLite has no migration files; its schema is created from the models instead.
//
// For mysql and postgres the migration driver takes ownership of the connection and
// closes it when done, so callers must not reuse db afterwards.
func Migrate(db *gorm.DB, driver, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	if driver == DriverSQLite {
		if direction == DirectionDown {
			return db.Migrator().DropTable(&fleet.Log{}, &fleet.Vehicle{})
		}
		return db.AutoMigrate(&fleet.Vehicle{}, &fleet.Log{})
	}

	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case DirectionUp:
		err = m.Up()
	case DirectionDown:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

func newMigrator(db *gorm.DB, driver string) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	var (
		instance migratedb.Driver
		dir      string
	)
	switch driver {
	case DriverMySQL, "":
		instance, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
		dir = "migrations/mysql"
	case DriverPostgres:
		instance, err = migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
		dir = "migrations/postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}

	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return m, nil
}
