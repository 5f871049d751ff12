package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds every schema change, registered from this package's init functions.
var Migrations = migrate.NewMigrations()
