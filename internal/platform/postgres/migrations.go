package postgres

import "embed"

// Migrations holds the goose SQL migrations for the tasks schema.
// They are embedded so the server binary and the test helpers can run
// them without a checkout-relative path.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose should
// walk.
const MigrationsDir = "migrations"
