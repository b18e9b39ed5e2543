package postgres

import "embed"

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

// MigrationsDir is the directory of Migrations that holds the SQL files.
const MigrationsDir = "migrations"

// Migrations holds the schema migrations, applied with goose.
//
//go:embed migrations/*.sql
var Migrations embed.FS
