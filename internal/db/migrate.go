package db

import (
	"embed"
	"errors"
	"fmt"
	"slices"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// MigrateCommands are the goose commands exposed by the CLI.
var MigrateCommands = []string{"up", "down", "status"}

var ErrUnknownMigrateCommand = errors.New("unknown migrate command")

// Migrate applies every pending migration.
func Migrate(db *gorm.DB) error {
	return runGoose(db, "up")
}

// MigrateCommand runs one of MigrateCommands against the embedded migrations.
func MigrateCommand(db *gorm.DB, command string) error {
	if !slices.Contains(MigrateCommands, command) {
		return fmt.Errorf("%w: %q", ErrUnknownMigrateCommand, command)
	}
	return runGoose(db, command)
}

func runGoose(db *gorm.DB, command string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Run(command, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
