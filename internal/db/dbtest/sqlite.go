// Package dbtest opens throwaway SQLite databases carrying the same schema
// as the Postgres migrations, for repository and router tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		token      TEXT UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE families (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		surname       TEXT NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE children (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		family_id  INTEGER NOT NULL REFERENCES families (id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE chores (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		child_id      INTEGER NOT NULL REFERENCES children (id) ON DELETE CASCADE,
		owner_user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		due_date      DATE,
		completed     BOOLEAN NOT NULL DEFAULT FALSE,
		description   TEXT,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Open returns an in-memory database with the schema applied. The pool is
// pinned to a single connection so every query sees the same database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gormDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	for _, statement := range schema {
		if err := gormDB.Exec(statement).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}

	return gormDB
}
