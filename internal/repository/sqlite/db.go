package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
	path string
}

type Config struct {
	Path string
}

// creates a new db conn & runs migrations
func NewDB(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout is per connection, so it goes in the DSN for every
	// connection in the pool
	db, err := sqlx.Open("sqlite3", cfg.Path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db, path: cfg.Path}, nil
}

// Path is the database file on disk.
func (db *DB) Path() string {
	return db.path
}

// executes db schema
func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		icon TEXT,
		is_inbox BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,

		CHECK(name != ''),
		CHECK(length(name) <= 100)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_name ON projects(name COLLATE NOCASE);

	-- project_id carries no foreign key: tasks may outlive their project and
	-- are then resolved through legacy_project_name
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'inbox',
		priority TEXT NOT NULL DEFAULT 'low',
		due_date DATETIME,
		is_complete BOOLEAN NOT NULL DEFAULT 0,
		date_completed DATETIME,
		legacy_project_name TEXT,
		category TEXT,
		context TEXT,
		energy TEXT,
		tags TEXT,
		estimate_minutes INTEGER,
		dependencies TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,

		CHECK(name != ''),
		CHECK(length(name) <= 200),
		CHECK(priority IN ('none', 'low', 'high', 'max')),
		CHECK(type IN ('morning', 'evening', 'upcoming', 'inbox'))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
	CREATE INDEX IF NOT EXISTS idx_tasks_is_complete ON tasks(is_complete);
	CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

	CREATE TABLE IF NOT EXISTS saved_views (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		filter_state TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,

		CHECK(name != '')
	);

	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
