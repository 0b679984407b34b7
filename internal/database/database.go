package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := &Database{db: db}
	if err := d.init(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("✅ Database initialized: %s", path)
	return d, nil
}

func (d *Database) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			steps INTEGER NOT NULL DEFAULT 0,
			calories_burned INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS exercise_sessions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			duration_minutes REAL NOT NULL,
			calories_burned INTEGER NOT NULL,
			timestamp TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS weight_records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			weight_kg REAL NOT NULL,
			date TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sleep_records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			hours_slept REAL NOT NULL,
			date TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			name TEXT PRIMARY KEY,
			target_value REAL NOT NULL,
			current_value REAL NOT NULL DEFAULT 0
		)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}
