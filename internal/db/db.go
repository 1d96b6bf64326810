package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// DB is the shared database handle, nil until Init succeeds.
var DB *sql.DB

// Init opens the connection pool using DATABASE_URL and creates the
// schema if needed.
func Init() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(conn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = conn
	log.Printf("[DB] Connected and migrated")
	return nil
}

func migrate(conn *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id UUID PRIMARY KEY,
		owner TEXT NOT NULL,
		url TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		translation TEXT NOT NULL DEFAULT '',
		target_language TEXT NOT NULL DEFAULT '',
		title TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS favorites_owner_idx ON favorites (owner, created_at);
	`
	_, err := conn.Exec(schema)
	return err
}
