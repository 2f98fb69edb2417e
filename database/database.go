package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS guild_config (
    guild_id TEXT PRIMARY KEY NOT NULL UNIQUE,
    name     TEXT,
    settings TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS player (
    discord_id  TEXT PRIMARY KEY NOT NULL UNIQUE,
    partybus_id TEXT NOT NULL
);`

// InitDB opens (creating if needed) the sqlite file at dbPath and makes sure the schema exists.
func InitDB(dbPath string, logger *zap.Logger) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("connected to database", zap.String("path", dbPath))
	return db, nil
}
