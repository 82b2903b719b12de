// Package db persists conversation transcripts and usage statistics for
// the command line interface. The engine itself never touches it.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection pool for the cli package.
var DB *sql.DB

// InitDB initializes the database connection and ensures tables are created.
func InitDB(dataSourceName string) error {
	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Ping DB to ensure connection is valid
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	slog.Info("database connection established", slog.String("dataSource", dataSourceName))

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions ( session_id TEXT PRIMARY KEY, script TEXT, started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP )`,
		`CREATE TABLE IF NOT EXISTS turns ( session_id TEXT, turn INTEGER, input TEXT, reply TEXT, created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP )`,
		`CREATE TABLE IF NOT EXISTS global_stats ( stats BLOB )`,
	}

	for i, migration := range migrations {
		_, err = DB.Exec(migration)
		if err != nil {
			return fmt.Errorf("failed to execute migration %d: %w", i+1, err)
		}
	}

	// Ensure global_stats has one row
	var count int
	err = DB.QueryRow("SELECT COUNT(*) FROM global_stats").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to query global_stats count: %w", err)
	}
	if count == 0 {
		data, err := json.Marshal(GlobalStats{})
		if err != nil {
			return fmt.Errorf("failed to marshal initial global stats: %w", err)
		}
		_, err = DB.Exec("INSERT INTO global_stats (stats) VALUES (?)", data)
		if err != nil {
			return fmt.Errorf("failed to insert initial global stats: %w", err)
		}
	}

	return nil
}

// Close closes the connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
