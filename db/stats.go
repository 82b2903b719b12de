package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// GlobalStats holds the aggregate usage statistics.
type GlobalStats struct {
	SessionCount    uint      `json:"session_count"`
	TurnCount       uint      `json:"turn_count"`
	LastSessionTime time.Time `json:"last_session_time"`
}

// Write saves the GlobalStats to the database.
func (s GlobalStats) Write() error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// Assumes the table exists and has exactly one row.
	_, err = DB.Exec("UPDATE global_stats SET stats = ? WHERE EXISTS (SELECT 1 FROM global_stats)", data)
	return err
}

// GetGlobalStats retrieves the GlobalStats from the database.
func GetGlobalStats() (GlobalStats, error) {
	var data []byte
	err := DB.QueryRow("SELECT stats FROM global_stats").Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Should not happen if DB is initialized correctly, but return empty stats just in case.
			slog.Error("global_stats table is empty")
			return GlobalStats{}, nil
		}
		return GlobalStats{}, err
	}
	var stats GlobalStats
	err = json.Unmarshal(data, &stats)
	return stats, err
}

// BumpStats retrieves, updates and writes back the global stats after a
// finished conversation.
func BumpStats(turns uint) error {
	stats, err := GetGlobalStats()
	if err != nil {
		slog.Error("bumpStats: failed to get global stats", slog.Any("err", err))
		return err
	}
	stats.SessionCount++
	stats.TurnCount += turns
	stats.LastSessionTime = time.Now()
	return stats.Write()
}
