package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var errUnknownSession = errors.New("unknown session")

// Turn is one recorded exchange of a conversation.
type Turn struct {
	Turn      int       `json:"turn"`
	Input     string    `json:"input"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

// BeginSession registers a new conversation under the given ID.
func BeginSession(sessionID, scriptName string) error {
	_, err := DB.Exec("INSERT INTO sessions (session_id, script) VALUES (?, ?)", sessionID, scriptName)
	if err != nil {
		return fmt.Errorf("failed to begin session %s: %w", sessionID, err)
	}
	return nil
}

// RecordTurn appends one exchange to a session's transcript.
func RecordTurn(sessionID string, turn int, input, reply string) error {
	_, err := DB.Exec(
		"INSERT INTO turns (session_id, turn, input, reply) VALUES (?, ?, ?, ?)",
		sessionID, turn, input, reply,
	)
	if err != nil {
		slog.Error("failed to record turn",
			slog.Any("err", err),
			slog.String("session_id", sessionID),
			slog.Int("turn", turn),
		)
	}
	return err
}

// GetTranscript returns a session's recorded turns, oldest first.
func GetTranscript(sessionID string) ([]Turn, error) {
	var exists int
	err := DB.QueryRow("SELECT COUNT(*) FROM sessions WHERE session_id = ?", sessionID).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", errUnknownSession, sessionID)
	}

	rows, err := DB.Query(
		"SELECT turn, input, reply, created_at FROM turns WHERE session_id = ? ORDER BY turn ASC",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Turn, &t.Input, &t.Reply, &t.CreatedAt); err != nil {
			slog.Error("failed to scan turn", slog.Any("err", err), slog.String("session_id", sessionID))
			continue
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}
