package db

import (
	"errors"
	"path/filepath"
	"testing"
)

// openTestDB points the package-global pool at a throwaway file. Tests in
// this package must not run in parallel because of the shared pool.
func openTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("InitDB() unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Errorf("Close() unexpected error: %v", err)
		}
	})
}

func TestTranscriptRoundTrip(t *testing.T) {
	openTestDB(t)

	const sessionID = "11111111-2222-3333-4444-555555555555"
	if err := BeginSession(sessionID, "doctor"); err != nil {
		t.Fatalf("BeginSession() unexpected error: %v", err)
	}

	exchanges := []struct {
		input, reply string
	}{
		{"i am sad", "Why are you sad?"},
		{"my dog left", "I see."},
		{"bye", "Goodbye."},
	}
	for i, e := range exchanges {
		if err := RecordTurn(sessionID, i+1, e.input, e.reply); err != nil {
			t.Fatalf("RecordTurn(%d) unexpected error: %v", i+1, err)
		}
	}

	turns, err := GetTranscript(sessionID)
	if err != nil {
		t.Fatalf("GetTranscript() unexpected error: %v", err)
	}
	if len(turns) != len(exchanges) {
		t.Fatalf("GetTranscript() returned %d turns, want %d", len(turns), len(exchanges))
	}
	for i, turn := range turns {
		if turn.Turn != i+1 {
			t.Errorf("turn %d has index %d, want oldest-first ordering", i, turn.Turn)
		}
		if turn.Input != exchanges[i].input || turn.Reply != exchanges[i].reply {
			t.Errorf("turn %d = %q/%q, want %q/%q",
				i+1, turn.Input, turn.Reply, exchanges[i].input, exchanges[i].reply)
		}
	}
}

func TestGetTranscriptUnknownSession(t *testing.T) {
	openTestDB(t)

	_, err := GetTranscript("no-such-session")
	if err == nil {
		t.Fatal("GetTranscript() returned no error for an unknown session")
	}
	if !errors.Is(err, errUnknownSession) {
		t.Errorf("GetTranscript() error = %v, want errUnknownSession", err)
	}
}

func TestDuplicateSessionRejected(t *testing.T) {
	openTestDB(t)

	const sessionID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	if err := BeginSession(sessionID, "doctor"); err != nil {
		t.Fatalf("BeginSession() unexpected error: %v", err)
	}
	if err := BeginSession(sessionID, "doctor"); err == nil {
		t.Error("BeginSession() accepted a duplicate session id")
	}
}

func TestGlobalStats(t *testing.T) {
	openTestDB(t)

	stats, err := GetGlobalStats()
	if err != nil {
		t.Fatalf("GetGlobalStats() unexpected error: %v", err)
	}
	if stats.SessionCount != 0 || stats.TurnCount != 0 {
		t.Fatalf("fresh database reports stats %+v, want zeroes", stats)
	}
	if !stats.LastSessionTime.IsZero() {
		t.Error("fresh database has a non-zero last session time")
	}

	if err := BumpStats(7); err != nil {
		t.Fatalf("BumpStats() unexpected error: %v", err)
	}
	if err := BumpStats(3); err != nil {
		t.Fatalf("BumpStats() unexpected error: %v", err)
	}

	stats, err = GetGlobalStats()
	if err != nil {
		t.Fatalf("GetGlobalStats() unexpected error: %v", err)
	}
	if stats.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", stats.SessionCount)
	}
	if stats.TurnCount != 10 {
		t.Errorf("TurnCount = %d, want 10", stats.TurnCount)
	}
	if stats.LastSessionTime.IsZero() {
		t.Error("LastSessionTime was not updated")
	}
}
