package scheduler

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestPurgeOldEvents(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			user_id INTEGER,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("creating events table: %v", err)
	}

	_, err = db.Exec(`INSERT INTO events (message, created_at) VALUES
		('ancient', ?), ('fresh', ?)`,
		time.Now().Add(-100*24*time.Hour), time.Now())
	if err != nil {
		t.Fatalf("inserting events: %v", err)
	}

	s := New(db, slog.Default())
	if err := s.purgeOldEvents(); err != nil {
		t.Fatalf("purgeOldEvents: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		t.Fatalf("counting events: %v", err)
	}
	if count != 1 {
		t.Errorf("remaining = %d, want 1", count)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	s := New(db, slog.Default())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
