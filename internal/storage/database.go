package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/lingodeck/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordEvent appends a session event to the journal.
func (db *DB) RecordEvent(ev domain.Event) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := db.conn.Exec(`
		INSERT INTO events (session_id, language, kind, card_hash, source, target, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ev.SessionID,
		ev.Language,
		string(ev.Kind),
		nullString(ev.CardHash),
		nullString(ev.Pair.Source),
		nullString(ev.Pair.Target),
		ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s event for session %s: %w", ev.Kind, ev.SessionID, err)
	}
	return nil
}

// CountEvents returns the number of journal events per kind for a language.
func (db *DB) CountEvents(language string) (map[domain.EventKind]int, error) {
	rows, err := db.conn.Query(`
		SELECT kind, COUNT(*)
		FROM events WHERE language = ?
		GROUP BY kind
	`, language)
	if err != nil {
		return nil, fmt.Errorf("failed to count events for %s: %w", language, err)
	}
	defer rows.Close()

	counts := make(map[domain.EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan event count row: %w", err)
		}
		counts[domain.EventKind(kind)] = n
	}
	return counts, rows.Err()
}

// RecentEvents returns up to limit events for a language, newest first.
func (db *DB) RecentEvents(language string, limit int) ([]domain.Event, error) {
	rows, err := db.conn.Query(`
		SELECT session_id, language, kind, card_hash, source, target, created_at
		FROM events WHERE language = ?
		ORDER BY id DESC
		LIMIT ?
	`, language, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent events for %s: %w", language, err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		var kind string
		var hash, source, target sql.NullString
		if err := rows.Scan(
			&ev.SessionID,
			&ev.Language,
			&kind,
			&hash,
			&source,
			&target,
			&ev.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		ev.Kind = domain.EventKind(kind)
		ev.CardHash = hash.String
		ev.Pair = domain.SentencePair{Source: source.String, Target: target.String}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
