package storage

const schema = `
-- The 'events' table is an append-only log of session decisions.
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    language TEXT NOT NULL,
    kind TEXT NOT NULL, -- learned, skipped, undo, reset
    card_hash TEXT,
    source TEXT,
    target TEXT,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_language ON events(language, kind);
`
