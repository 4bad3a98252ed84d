// Package journal keeps a sqlite log of finished conversations.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrClosed = errors.New("journal: store closed")

// Entry is one finished conversation.
type Entry struct {
	SessionID  string
	Scene      string
	NPC        string
	Speaker    string
	Outcome    string
	LinesShown int
	TotalLines int
	CharsRead  int
	Duration   time.Duration
	EndedAt    time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates the database file and schema if needed. ":memory:" is
// accepted for tests and dry runs.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("journal: empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			scene TEXT NOT NULL,
			npc TEXT NOT NULL,
			speaker TEXT NOT NULL,
			outcome TEXT NOT NULL,
			lines_shown INTEGER NOT NULL,
			total_lines INTEGER NOT NULL,
			chars_read INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS conversations_npc ON conversations(scene, npc);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("journal: schema: %w", err)
		}
	}
	return nil
}

// Record inserts e. Recording the same session twice is an error.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if e.EndedAt.IsZero() {
		e.EndedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations(session_id,scene,npc,speaker,outcome,lines_shown,total_lines,chars_read,duration_ms,ended_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		e.SessionID, e.Scene, e.NPC, e.Speaker, e.Outcome,
		e.LinesShown, e.TotalLines, e.CharsRead, e.Duration.Milliseconds(), e.EndedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", e.SessionID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id,scene,npc,speaker,outcome,lines_shown,total_lines,chars_read,duration_ms,ended_at
		 FROM conversations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			durMS   int64
			endedMS int64
		)
		if err := rows.Scan(&e.SessionID, &e.Scene, &e.NPC, &e.Speaker, &e.Outcome,
			&e.LinesShown, &e.TotalLines, &e.CharsRead, &durMS, &endedMS); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Duration = time.Duration(durMS) * time.Millisecond
		e.EndedAt = time.UnixMilli(endedMS)
		out = append(out, e)
	}
	return out, rows.Err()
}

// TimesTalked counts finished conversations with an NPC in a scene.
func (s *Store) TimesTalked(ctx context.Context, scene, npc string) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM conversations WHERE scene=? AND npc=?`, scene, npc).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
