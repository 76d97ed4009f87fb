// Package sqlite is a session.Slot backed by a local SQLite database, for
// clients that already keep state in one.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// slotKey is the row holding the credential.
const slotKey = "token"

// Slot stores the credential in the credential_slot table.
type Slot struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens dsn and applies migrations.
func Open(dsn string) (*Slot, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer; SQLite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Slot{db: db, now: time.Now}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite slot: migrate: %w", err)
	}
	return s, nil
}

func (s *Slot) Close() error { return s.db.Close() }

func (s *Slot) Get(ctx context.Context) (string, bool, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credential_slot WHERE key = ?`, slotKey,
	).Scan(&token)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("sqlite slot: get: %w", err)
	}
	return token, true, nil
}

func (s *Slot) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credential_slot (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slotKey, token, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite slot: set: %w", err)
	}
	return nil
}

func (s *Slot) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credential_slot WHERE key = ?`, slotKey); err != nil {
		return fmt.Errorf("sqlite slot: clear: %w", err)
	}
	return nil
}
