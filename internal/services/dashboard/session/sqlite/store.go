// Package sqlite persists the session credential in a local SQLite file so a
// login survives between CLI invocations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/culater/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/culater/internal/services/dashboard/session"
	"github.com/louisbranch/culater/internal/services/dashboard/session/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// currentSlot is the single row holding the active credential.
const currentSlot = "current"

// Store is a SQLite-backed session.CredentialStore.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) and migrates the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReadCredential returns the stored credential when present.
func (s *Store) ReadCredential(ctx context.Context) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	var credential string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT credential FROM credentials WHERE slot = ?`, currentSlot,
	).Scan(&credential)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read credential: %w", err)
	}
	return credential, true, nil
}

// WriteCredential upserts the active credential.
func (s *Store) WriteCredential(ctx context.Context, credential string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO credentials (slot, credential, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		    credential = excluded.credential,
		    saved_at = excluded.saved_at`,
		currentSlot, credential, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// DeleteCredential removes the active credential. Deleting a missing row is
// not an error.
func (s *Store) DeleteCredential(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM credentials WHERE slot = ?`, currentSlot); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

var _ session.CredentialStore = (*Store)(nil)
