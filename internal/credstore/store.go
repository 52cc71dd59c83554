// Package credstore reads and rewrites credential and session rows in
// the identity service's SQLite database. The schema is owned by the
// service; this package never creates or migrates the production file.
package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"socuser/internal/domain"
)

// SQLite DSN parameters for production hardening.
const (
	defaultBusyTimeout = "5000" // 5 seconds
	defaultSynchronous = "NORMAL"
	defaultJournalMode = "WAL"
)

// Store provides access to the credential and session tables.
type Store struct {
	db *sql.DB
}

// Open opens the credential database at path. The file must already
// exist: this tool is never the one to create the service's database,
// so a missing file is an environment error, not a fresh start.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrEnvironment("credential database %s does not exist", path)
		}
		return nil, fmt.Errorf("stat credential database: %w", err)
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// openSQLite opens a single-writer pool with hardened DSN parameters.
// The service may hold its own connections to the same file, so writes
// go through one connection with an immediate transaction lock.
func openSQLite(path string) (*sql.DB, error) {
	params := url.Values{}
	params.Set("_journal_mode", defaultJournalMode)
	params.Set("_busy_timeout", defaultBusyTimeout)
	params.Set("_synchronous", defaultSynchronous)
	params.Set("_foreign_keys", "on")
	params.Set("_txlock", "immediate")

	db, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	// Verify the connection is usable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetConfig reads and parses the credential config blob for the identity.
func (s *Store) GetConfig(ctx context.Context, identityID string) (*PasswordConfig, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM identity_credentials WHERE identity_id = ?`, identityID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("no credential record for identity %s", identityID)
		}
		return nil, fmt.Errorf("read credential config: %w", err)
	}

	var cfg PasswordConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("parse credential config for identity %s: %w", identityID, err)
	}
	return &cfg, nil
}

// SetPassword stores a new encoded hash for the identity, preserving the
// locked/active form of an existing record. A freshly created identity
// may not have a credential row yet, so the write is an upsert.
func (s *Store) SetPassword(ctx context.Context, identityID, encodedHash string) error {
	cfg, err := s.GetConfig(ctx, identityID)
	if err != nil {
		var nfErr *domain.NotFoundError
		if !errors.As(err, &nfErr) {
			return err
		}
		cfg = &PasswordConfig{}
	}
	cfg.Hash = encodedHash

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode credential config: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO identity_credentials (identity_id, config)
		VALUES (?, ?)
		ON CONFLICT(identity_id) DO UPDATE SET config = excluded.config`,
		identityID, string(data))
	if err != nil {
		return fmt.Errorf("write credential config: %w", err)
	}
	return nil
}

// Lock rewrites the credential record into its locked form, keeping the
// hash so a later unlock restores the previous password. Identities
// without a credential record are skipped.
func (s *Store) Lock(ctx context.Context, identityID string) error {
	return s.setLocked(ctx, identityID, true)
}

// Unlock rewrites the credential record into its active form.
// Identities without a credential record are skipped.
func (s *Store) Unlock(ctx context.Context, identityID string) error {
	return s.setLocked(ctx, identityID, false)
}

func (s *Store) setLocked(ctx context.Context, identityID string, locked bool) error {
	cfg, err := s.GetConfig(ctx, identityID)
	if err != nil {
		var nfErr *domain.NotFoundError
		if errors.As(err, &nfErr) {
			return nil
		}
		return err
	}
	cfg.Locked = locked
	return s.writeConfig(ctx, identityID, cfg)
}

func (s *Store) writeConfig(ctx context.Context, identityID string, cfg *PasswordConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode credential config: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE identity_credentials SET config = ? WHERE identity_id = ?`,
		string(data), identityID)
	if err != nil {
		return fmt.Errorf("write credential config: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write credential config: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("no credential record for identity %s", identityID)
	}
	return nil
}

// DeleteSessions removes every session row belonging to the identity
// and returns how many were purged.
func (s *Store) DeleteSessions(ctx context.Context, identityID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE identity_id = ?`, identityID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return n, nil
}

// SessionCount reports how many session rows the identity currently has.
func (s *Store) SessionCount(ctx context.Context, identityID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE identity_id = ?`, identityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
