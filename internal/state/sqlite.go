package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists client state in a small local database, the desktop
// analog of the browser's local storage.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*State, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM client_state WHERE name IN (?, ?)`,
		KeyToken, KeyIdentity)
	if err != nil {
		return nil, fmt.Errorf("read client state: %w", err)
	}
	defer rows.Close()

	var token, identityJSON string
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan client state: %w", err)
		}
		switch name {
		case KeyToken:
			token = value
		case KeyIdentity:
			identityJSON = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read client state: %w", err)
	}

	// Either half missing means no usable state. Treat a half-written pair
	// the same as absence rather than surfacing a broken session.
	if token == "" || identityJSON == "" {
		return nil, ErrNotFound
	}

	var identity core.Session
	if err := json.Unmarshal([]byte(identityJSON), &identity); err != nil {
		return nil, fmt.Errorf("decode identity record: %w", err)
	}

	return &State{Token: token, Identity: identity}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, st State) error {
	identityJSON, err := json.Marshal(st.Identity)
	if err != nil {
		return fmt.Errorf("encode identity record: %w", err)
	}

	// One transaction for the pair; the invariant is that a reader never
	// sees a token without its identity or vice versa.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state save: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO client_state (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsert, KeyToken, st.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyIdentity, string(identityJSON)); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state save: %w", err)
	}

	slog.DebugContext(ctx, "Client state saved", "user_id", st.Identity.ID)
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM client_state WHERE name IN (?, ?)`, KeyToken, KeyIdentity)
	if err != nil {
		return fmt.Errorf("clear client state: %w", err)
	}
	return nil
}

// IsNotFound reports whether err means no state has been persisted.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
