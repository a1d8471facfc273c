package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides the portfolio and session
// stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.folio/data/folio.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "folio.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PortfolioStore returns a PortfolioStore backed by this store.
func (s *Store) PortfolioStore() driven.PortfolioStore {
	return &portfolioStore{store: s}
}

// SessionStore returns a SessionStore backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Portfolio Store ====================

// portfolioStore implements driven.PortfolioStore.
type portfolioStore struct {
	store *Store
}

var _ driven.PortfolioStore = (*portfolioStore)(nil)

// Save stores or replaces the portfolio under key.
func (s *portfolioStore) Save(ctx context.Context, key string, portfolio domain.PersistedPortfolio) error {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("marshalling portfolio: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO portfolios (key, data, version, saved_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			version = excluded.version,
			saved_at = excluded.saved_at,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(data), portfolio.Version, portfolio.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: saving portfolio: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Load retrieves the portfolio under key.
func (s *portfolioStore) Load(ctx context.Context, key string) (*domain.PersistedPortfolio, error) {
	var data string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT data FROM portfolios WHERE key = ?", key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading portfolio: %v", domain.ErrStorageUnavailable, err)
	}

	var portfolio domain.PersistedPortfolio
	if err := json.Unmarshal([]byte(data), &portfolio); err != nil {
		return nil, fmt.Errorf("unmarshalling portfolio: %w", err)
	}
	return &portfolio, nil
}

// Delete removes the portfolio under key.
func (s *portfolioStore) Delete(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM portfolios WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: deleting portfolio: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Keys lists every stored key, sorted.
func (s *portfolioStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT key FROM portfolios ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("%w: listing portfolios: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// SaveSession replaces the stored session under key.
func (s *sessionStore) SaveSession(ctx context.Context, key string, session domain.Session) error {
	entries, err := json.Marshal(session.Entries)
	if err != nil {
		return fmt.Errorf("marshalling history: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (key, entries, cursor, selected, template, dirty, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			entries = excluded.entries,
			cursor = excluded.cursor,
			selected = excluded.selected,
			template = excluded.template,
			dirty = excluded.dirty,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(entries), session.Cursor, session.Selected, session.TemplateID, boolToInt(session.Dirty))
	if err != nil {
		return fmt.Errorf("%w: saving session: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadSession retrieves the session under key.
func (s *sessionStore) LoadSession(ctx context.Context, key string) (*domain.Session, error) {
	var (
		entries string
		dirty   int
		session domain.Session
	)
	err := s.store.db.QueryRowContext(ctx, `
		SELECT entries, cursor, selected, template, dirty
		FROM sessions WHERE key = ?
	`, key).Scan(&entries, &session.Cursor, &session.Selected, &session.TemplateID, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading session: %v", domain.ErrStorageUnavailable, err)
	}

	if err := json.Unmarshal([]byte(entries), &session.Entries); err != nil {
		return nil, fmt.Errorf("unmarshalling history: %w", err)
	}
	session.Dirty = dirty != 0
	return &session, nil
}

// ClearSession removes the session under key.
func (s *sessionStore) ClearSession(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: clearing session: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
