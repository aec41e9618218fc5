package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists definitions to a SQLite database.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a store at path.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS resources (
			name TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			updated TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, name string, data []byte) (Info, error) {
	if err := validName(name); err != nil {
		return Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	if data == nil {
		data = []byte{}
	}
	updated := time.Now().UTC()
	info := Info{Name: name, Updated: updated, Size: int64(len(data))}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO resources (name, version, updated, data)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = version + 1,
			updated = excluded.updated,
			data = excluded.data
		RETURNING version
	`, name, updated.Format(time.RFC3339Nano), data).Scan(&info.Version)
	if err != nil {
		return Info{}, fmt.Errorf("put resource: %w", err)
	}
	return info, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM resources WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return data, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, version, updated, LENGTH(data)
		FROM resources
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var updated string
		if err := rows.Scan(&info.Name, &info.Version, &updated, &info.Size); err != nil {
			return nil, fmt.Errorf("scan resource info: %w", err)
		}
		info.Updated, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
