package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/fenilmodi00/stock-tracker/database"
	"github.com/sirupsen/logrus"
)

// KeyValueStore is the durable storage the watchlist is persisted to.
// Load reports found=false for a missing key.
type KeyValueStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// MemoryStore is a process-local KeyValueStore
type MemoryStore struct {
	mutex sync.RWMutex
	data  map[string][]byte
	saves int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	s.saves++
	return nil
}

// SaveCount returns how many times Save has been called
func (s *MemoryStore) SaveCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.saves
}

// SQLStore is a KeyValueStore over the kv_store table (Postgres or SQLite)
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLStore wraps db and creates the kv_store table if it does not exist
func NewSQLStore(db *sql.DB, dialect database.Dialect) (*SQLStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sql store requires a database connection")
	}
	if err := database.Migrate(db, database.KVSchema); err != nil {
		return nil, fmt.Errorf("failed to migrate kv schema: %w", err)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf("SELECT value FROM kv_store WHERE key = %s", s.dialect.Placeholder(1))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`INSERT INTO kv_store (key, value, updated_at) VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2))

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}

	logrus.WithFields(logrus.Fields{
		"component": "SQLStore",
		"key":       key,
		"bytes":     len(value),
	}).Debug("Saved key")
	return nil
}
