package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// recordStore is the key/value surface the record repository persists through
type recordStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// postgresStore keeps values in the records table
type postgresStore struct {
	q queryable
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value FROM records WHERE record_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return value, true, nil
}

func (s *postgresStore) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO records (record_key, value)
		VALUES ($1, $2)
		ON CONFLICT (record_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put record %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM records WHERE record_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// MemoryStore is a process-local record store for development and tests
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// memoryTx stages writes over a MemoryStore until commit
type memoryTx struct {
	base    *MemoryStore
	writes  map[string]string
	deletes map[string]bool
}

func newMemoryTx(base *MemoryStore) *memoryTx {
	return &memoryTx{
		base:    base,
		writes:  make(map[string]string),
		deletes: make(map[string]bool),
	}
}

func (t *memoryTx) Get(ctx context.Context, key string) (string, bool, error) {
	if t.deletes[key] {
		return "", false, nil
	}
	if v, ok := t.writes[key]; ok {
		return v, true, nil
	}
	return t.base.Get(ctx, key)
}

func (t *memoryTx) Put(ctx context.Context, key, value string) error {
	delete(t.deletes, key)
	t.writes[key] = value
	return nil
}

func (t *memoryTx) Delete(ctx context.Context, key string) error {
	delete(t.writes, key)
	t.deletes[key] = true
	return nil
}

// commit applies staged writes to the base store atomically
func (t *memoryTx) commit() {
	t.base.mu.Lock()
	defer t.base.mu.Unlock()
	for key := range t.deletes {
		delete(t.base.values, key)
	}
	for key, value := range t.writes {
		t.base.values[key] = value
	}
}
