package handoff

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
)

var ErrNotFound = errors.New("handoff: nothing stored under key")

// Store carries a serialized booking across the payment redirect.
// Entries are written once and read once. Take removes the entry in the
// same step as the read, so concurrent callers get it at most once.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Take(ctx context.Context, key string) ([]byte, error)
}

// PutRecord stores rec under its reference code.
func PutRecord(ctx context.Context, s Store, rec domain.Record) error {
	if rec.ReferenceCode == "" {
		return errors.New("handoff: record has no reference code")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "handoff: encode record")
	}
	return s.Put(ctx, rec.ReferenceCode, data)
}

// TakeRecord reads and clears the record stored under key. The entry is
// gone afterwards whether or not it decodes.
func TakeRecord(ctx context.Context, s Store, key string) (domain.Record, error) {
	data, err := s.Take(ctx, key)
	if err != nil {
		return domain.Record{}, err
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Record{}, errors.Wrapf(err, "handoff: decode %s", key)
	}
	return rec, nil
}

// MemoryStore is a process-local Store for single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.entries[key] = buf
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Take(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", key)
	}
	delete(m.entries, key)
	return data, nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
