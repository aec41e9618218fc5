package source

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps definitions in memory. Contents are lost on exit.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]entry
	closed bool
}

type entry struct {
	data    []byte
	version int
	updated time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]entry)}
}

// Put implements Store.
func (m *MemoryStore) Put(ctx context.Context, name string, data []byte) (Info, error) {
	if err := validName(name); err != nil {
		return Info{}, err
	}
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	e := entry{
		data:    slices.Clone(data),
		version: m.data[name].version + 1,
		updated: time.Now().UTC(),
	}
	m.data[name] = e
	return e.info(name), nil
}

func (e entry) info(name string) Info {
	return Info{Name: name, Version: e.version, Updated: e.updated, Size: int64(len(e.data))}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	e, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(e.data), nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for name, e := range m.data {
		infos = append(infos, e.info(name))
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored definitions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
