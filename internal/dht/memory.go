package dht

import (
	"context"
	"sync"

	"diddht/pkg/platform/sentinel"
)

// Memory is an in-process DHT table. It backs the default development
// network and tests.
type Memory struct {
	mu     sync.RWMutex
	values map[CommitHash][]byte
}

// NewMemory returns an empty in-process table.
func NewMemory() *Memory {
	return &Memory{values: make(map[CommitHash][]byte)}
}

func (m *Memory) Put(ctx context.Context, value []byte) (CommitHash, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkValue(value); err != nil {
		return "", err
	}
	target := Target(value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[target] = append([]byte(nil), value...)
	return target, nil
}

func (m *Memory) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[CommitHash(hexKey(key))]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Len reports how many values are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
