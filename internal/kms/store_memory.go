package kms

import (
	"context"
	"sync"

	"diddht/pkg/platform/sentinel"
)

// InMemoryPrivateKeyStore keeps sealed private keys in a map. Process lifetime only.
type InMemoryPrivateKeyStore struct {
	mu   sync.RWMutex
	keys map[string]PrivateKey
}

func NewInMemoryPrivateKeyStore() *InMemoryPrivateKeyStore {
	return &InMemoryPrivateKeyStore{keys: make(map[string]PrivateKey)}
}

func (s *InMemoryPrivateKeyStore) Save(_ context.Context, key PrivateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key.Alias]; ok {
		return sentinel.ErrConflict
	}
	s.keys[key.Alias] = key
	return nil
}

func (s *InMemoryPrivateKeyStore) Get(_ context.Context, alias string) (PrivateKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[alias]
	if !ok {
		return PrivateKey{}, sentinel.ErrNotFound
	}
	return k, nil
}

func (s *InMemoryPrivateKeyStore) Delete(_ context.Context, alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[alias]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.keys, alias)
	return nil
}

// KeyStore records the public metadata of every key the manager created.
type KeyStore interface {
	Import(ctx context.Context, key Key) error
	Get(ctx context.Context, kid string) (Key, error)
	Delete(ctx context.Context, kid string) error
}

// InMemoryKeyStore is the default KeyStore.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]Key
}

func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{keys: make(map[string]Key)}
}

func (s *InMemoryKeyStore) Import(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key.KID]; ok {
		return sentinel.ErrConflict
	}
	s.keys[key.KID] = cloneKey(key)
	return nil
}

func (s *InMemoryKeyStore) Get(_ context.Context, kid string) (Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[kid]
	if !ok {
		return Key{}, sentinel.ErrNotFound
	}
	return cloneKey(k), nil
}

func (s *InMemoryKeyStore) Delete(_ context.Context, kid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[kid]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.keys, kid)
	return nil
}

// cloneKey copies the meta map so callers cannot mutate stored state.
func cloneKey(in Key) Key {
	out := in
	if in.Meta != nil {
		out.Meta = make(map[string]string, len(in.Meta))
		for k, v := range in.Meta {
			out.Meta[k] = v
		}
	}
	return out
}
