package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu          sync.RWMutex
	identifiers map[string]models.Identifier
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{identifiers: make(map[string]models.Identifier)}
}

func (s *InMemoryStore) Save(_ context.Context, id models.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identifiers[id.DID]; ok {
		return sentinel.ErrConflict
	}
	if id.Alias != "" {
		for _, existing := range s.identifiers {
			if existing.Provider == id.Provider && existing.Alias == id.Alias {
				return sentinel.ErrConflict
			}
		}
	}
	s.identifiers[id.DID] = clone(id)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, did string) (models.Identifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.identifiers[did]; ok {
		return clone(id), nil
	}
	return models.Identifier{}, sentinel.ErrNotFound
}

// Find returns matches ordered by DID.
func (s *InMemoryStore) Find(_ context.Context, filter Filter) ([]models.Identifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Identifier, 0)
	for _, id := range s.identifiers {
		if filter.matches(id) {
			out = append(out, clone(id))
		}
	}
	slices.SortFunc(out, func(a, b models.Identifier) int {
		return strings.Compare(a.DID, b.DID)
	})
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, did string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identifiers[did]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.identifiers, did)
	return nil
}

func clone(in models.Identifier) models.Identifier {
	out := in
	out.Keys = make([]kms.Key, len(in.Keys))
	for i, k := range in.Keys {
		k.Meta = maps.Clone(k.Meta)
		out.Keys[i] = k
	}
	out.Services = append([]models.Service{}, in.Services...)
	return out
}
