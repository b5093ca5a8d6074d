// Package store persists created identifiers so the DID manager can look
// them up by DID, alias or key.
package store

import (
	"context"

	"diddht/internal/identifier/models"
)

// Filter narrows Find. Empty fields match everything.
type Filter struct {
	Provider string
	Alias    string
	KeyID    string
}

func (f Filter) matches(id models.Identifier) bool {
	if f.Provider != "" && id.Provider != f.Provider {
		return false
	}
	if f.Alias != "" && id.Alias != f.Alias {
		return false
	}
	if f.KeyID != "" {
		for _, kid := range id.KeyIDs() {
			if kid == f.KeyID {
				return true
			}
		}
		return false
	}
	return true
}

// Store is implemented by InMemoryStore and PostgresStore.
//
// Save returns sentinel.ErrConflict when the DID already exists or the
// alias is taken within the same provider. Get and Delete return
// sentinel.ErrNotFound for unknown DIDs.
type Store interface {
	Save(ctx context.Context, id models.Identifier) error
	Get(ctx context.Context, did string) (models.Identifier, error)
	Find(ctx context.Context, filter Filter) ([]models.Identifier, error)
	Delete(ctx context.Context, did string) error
}
