package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func newIdentifier(did, alias, kid string) models.Identifier {
	return models.Identifier{
		DID:             did,
		Provider:        "did:dht",
		Alias:           alias,
		ControllerKeyID: kid,
		Keys: []kms.Key{{
			KID:          kid,
			KMS:          "local",
			Type:         kms.KeyTypeEd25519,
			PublicKeyHex: kid,
			Meta:         map[string]string{"algorithms": "EdDSA,Ed25519"},
		}},
		Services: []models.Service{},
	}
}

func (s *InMemoryStoreSuite) TestSaveAndGet() {
	s.Run("round trips an identifier", func() {
		id := newIdentifier("did:dht:aaa", "alice", "k1")
		s.Require().NoError(s.store.Save(s.ctx, id))

		got, err := s.store.Get(s.ctx, id.DID)
		s.Require().NoError(err)
		s.Equal(id, got)
	})

	s.Run("returns ErrNotFound for unknown DID", func() {
		_, err := s.store.Get(s.ctx, "did:dht:missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned copies do not alias stored state", func() {
		id := newIdentifier("did:dht:bbb", "", "k2")
		s.Require().NoError(s.store.Save(s.ctx, id))

		got, err := s.store.Get(s.ctx, id.DID)
		s.Require().NoError(err)
		got.Keys[0].Meta["algorithms"] = "tampered"
		got.Services = append(got.Services, models.Service{ID: "#x"})

		again, err := s.store.Get(s.ctx, id.DID)
		s.Require().NoError(err)
		s.Equal("EdDSA,Ed25519", again.Keys[0].Meta["algorithms"])
		s.Empty(again.Services)
	})
}

func (s *InMemoryStoreSuite) TestConflicts() {
	s.Require().NoError(s.store.Save(s.ctx, newIdentifier("did:dht:aaa", "alice", "k1")))

	s.Run("duplicate DID", func() {
		err := s.store.Save(s.ctx, newIdentifier("did:dht:aaa", "", "k9"))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate alias within provider", func() {
		err := s.store.Save(s.ctx, newIdentifier("did:dht:ccc", "alice", "k3"))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("same alias under another provider is allowed", func() {
		id := newIdentifier("did:dht:ddd", "alice", "k4")
		id.Provider = "did:other"
		s.NoError(s.store.Save(s.ctx, id))
	})

	s.Run("empty aliases never conflict", func() {
		s.NoError(s.store.Save(s.ctx, newIdentifier("did:dht:eee", "", "k5")))
		s.NoError(s.store.Save(s.ctx, newIdentifier("did:dht:fff", "", "k6")))
	})
}

func (s *InMemoryStoreSuite) TestFind() {
	s.Require().NoError(s.store.Save(s.ctx, newIdentifier("did:dht:ccc", "carol", "k3")))
	s.Require().NoError(s.store.Save(s.ctx, newIdentifier("did:dht:aaa", "alice", "k1")))
	other := newIdentifier("did:dht:bbb", "bob", "k2")
	other.Provider = "did:other"
	s.Require().NoError(s.store.Save(s.ctx, other))

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter returns all ordered by DID", Filter{}, []string{"did:dht:aaa", "did:dht:bbb", "did:dht:ccc"}},
		{"by provider", Filter{Provider: "did:dht"}, []string{"did:dht:aaa", "did:dht:ccc"}},
		{"by alias", Filter{Alias: "carol"}, []string{"did:dht:ccc"}},
		{"by key id", Filter{KeyID: "k2"}, []string{"did:dht:bbb"}},
		{"no match", Filter{Alias: "mallory"}, []string{}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.store.Find(s.ctx, tt.filter)
			s.Require().NoError(err)
			dids := make([]string, 0, len(got))
			for _, id := range got {
				dids = append(dids, id.DID)
			}
			s.Equal(tt.want, dids)
		})
	}
}

func (s *InMemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, newIdentifier("did:dht:aaa", "alice", "k1")))

	s.Require().NoError(s.store.Delete(s.ctx, "did:dht:aaa"))
	_, err := s.store.Get(s.ctx, "did:dht:aaa")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, "did:dht:aaa"), sentinel.ErrNotFound)
}
