package provider

//go:generate mockgen -source=provider.go -destination=mocks/key_manager.go -package=mocks KeyManager,Networks
//go:generate mockgen -destination=mocks/publisher.go -package=mocks diddht/internal/dht Publisher

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"diddht/internal/dht"
	"diddht/internal/didht"
	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/internal/network"
	"diddht/internal/provider/metrics"
	"diddht/internal/provider/mocks"
	dErrors "diddht/pkg/domain-errors"
)

var didPattern = regexp.MustCompile(`^did:dht:[a-km-uw-z1-9]+$`)

// =============================================================================
// Provider Test Suite
// =============================================================================
// The key manager and the DHT publisher are mocked so tests can assert which
// external calls happen, and in what order, for every outcome.

type ProviderSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockKeys      *mocks.MockKeyManager
	mockPublisher *mocks.MockPublisher
	metrics       *metrics.Metrics
	provider      *Provider
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderSuite))
}

func (s *ProviderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockKeys = mocks.NewMockKeyManager(s.ctrl)
	s.mockPublisher = mocks.NewMockPublisher(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())

	registry, err := network.NewRegistry(network.Configuration{
		Name:      "example-network",
		Publisher: s.mockPublisher,
	})
	s.Require().NoError(err)

	s.provider, err = New(s.mockKeys, registry, "local",
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *ProviderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func newEd25519Key(t *testing.T, kmsName string) kms.Key {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	h := hex.EncodeToString(pub)
	return kms.Key{KID: h, KMS: kmsName, Type: kms.KeyTypeEd25519, PublicKeyHex: h}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ProviderSuite) TestNew() {
	registry, err := network.NewRegistry()
	s.Require().NoError(err)

	s.Run("nil key manager returns error", func() {
		_, err := New(nil, registry, "local")
		s.ErrorContains(err, "key manager is required")
	})
	s.Run("nil registry returns error", func() {
		_, err := New(s.mockKeys, nil, "local")
		s.ErrorContains(err, "network registry is required")
	})
	s.Run("empty default kms returns error", func() {
		_, err := New(s.mockKeys, registry, "")
		s.ErrorContains(err, "default kms is required")
	})
}

// =============================================================================
// CreateIdentifier
// =============================================================================

func (s *ProviderSuite) TestCreateIdentifier_Success() {
	ctx := context.Background()
	key := newEd25519Key(s.T(), "local")
	pub, _ := key.PublicKey()

	var published []byte
	gomock.InOrder(
		s.mockKeys.EXPECT().CreateKey(gomock.Any(), "local", kms.KeyTypeEd25519).Return(key, nil),
		s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, value []byte) (dht.CommitHash, error) {
				published = value
				return dht.Target(value), nil
			}),
	)

	id, err := s.provider.CreateIdentifier(ctx, models.CreateArgs{
		Options: models.CreateOptions{NetworkName: "example-network"},
	})
	s.Require().NoError(err)

	s.Regexp(didPattern, id.DID)
	s.Equal(didht.DID(pub), id.DID)
	s.Equal(key.KID, id.ControllerKeyID)
	s.Require().Len(id.Keys, 1)
	s.Equal(key, id.Keys[0])
	s.NotNil(id.Services)
	s.Empty(id.Services)

	s.Equal(didht.Envelope(didht.Records(pub)), published)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.IdentifiersCreated.WithLabelValues("example-network")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.KeysCreated.WithLabelValues("local")))
}

func (s *ProviderSuite) TestCreateIdentifier_RoundTripsPublicKey() {
	key := newEd25519Key(s.T(), "local")
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(key, nil)
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash("abc"), nil)

	id, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
	s.Require().NoError(err)

	got, err := didht.ParseDID(id.DID)
	s.Require().NoError(err)
	s.Equal(key.PublicKeyHex, hex.EncodeToString(got))
}

func (s *ProviderSuite) TestCreateIdentifier_PublishedRecords() {
	key := newEd25519Key(s.T(), "local")
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(key, nil)

	var published []byte
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, value []byte) (dht.CommitHash, error) {
			published = value
			return dht.Target(value), nil
		})

	_, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
	s.Require().NoError(err)

	records, err := didht.ParseEnvelope(published)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Contains(records[0].Name, "_did.")
	s.Contains(records[1].Name, "_k0._did.")
	for _, r := range records {
		s.Equal(7200, r.TTL)
		s.Equal("TXT", r.Type)
	}
	s.Contains(records[0].RData, "v=0;vm=k0;auth=k0;")
	s.Contains(records[1].RData, "id=0;t=0;k="+key.PublicKeyHex)
}

func (s *ProviderSuite) TestCreateIdentifier_KMSSelection() {
	s.Run("empty kms falls back to default", func() {
		s.mockKeys.EXPECT().CreateKey(gomock.Any(), "local", kms.KeyTypeEd25519).Return(newEd25519Key(s.T(), "local"), nil)
		s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash("abc"), nil)

		_, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
		s.Require().NoError(err)
	})

	s.Run("explicit kms wins", func() {
		s.mockKeys.EXPECT().CreateKey(gomock.Any(), "vault", kms.KeyTypeEd25519).Return(newEd25519Key(s.T(), "vault"), nil)
		s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash("abc"), nil)

		_, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{KMS: "vault"})
		s.Require().NoError(err)
	})
}

func (s *ProviderSuite) TestCreateIdentifier_InvalidNetwork() {
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	id, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{
		Options: models.CreateOptions{NetworkName: "invalid-network"},
	})
	s.Nil(id)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidNetwork))
	s.Equal("invalid_network: No configuration found for network invalid-network", err.Error())

	name, ok := InvalidNetworkName(err)
	s.True(ok)
	s.Equal("invalid-network", name)

	name, ok = InvalidNetworkName(fmt.Errorf("create: %w", err))
	s.True(ok)
	s.Equal("invalid-network", name)
}

func (s *ProviderSuite) TestInvalidNetworkName_OtherErrors() {
	_, ok := InvalidNetworkName(errors.New("plain"))
	s.False(ok)
	_, ok = InvalidNetworkName(dErrors.New(dErrors.CodeNotImplemented, "not_implemented: addKey"))
	s.False(ok)
	_, ok = InvalidNetworkName(nil)
	s.False(ok)
}

func (s *ProviderSuite) TestCreateIdentifier_EmptyRegistry() {
	registry, err := network.NewRegistry()
	s.Require().NoError(err)
	p, err := New(s.mockKeys, registry, "local")
	s.Require().NoError(err)

	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err = p.CreateIdentifier(context.Background(), models.CreateArgs{})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidNetwork))
}

func (s *ProviderSuite) TestCreateIdentifier_KeyGenerationFailurePropagates() {
	kmsErr := errors.New("kms offline")
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(kms.Key{}, kmsErr)
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
	s.Same(kmsErr, err)
}

func (s *ProviderSuite) TestCreateIdentifier_RejectsUnusableKeys() {
	valid := newEd25519Key(s.T(), "local")
	tests := []struct {
		name string
		key  kms.Key
	}{
		{"empty public key", kms.Key{KID: "k", KMS: "local", Type: kms.KeyTypeEd25519}},
		{"short public key", kms.Key{KID: "k", KMS: "local", Type: kms.KeyTypeEd25519, PublicKeyHex: valid.PublicKeyHex[:40]}},
		{"long public key", kms.Key{KID: "k", KMS: "local", Type: kms.KeyTypeEd25519, PublicKeyHex: valid.PublicKeyHex + "00"}},
		{"non-hex public key", kms.Key{KID: "k", KMS: "local", Type: kms.KeyTypeEd25519, PublicKeyHex: "zz"}},
		{"wrong key type", kms.Key{KID: "k", KMS: "local", Type: kms.KeyType("Secp256k1"), PublicKeyHex: valid.PublicKeyHex}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.key, nil)
			s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

			id, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
			s.Nil(id)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		})
	}
	s.Equal(0.0, testutil.ToFloat64(s.metrics.IdentifiersCreated.WithLabelValues("example-network")))
}

func (s *ProviderSuite) TestCreateIdentifier_PublishFailure() {
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(newEd25519Key(s.T(), "local"), nil)
	netErr := errors.New("Network error")
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash(""), netErr)

	id, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
	s.Nil(id)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePublishFailed))
	s.Contains(err.Error(), "Network error")
	s.Equal("Failed to store DID Document in DHT: Network error", err.Error())
	s.ErrorIs(err, netErr)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.PublishFailures.WithLabelValues("example-network")))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.IdentifiersCreated.WithLabelValues("example-network")))
}

func (s *ProviderSuite) TestCreateIdentifier_NotIdempotent() {
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, kms.KeyType) (kms.Key, error) {
			return newEd25519Key(s.T(), "local"), nil
		}).Times(2)
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash("abc"), nil).Times(2)

	args := models.CreateArgs{Options: models.CreateOptions{NetworkName: "example-network"}}
	a, err := s.provider.CreateIdentifier(context.Background(), args)
	s.Require().NoError(err)
	b, err := s.provider.CreateIdentifier(context.Background(), args)
	s.Require().NoError(err)

	s.NotEqual(a.DID, b.DID)
	s.NotEqual(a.ControllerKeyID, b.ControllerKeyID)
}

func (s *ProviderSuite) TestCreateIdentifier_Concurrent() {
	const calls = 16
	s.mockKeys.EXPECT().CreateKey(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, kms.KeyType) (kms.Key, error) {
			return newEd25519Key(s.T(), "local"), nil
		}).Times(calls)
	s.mockPublisher.EXPECT().Put(gomock.Any(), gomock.Any()).Return(dht.CommitHash("abc"), nil).Times(calls)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dids = map[string]struct{}{}
	)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.provider.CreateIdentifier(context.Background(), models.CreateArgs{})
			if err != nil {
				return
			}
			mu.Lock()
			dids[id.DID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	s.Len(dids, calls)
}

// =============================================================================
// Lifecycle operations
// =============================================================================
// Every mutation is rejected with its own operation name and must not reach
// the key manager or the publisher (no EXPECT set: any call fails the test).

func (s *ProviderSuite) TestLifecycleOperationsAreRejected() {
	ctx := context.Background()
	existing := models.Identifier{DID: "did:dht:yyyy", ControllerKeyID: "k0"}

	cases := []struct {
		op   string
		call func() error
	}{
		{OpDeleteIdentifier, func() error {
			ok, err := s.provider.DeleteIdentifier(ctx, existing)
			s.False(ok)
			return err
		}},
		{OpAddKey, func() error {
			return s.provider.AddKey(ctx, models.AddKeyArgs{Identifier: existing, Key: newEd25519Key(s.T(), "local")})
		}},
		{OpAddService, func() error {
			return s.provider.AddService(ctx, models.AddServiceArgs{Identifier: existing, Service: models.Service{ID: "#s", Type: "LinkedDomains"}})
		}},
		{OpRemoveKey, func() error {
			return s.provider.RemoveKey(ctx, models.RemoveKeyArgs{Identifier: existing, KID: "k0"})
		}},
		{OpRemoveService, func() error {
			return s.provider.RemoveService(ctx, models.RemoveServiceArgs{Identifier: existing, ID: "#s"})
		}},
		{OpUpdateIdentifier, func() error {
			id, err := s.provider.UpdateIdentifier(ctx, models.UpdateArgs{DID: existing.DID})
			s.Nil(id)
			return err
		}},
	}

	for _, tc := range cases {
		s.Run(tc.op, func() {
			err := tc.call()
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeNotImplemented))
			s.Equal("not_implemented: "+tc.op, err.Error())

			op, ok := NotImplementedOp(err)
			s.True(ok)
			s.Equal(tc.op, op)
			s.Equal(1.0, testutil.ToFloat64(s.metrics.RejectedOperations.WithLabelValues(tc.op)))
		})
	}
}

func (s *ProviderSuite) TestAddKey_IgnoresPayload() {
	for _, key := range []kms.Key{{}, newEd25519Key(s.T(), "local"), {KID: "x", Type: "Secp256k1"}} {
		err := s.provider.AddKey(context.Background(), models.AddKeyArgs{Key: key})
		s.Equal("not_implemented: addKey", err.Error())
	}
}

func (s *ProviderSuite) TestNotImplementedOp_OtherErrors() {
	_, ok := NotImplementedOp(errors.New("boom"))
	s.False(ok)
	_, ok = NotImplementedOp(dErrors.New(dErrors.CodeInvalidNetwork, "x"))
	s.False(ok)
}
