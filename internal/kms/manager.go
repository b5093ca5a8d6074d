package kms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	dErrors "diddht/pkg/domain-errors"
)

// KeyManager routes key requests to named key management systems and
// records the public half of every key it creates. The name -> system
// mapping is fixed at construction.
type KeyManager struct {
	systems map[string]KeyManagementSystem
	store   KeyStore
	logger  *slog.Logger
}

// Option configures a KeyManager.
type Option func(*KeyManager)

// WithLogger sets the logger used for key lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *KeyManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewKeyManager validates the system mapping eagerly: names must be
// non-empty and systems non-nil.
func NewKeyManager(store KeyStore, systems map[string]KeyManagementSystem, opts ...Option) (*KeyManager, error) {
	if store == nil {
		return nil, errors.New("key store is required")
	}
	if len(systems) == 0 {
		return nil, errors.New("at least one key management system is required")
	}
	copied := make(map[string]KeyManagementSystem, len(systems))
	for name, sys := range systems {
		if name == "" {
			return nil, errors.New("key management system name is required")
		}
		if sys == nil {
			return nil, fmt.Errorf("key management system %q is nil", name)
		}
		copied[name] = sys
	}
	m := &KeyManager{
		systems: copied,
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CreateKey asks the named system for a new key and records it.
func (m *KeyManager) CreateKey(ctx context.Context, kmsName string, t KeyType) (Key, error) {
	sys, ok := m.systems[kmsName]
	if !ok {
		return Key{}, dErrors.Wrap(ErrUnknownKMS, dErrors.CodeBadRequest,
			fmt.Sprintf("invalid_argument: No key management system named %q", kmsName))
	}
	key, err := sys.CreateKey(ctx, t)
	if err != nil {
		return Key{}, err
	}
	key.KMS = kmsName
	if err := m.store.Import(ctx, key); err != nil {
		return Key{}, fmt.Errorf("record key %s: %w", key.KID, err)
	}
	m.logger.DebugContext(ctx, "key created",
		"kid", key.KID,
		"kms", kmsName,
		"type", t,
	)
	return key, nil
}

// GetKey returns the public metadata of a managed key.
func (m *KeyManager) GetKey(ctx context.Context, kid string) (Key, error) {
	return m.store.Get(ctx, kid)
}

// DeleteKey removes a key from its system and from the key store.
func (m *KeyManager) DeleteKey(ctx context.Context, kid string) error {
	key, err := m.store.Get(ctx, kid)
	if err != nil {
		return err
	}
	sys, ok := m.systems[key.KMS]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKMS, key.KMS)
	}
	if err := sys.DeleteKey(ctx, kid); err != nil {
		return err
	}
	return m.store.Delete(ctx, kid)
}

// Sign signs data with a managed key.
func (m *KeyManager) Sign(ctx context.Context, kid string, data []byte) ([]byte, error) {
	key, err := m.store.Get(ctx, kid)
	if err != nil {
		return nil, err
	}
	sys, ok := m.systems[key.KMS]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKMS, key.KMS)
	}
	return sys.Sign(ctx, kid, data)
}

// Names lists the configured system names, sorted.
func (m *KeyManager) Names() []string {
	names := make([]string, 0, len(m.systems))
	for name := range m.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
