package kms

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// PrivateKey is a sealed private key as persisted by a PrivateKeyStore.
type PrivateKey struct {
	Alias     string
	Type      KeyType
	SealedHex string
}

// PrivateKeyStore persists sealed private keys by alias (the key id).
type PrivateKeyStore interface {
	Save(ctx context.Context, key PrivateKey) error
	Get(ctx context.Context, alias string) (PrivateKey, error)
	Delete(ctx context.Context, alias string) error
}

// Local generates Ed25519 keys in process and keeps their private halves
// sealed in a PrivateKeyStore. Key ids are the hex public key.
type Local struct {
	store PrivateKeyStore
	box   *SecretBox
}

// NewLocal constructs the local KMS.
func NewLocal(store PrivateKeyStore, box *SecretBox) (*Local, error) {
	if store == nil {
		return nil, errors.New("private key store is required")
	}
	if box == nil {
		return nil, errors.New("secret box is required")
	}
	return &Local{store: store, box: box}, nil
}

func (l *Local) CreateKey(ctx context.Context, t KeyType) (Key, error) {
	if t != KeyTypeEd25519 {
		return Key{}, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, t)
	}
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Key{}, fmt.Errorf("generate ed25519 key: %w", err)
	}
	sealed, err := l.box.Seal(priv)
	if err != nil {
		return Key{}, err
	}
	kid := hex.EncodeToString(pub)
	if err := l.store.Save(ctx, PrivateKey{Alias: kid, Type: t, SealedHex: sealed}); err != nil {
		return Key{}, fmt.Errorf("save private key: %w", err)
	}
	return Key{
		KID:          kid,
		Type:         t,
		PublicKeyHex: kid,
		Meta:         map[string]string{"algorithms": "EdDSA,Ed25519"},
	}, nil
}

func (l *Local) DeleteKey(ctx context.Context, kid string) error {
	return l.store.Delete(ctx, kid)
}

// Sign produces an Ed25519 signature over data.
func (l *Local) Sign(ctx context.Context, kid string, data []byte) ([]byte, error) {
	pk, err := l.store.Get(ctx, kid)
	if err != nil {
		return nil, fmt.Errorf("load private key %s: %w", kid, err)
	}
	raw, err := l.box.Open(pk.SealedHex)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key %s has %d bytes", kid, len(raw))
	}
	return ed25519.Sign(ed25519.PrivateKey(raw), data), nil
}
