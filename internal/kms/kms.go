// Package kms generates and holds identity keys on behalf of the identifier
// provider. A KeyManager routes requests to named key management systems;
// Local is the in-process system that keeps sealed Ed25519 private keys.
package kms

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
)

// KeyType names a key algorithm.
type KeyType string

const (
	KeyTypeEd25519 KeyType = "Ed25519"
)

var (
	// ErrUnknownKMS is returned when a request names a KMS that was not configured.
	ErrUnknownKMS = errors.New("unknown kms")
	// ErrUnsupportedKeyType is returned by systems asked for an algorithm they lack.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// Key is the public half of a managed key. The private half never leaves
// the KMS that created it.
type Key struct {
	KID          string            `json:"kid"`
	KMS          string            `json:"kms"`
	Type         KeyType           `json:"type"`
	PublicKeyHex string            `json:"publicKeyHex"`
	Meta         map[string]string `json:"meta,omitempty"`
}

// PublicKey decodes the hex public key.
func (k Key) PublicKey() ([]byte, error) {
	b, err := hex.DecodeString(k.PublicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("key %s: decode public key: %w", k.KID, err)
	}
	return b, nil
}

// KeyManagementSystem creates keys and signs with them.
type KeyManagementSystem interface {
	CreateKey(ctx context.Context, t KeyType) (Key, error)
	DeleteKey(ctx context.Context, kid string) error
	Sign(ctx context.Context, kid string, data []byte) ([]byte, error)
}
