package kms

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	secretKeySize = 32
	nonceSize     = 24
)

// ErrDecrypt is returned when a sealed value fails authentication.
var ErrDecrypt = errors.New("secret box: decryption failed")

// SecretBox seals private key material at rest with XSalsa20-Poly1305.
// Sealed values are hex(nonce || box).
type SecretBox struct {
	key [secretKeySize]byte
}

// NewSecretBox parses a 32-byte hex secret key.
func NewSecretBox(secretKeyHex string) (*SecretBox, error) {
	raw, err := hex.DecodeString(secretKeyHex)
	if err != nil {
		return nil, fmt.Errorf("secret box key: %w", err)
	}
	if len(raw) != secretKeySize {
		return nil, fmt.Errorf("secret box key must be %d bytes, got %d", secretKeySize, len(raw))
	}
	sb := &SecretBox{}
	copy(sb.key[:], raw)
	return sb, nil
}

// GenerateSecretKey returns a fresh hex secret key for NewSecretBox.
func GenerateSecretKey() (string, error) {
	var k [secretKeySize]byte
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(k[:]), nil
}

// Seal encrypts plaintext under a random nonce.
func (s *SecretBox) Seal(plaintext []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secret box nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], plaintext, &nonce, &s.key)
	return hex.EncodeToString(out), nil
}

// Open decrypts a value produced by Seal.
func (s *SecretBox) Open(sealed string) ([]byte, error) {
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("secret box: %w", err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plain, nil
}
