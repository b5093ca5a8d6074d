// Package dht holds the publishing side of the distributed hash table: the
// Publisher contract the identifier provider writes through, and the backends
// that implement it.
//
// Values are immutable items addressed by their BEP44 target, the SHA-1 of the
// bencoded value. Every backend computes the same target for the same bytes.
package dht

import (
	"context"
	"crypto/sha1" //nolint:gosec // BEP44 immutable targets are defined as SHA-1
	"encoding/hex"
	"errors"
	"strconv"
)

// MaxValueSize is the BEP44 limit on a stored value, in bytes.
const MaxValueSize = 1000

var (
	// ErrValueTooLarge is returned by Put for values over MaxValueSize.
	ErrValueTooLarge = errors.New("dht value exceeds 1000 bytes")
	// ErrReadUnsupported is returned by write-only backends from Get.
	ErrReadUnsupported = errors.New("dht backend does not support reads")
	// ErrTargetMismatch means a stored value does not hash to the key it was read under.
	ErrTargetMismatch = errors.New("dht value does not match its target")
)

// CommitHash is the hex-encoded target a value was stored under.
type CommitHash string

// Bytes returns the raw 20-byte target.
func (h CommitHash) Bytes() []byte {
	b, _ := hex.DecodeString(string(h))
	return b
}

func (h CommitHash) String() string {
	return string(h)
}

// Publisher stores and fetches immutable values. Put settles exactly once:
// either the value is stored and its target returned, or an error is.
// Retries and timeouts are the backend's concern.
type Publisher interface {
	Put(ctx context.Context, value []byte) (CommitHash, error)
	Get(ctx context.Context, key []byte) ([]byte, error)
}

// Target computes the BEP44 immutable target for value.
func Target(value []byte) CommitHash {
	h := sha1.New() //nolint:gosec
	h.Write([]byte(strconv.Itoa(len(value))))
	h.Write([]byte{':'})
	h.Write(value)
	return CommitHash(hex.EncodeToString(h.Sum(nil)))
}

func checkValue(value []byte) error {
	if len(value) > MaxValueSize {
		return ErrValueTooLarge
	}
	return nil
}

func verifyTarget(key, value []byte) error {
	if Target(value) != CommitHash(hex.EncodeToString(key)) {
		return ErrTargetMismatch
	}
	return nil
}
