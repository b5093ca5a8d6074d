// Package didht derives did:dht identifiers and their DNS-style resolution
// records from an Ed25519 public key.
//
// The identifier segment is the z-base-32 encoding of the raw public key, so
// every value produced here is a pure function of the key bytes.
package didht

import (
	"crypto/ed25519"
	"encoding/base32"
	"fmt"
	"strings"
)

// Method is the DID method prefix, including the trailing colon.
const Method = "did:dht:"

// zbase32 omits 0, 2, l and v. Bytes are packed MSB first like RFC 4648, so
// the standard codec with a swapped alphabet produces the same output.
var zbase32 = base32.NewEncoding("ybndrfg8ejkmcpqxot1uwisza345h769").WithPadding(base32.NoPadding)

// EncodeKey returns the lowercase z-base-32 encoding of pub.
func EncodeKey(pub []byte) string {
	return zbase32.EncodeToString(pub)
}

// DecodeKey reverses EncodeKey. Input is case-insensitive but must be the
// canonical encoding: unused trailing bits have to be zero, so every key
// has exactly one identifier.
func DecodeKey(s string) ([]byte, error) {
	lower := strings.ToLower(s)
	b, err := zbase32.DecodeString(lower)
	if err != nil {
		return nil, fmt.Errorf("decode z-base-32 identifier: %w", err)
	}
	if EncodeKey(b) != lower {
		return nil, fmt.Errorf("non-canonical z-base-32 identifier: %q", s)
	}
	return b, nil
}

// DID builds the did:dht identifier for pub.
func DID(pub []byte) string {
	return Method + EncodeKey(pub)
}

// ParseDID extracts the public key bytes from a did:dht identifier.
// It rejects anything that does not decode to an Ed25519 public key.
func ParseDID(did string) ([]byte, error) {
	if len(did) < len(Method) || !strings.EqualFold(did[:len(Method)], Method) {
		return nil, fmt.Errorf("not a did:dht identifier: %q", did)
	}
	suffix := did[len(Method):]
	if suffix == "" || strings.Contains(suffix, ":") {
		return nil, fmt.Errorf("malformed did:dht identifier: %q", did)
	}
	pub, err := DecodeKey(suffix)
	if err != nil {
		return nil, err
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("did:dht identifier encodes %d bytes, want %d", len(pub), ed25519.PublicKeySize)
	}
	return pub, nil
}
