package types

import (
	"crypto/subtle"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	AddressLength   = solana.PublicKeyLength
	SeedLength      = 32
	SecretKeyLength = SeedLength + AddressLength // seed || public key
	SignatureLength = 64
)

// Address is a 32-byte account identifier; its text form is base58.
type Address = solana.PublicKey

// SecretKey is the 64-byte keypair encoding used by Solana wallets: the
// ed25519 seed followed by the public key derived from it.
type SecretKey [SecretKeyLength]byte

// NewSecretKey copies b into a SecretKey, rejecting any other length.
func NewSecretKey(b []byte) (SecretKey, error) {
	var k SecretKey
	if len(b) != SecretKeyLength {
		return k, errors.Errorf("invalid secret key length: expected %d bytes, got %d", SecretKeyLength, len(b))
	}
	copy(k[:], b)
	return k, nil
}

func (k *SecretKey) Seed() []byte {
	return k[:SeedLength]
}

// EmbeddedPublicKey is the public half stored in the encoding. It is not
// checked against the seed; see ed25519MessageSigner for that.
func (k *SecretKey) EmbeddedPublicKey() Address {
	var a Address
	copy(a[:], k[SeedLength:])
	return a
}

// Zero overwrites the key material in place.
func (k *SecretKey) Zero() {
	clear(k[:])
}

// Signature is a 64-byte ed25519 signature; its text form is base64.
type Signature [SignatureLength]byte

// NewSignature copies b into a Signature, rejecting any other length.
func NewSignature(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, errors.Errorf("invalid signature length: expected %d bytes, got %d", SignatureLength, len(b))
	}
	copy(s[:], b)
	return s, nil
}

func (s Signature) Equal(other Signature) bool {
	return subtle.ConstantTimeCompare(s[:], other[:]) == 1
}
