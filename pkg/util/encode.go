package util

import (
	"encoding/base64"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/solana-signer-go/pkg/types"
)

func EncodeBase58(b []byte) string {
	return base58.Encode(b)
}

func DecodeBase58(str string) ([]byte, error) {
	b, err := base58.Decode(str)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base58")
	}
	return b, nil
}

func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeBase64(str string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64")
	}
	return b, nil
}

// ParseAddress decodes a base58 address that must be exactly 32 bytes.
// Off-curve values are accepted: program derived addresses live there.
func ParseAddress(str string) (types.Address, error) {
	addr, err := solana.PublicKeyFromBase58(str)
	if err != nil {
		return types.Address{}, errors.Wrapf(err, "invalid address %q", str)
	}
	return addr, nil
}

// ParseSignature decodes a base64 signature that must be exactly 64 bytes.
func ParseSignature(str string) (types.Signature, error) {
	b, err := DecodeBase64(str)
	if err != nil {
		return types.Signature{}, err
	}
	return types.NewSignature(b)
}

// IsOnCurve reports whether b is the encoding of a point on edwards25519.
func IsOnCurve(b []byte) bool {
	if len(b) != types.AddressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
