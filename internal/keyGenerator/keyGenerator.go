package keyGenerator

import (
	"context"

	"github.com/Layr-Labs/solana-signer-go/pkg/types"
	"github.com/Layr-Labs/solana-signer-go/pkg/util"
)

type GeneratedKeypair struct {
	PublicKey types.Address
	SecretKey types.SecretKey
}

func (gk *GeneratedKeypair) GetPublicKeyBase58() string {
	return gk.PublicKey.String()
}

// GetSecretKeyBase58 returns the full 64-byte keypair encoding, the format
// Solana wallets import.
func (gk *GeneratedKeypair) GetSecretKeyBase58() string {
	return util.EncodeBase58(gk.SecretKey[:])
}

// Zero wipes the secret half once it has been handed to the caller.
func (gk *GeneratedKeypair) Zero() {
	gk.SecretKey.Zero()
}

type IKeyGenerator interface {
	GenerateKeypair(ctx context.Context) (*GeneratedKeypair, error)
}
