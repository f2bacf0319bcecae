package localKeyGenerator

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/ed25519"

	"github.com/Layr-Labs/solana-signer-go/internal/keyGenerator"
	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/types"
)

// LocalKeyGenerator creates ed25519 keypairs from an injected entropy source.
// Nothing is retained between calls.
type LocalKeyGenerator struct {
	logger *zap.Logger
	rand   io.Reader
}

var _ keyGenerator.IKeyGenerator = (*LocalKeyGenerator)(nil)

// NewLocalKeyGenerator uses crypto/rand when entropy is nil.
func NewLocalKeyGenerator(entropy io.Reader, logger *zap.Logger) *LocalKeyGenerator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &LocalKeyGenerator{
		logger: logger,
		rand:   entropy,
	}
}

func (l *LocalKeyGenerator) GenerateKeypair(ctx context.Context) (*keyGenerator.GeneratedKeypair, error) {
	if err := ctx.Err(); err != nil {
		return nil, serverError.NewInternalError(err)
	}

	seed := make([]byte, ed25519.SeedSize)
	defer clear(seed)
	if _, err := io.ReadFull(l.rand, seed); err != nil {
		l.logger.Sugar().Errorw("Failed to read entropy for keypair", "error", err)
		return nil, serverError.NewInternalError(errors.Wrap(err, "failed to read ed25519 seed"))
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	defer clear(privateKey)
	publicKey := privateKey.Public().(ed25519.PublicKey)

	secretKey, err := types.NewSecretKey(privateKey)
	if err != nil {
		return nil, serverError.NewInternalError(err)
	}

	var address types.Address
	copy(address[:], publicKey)

	l.logger.Sugar().Debugw("Generated keypair", "public_key", address.String())

	return &keyGenerator.GeneratedKeypair{
		PublicKey: address,
		SecretKey: secretKey,
	}, nil
}
