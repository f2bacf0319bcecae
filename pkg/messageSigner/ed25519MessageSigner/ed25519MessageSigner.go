package ed25519MessageSigner

import (
	"bytes"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/ed25519"

	"github.com/Layr-Labs/solana-signer-go/pkg/messageSigner"
	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/types"
	"github.com/Layr-Labs/solana-signer-go/pkg/util"
)

type Ed25519MessageSigner struct {
	logger *zap.Logger
}

var _ messageSigner.IMessageSigner = (*Ed25519MessageSigner)(nil)

func NewEd25519MessageSigner(logger *zap.Logger) *Ed25519MessageSigner {
	return &Ed25519MessageSigner{
		logger: logger,
	}
}

// SignMessage signs the raw message bytes with the base58 encoded 64-byte
// keypair. The decoded secret is wiped before returning.
func (s *Ed25519MessageSigner) SignMessage(secretKeyEncoded string, message []byte) (*messageSigner.SignedMessage, error) {
	secretBytes, err := util.DecodeBase58(secretKeyEncoded)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid secret key format")
	}
	defer clear(secretBytes)

	secretKey, err := types.NewSecretKey(secretBytes)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid secret key length")
	}
	defer secretKey.Zero()

	privateKey, err := keypairFromSecretKey(&secretKey)
	if err != nil {
		return nil, serverError.NewCryptoError(err)
	}
	defer clear(privateKey)

	sig, err := types.NewSignature(ed25519.Sign(privateKey, message))
	if err != nil {
		return nil, serverError.NewInternalError(err)
	}

	publicKey := secretKey.EmbeddedPublicKey()
	s.logger.Sugar().Debugw("Signed message",
		"public_key", publicKey.String(),
		"message_len", len(message),
	)

	return &messageSigner.SignedMessage{
		Signature: sig,
		PublicKey: publicKey,
		Message:   message,
	}, nil
}

// VerifyMessage checks signatureEncoded against the message under the given
// public key. A signature that does not verify is reported as Valid=false;
// errors are reserved for inputs that cannot be decoded or reconstructed.
func (s *Ed25519MessageSigner) VerifyMessage(publicKeyEncoded string, message []byte, signatureEncoded string) (*messageSigner.VerifiedMessage, error) {
	pubkeyBytes, err := util.DecodeBase58(publicKeyEncoded)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid public key format")
	}

	sigBytes, err := util.DecodeBase64(signatureEncoded)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid signature format")
	}
	sig, err := types.NewSignature(sigBytes)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid signature length")
	}

	publicKey, err := parsePublicKey(pubkeyBytes)
	if err != nil {
		return nil, serverError.NewCryptoError(err)
	}

	valid := ed25519.Verify(publicKey, message, sig[:])

	s.logger.Sugar().Debugw("Verified message",
		"public_key", publicKeyEncoded,
		"message_len", len(message),
		"valid", valid,
	)

	return &messageSigner.VerifiedMessage{
		Valid:     valid,
		PublicKey: publicKeyEncoded,
		Message:   message,
	}, nil
}

// keypairFromSecretKey rebuilds the ed25519 private key from the seed and
// checks that the embedded public key is a curve point matching that seed.
func keypairFromSecretKey(secretKey *types.SecretKey) (ed25519.PrivateKey, error) {
	embedded := secretKey.EmbeddedPublicKey()
	if !util.IsOnCurve(embedded[:]) {
		return nil, errors.New("public key is not a valid curve point")
	}

	privateKey := ed25519.NewKeyFromSeed(secretKey.Seed())
	derived := privateKey.Public().(ed25519.PublicKey)
	if !bytes.Equal(derived, embedded[:]) {
		clear(privateKey)
		return nil, errors.New("public key does not match the secret seed")
	}
	return privateKey, nil
}

func parsePublicKey(b []byte) (ed25519.PublicKey, error) {
	if len(b) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid public key length: expected %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	if !util.IsOnCurve(b) {
		return nil, errors.New("public key is not a valid curve point")
	}
	return ed25519.PublicKey(b), nil
}
