package messageSigner

import "github.com/Layr-Labs/solana-signer-go/pkg/types"

type SignedMessage struct {
	Signature types.Signature // ed25519 signature over Message
	PublicKey types.Address   // signer, derived from the secret key
	Message   []byte          // exact bytes that were signed
}

type VerifiedMessage struct {
	Valid     bool
	PublicKey string // as supplied by the caller
	Message   []byte
}

// IMessageSigner signs and verifies raw messages. Secret keys are supplied per
// call and must not outlive it.
type IMessageSigner interface {
	SignMessage(secretKeyEncoded string, message []byte) (*SignedMessage, error)
	VerifyMessage(publicKeyEncoded string, message []byte, signatureEncoded string) (*VerifiedMessage, error)
}
