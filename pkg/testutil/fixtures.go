// Package testutil holds shared fixtures for the signer's tests.
package testutil

// RFC 8032 test vector 1 expressed as a Solana keypair.
const (
	WalletASeedHex = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	WalletA        = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z"
	WalletASecret  = "49W385L4rePHy6PAaQUovbD2aacgN4HsKXSMeUzRg4fmwXszN91JuMFrQRj3vMDpZuRF3ZknQBuRBoWQJEfXstMw"

	// Signature by WalletA over HelloMessage
	HelloMessage   = "hello solana"
	HelloSignature = "Bqax/kQHeAho5KUMLPji4VR3AaceGZ4KXfRu3pYCpEX99kGL81itSJd4gOTo2OvNykEf+Fm4XMMmi7qKf080AA=="
)

const (
	// 32 bytes of 0x01, a valid curve point
	WalletB = "4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi"
	// y = 2 has no x on the curve
	OffCurveAddress = "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh"

	WrappedSOLMint = "So11111111111111111111111111111111111111112"
	WalletAATA     = "43QbFUJCc1TjAMeUYQnDmDejbwnKz7c9UtZzpMHxWgVx"
	WalletBATA     = "7i4VVk55NzhtekVjPg7EZzoSGznZYixPyd5cCeDxi7rW"
)

// Expected base64 instruction data for the fixture instructions.
const (
	InitializeMintWalletB9Data = "AAkBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQA="
	MintTo500Data              = "B/QBAAAAAAAA"
	Transfer250Data            = "A/oAAAAAAAAA"
	SystemTransfer1000Data     = "AgAAAOgDAAAAAAAA"
)
