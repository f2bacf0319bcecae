package instructions

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/solana-signer-go/pkg/config"
	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/util"
)

// Token program instruction tags (single byte) and the system program's
// transfer discriminant (u32 little endian).
const (
	tokenInstructionInitializeMint uint8 = 0
	tokenInstructionTransfer       uint8 = 3
	tokenInstructionMintTo         uint8 = 7

	systemInstructionTransfer uint32 = 2
)

var ErrIncorrectProgramID = errors.New("incorrect program id for instruction")

type Builder struct {
	tokenProgramID solana.PublicKey
	logger         *zap.Logger
}

// NewBuilder targets tokenProgramID for token instructions. The id is used as
// given; the zero key is the system program and is rejected by token builders.
func NewBuilder(tokenProgramID solana.PublicKey, logger *zap.Logger) *Builder {
	return &Builder{
		tokenProgramID: tokenProgramID,
		logger:         logger,
	}
}

func (b *Builder) TokenProgramID() solana.PublicKey {
	return b.tokenProgramID
}

// InitializeMint builds the token program's InitializeMint with no freeze
// authority. The mint authority is also listed as a trailing read-only
// account; the program only consumes the first two.
func (b *Builder) InitializeMint(mintAuthority, mint string, decimals uint8) (*Instruction, error) {
	authorityKey, err := util.ParseAddress(mintAuthority)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid mint authority pubkey")
	}
	mintKey, err := util.ParseAddress(mint)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid mint pubkey")
	}
	if err := b.checkTokenProgram(); err != nil {
		return nil, err
	}

	ix, err := build(
		b.tokenProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(mintKey, true, false),
			solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
			solana.NewAccountMeta(authorityKey, false, false),
		},
		func(enc *bin.Encoder) error {
			if err := enc.WriteUint8(tokenInstructionInitializeMint); err != nil {
				return err
			}
			if err := enc.WriteUint8(decimals); err != nil {
				return err
			}
			if err := enc.WriteBytes(authorityKey[:], false); err != nil {
				return err
			}
			// COption::None for the freeze authority
			return enc.WriteUint8(0)
		},
	)
	if err != nil {
		return nil, err
	}
	b.logBuilt("initialize_mint", ix)
	return ix, nil
}

// MintTo builds the token program's MintTo. A zero amount is passed through;
// the token program accepts it as a no-op.
func (b *Builder) MintTo(mint, destination, authority string, amount uint64) (*Instruction, error) {
	mintKey, err := util.ParseAddress(mint)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid mint address")
	}
	destinationKey, err := util.ParseAddress(destination)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid destination address")
	}
	authorityKey, err := util.ParseAddress(authority)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid authority address")
	}
	if err := b.checkTokenProgram(); err != nil {
		return nil, err
	}

	ix, err := build(
		b.tokenProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(mintKey, true, false),
			solana.NewAccountMeta(destinationKey, true, false),
			solana.NewAccountMeta(authorityKey, false, true),
		},
		encodeTokenAmount(tokenInstructionMintTo, amount),
	)
	if err != nil {
		return nil, err
	}
	b.logBuilt("mint_to", ix)
	return ix, nil
}

// TransferTokens builds a token Transfer between the associated token
// accounts of owner and destination for mint. The accounts are derived, not
// looked up: whether they exist on chain is the caller's concern.
func (b *Builder) TransferTokens(destination, mint, owner string, amount uint64) (*Instruction, error) {
	destinationKey, err := util.ParseAddress(destination)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid destination address")
	}
	mintKey, err := util.ParseAddress(mint)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid mint address")
	}
	ownerKey, err := util.ParseAddress(owner)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid owner address")
	}
	if amount == 0 {
		return nil, serverError.NewValidationError("Amount must be greater than 0")
	}

	if err := b.checkTokenProgram(); err != nil {
		return nil, err
	}

	ownerATA, err := FindAssociatedTokenAddress(ownerKey, mintKey, b.tokenProgramID)
	if err != nil {
		return nil, serverError.NewInternalError(err)
	}
	destinationATA, err := FindAssociatedTokenAddress(destinationKey, mintKey, b.tokenProgramID)
	if err != nil {
		return nil, serverError.NewInternalError(err)
	}

	ix, err := build(
		b.tokenProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(ownerATA, true, false),
			solana.NewAccountMeta(destinationATA, true, false),
			solana.NewAccountMeta(ownerKey, false, true),
		},
		encodeTokenAmount(tokenInstructionTransfer, amount),
	)
	if err != nil {
		return nil, err
	}
	b.logBuilt("transfer_tokens", ix)
	return ix, nil
}

// TransferNative builds a system program lamport transfer.
func (b *Builder) TransferNative(from, to string, lamports uint64) (*Instruction, error) {
	fromKey, err := util.ParseAddress(from)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid sender address")
	}
	toKey, err := util.ParseAddress(to)
	if err != nil {
		return nil, serverError.NewValidationError("Invalid recipient address")
	}
	if lamports == 0 {
		return nil, serverError.NewValidationError("Amount must be greater than 0")
	}

	ix, err := build(
		solana.SystemProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(fromKey, true, true),
			solana.NewAccountMeta(toKey, true, false),
		},
		func(enc *bin.Encoder) error {
			if err := enc.WriteUint32(systemInstructionTransfer, binary.LittleEndian); err != nil {
				return err
			}
			return enc.WriteUint64(lamports, binary.LittleEndian)
		},
	)
	if err != nil {
		return nil, err
	}
	b.logBuilt("transfer_native", ix)
	return ix, nil
}

// FindAssociatedTokenAddress derives the associated token account of wallet
// for mint under tokenProgramID. Pure computation, no RPC.
func FindAssociatedTokenAddress(wallet, mint, tokenProgramID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{wallet[:], tokenProgramID[:], mint[:]},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "failed to derive associated token address")
	}
	return addr, nil
}

func encodeTokenAmount(tag uint8, amount uint64) dataEncoder {
	return func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(tag); err != nil {
			return err
		}
		return enc.WriteUint64(amount, binary.LittleEndian)
	}
}

func (b *Builder) checkTokenProgram() error {
	if b.tokenProgramID.Equals(solana.TokenProgramID) || b.tokenProgramID.Equals(config.Token2022ProgramID) {
		return nil
	}
	return serverError.NewTokenError(ErrIncorrectProgramID)
}

func (b *Builder) logBuilt(kind string, ix *Instruction) {
	b.logger.Sugar().Debugw("Built instruction",
		"kind", kind,
		"program_id", ix.programID.String(),
		"accounts", len(ix.accounts),
		"data_len", len(ix.data),
	)
}
