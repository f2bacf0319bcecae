package instructions

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/types"
	"github.com/Layr-Labs/solana-signer-go/pkg/util"
)

// Instruction is an unsigned, program-addressed instruction. Account order is
// the program's ABI and must not be rearranged. It satisfies
// solana.Instruction so callers can feed it to solana.NewTransaction.
type Instruction struct {
	programID solana.PublicKey
	accounts  solana.AccountMetaSlice
	data      []byte
}

var _ solana.Instruction = (*Instruction)(nil)

func (i *Instruction) ProgramID() solana.PublicKey {
	return i.programID
}

func (i *Instruction) Accounts() []*solana.AccountMeta {
	return i.accounts
}

func (i *Instruction) Data() ([]byte, error) {
	return i.data, nil
}

// ToResponse renders the instruction for transport, data base64 encoded.
func (i *Instruction) ToResponse() *types.InstructionResponse {
	accounts := make([]types.AccountMeta, 0, len(i.accounts))
	for _, acc := range i.accounts {
		accounts = append(accounts, types.AccountMeta{
			Pubkey:     acc.PublicKey.String(),
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		})
	}
	return &types.InstructionResponse{
		ProgramID:       i.programID.String(),
		Accounts:        accounts,
		InstructionData: util.EncodeBase64(i.data),
	}
}

// dataEncoder writes one instruction's data layout.
type dataEncoder func(enc *bin.Encoder) error

// build is the single construction path shared by every builder.
func build(programID solana.PublicKey, accounts solana.AccountMetaSlice, encode dataEncoder) (*Instruction, error) {
	buf := new(bytes.Buffer)
	if err := encode(bin.NewBinEncoder(buf)); err != nil {
		return nil, serverError.NewInternalError(errors.Wrap(err, "failed to encode instruction data"))
	}
	return &Instruction{
		programID: programID,
		accounts:  accounts,
		data:      buf.Bytes(),
	}, nil
}
