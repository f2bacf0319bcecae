package types

import (
	"maps"
	"slices"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Request fields are pointers so that an absent field can be told apart
// from a zero value. Validate reports every missing field at once.

type KeypairResponse struct {
	Pubkey string `json:"pubkey"`
	Secret string `json:"secret"`
}

type SignMessageRequest struct {
	Message *string `json:"message"`
	Secret  *string `json:"secret"`
}

func (r *SignMessageRequest) Validate() error {
	return requireFields(map[string]bool{
		"message": r.Message != nil,
		"secret":  r.Secret != nil,
	})
}

type SignMessageResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
}

type VerifyMessageRequest struct {
	Message   *string `json:"message"`
	Signature *string `json:"signature"`
	Pubkey    *string `json:"pubkey"`
}

func (r *VerifyMessageRequest) Validate() error {
	return requireFields(map[string]bool{
		"message":   r.Message != nil,
		"signature": r.Signature != nil,
		"pubkey":    r.Pubkey != nil,
	})
}

type VerifyMessageResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Pubkey  string `json:"pubkey"`
}

type CreateTokenRequest struct {
	MintAuthority *string `json:"mintAuthority"`
	Mint          *string `json:"mint"`
	Decimals      *uint8  `json:"decimals"`
}

func (r *CreateTokenRequest) Validate() error {
	return requireFields(map[string]bool{
		"mintAuthority": r.MintAuthority != nil,
		"mint":          r.Mint != nil,
		"decimals":      r.Decimals != nil,
	})
}

type MintTokenRequest struct {
	Mint        *string `json:"mint"`
	Destination *string `json:"destination"`
	Authority   *string `json:"authority"`
	Amount      *uint64 `json:"amount"`
}

func (r *MintTokenRequest) Validate() error {
	return requireFields(map[string]bool{
		"mint":        r.Mint != nil,
		"destination": r.Destination != nil,
		"authority":   r.Authority != nil,
		"amount":      r.Amount != nil,
	})
}

type SendSolRequest struct {
	From     *string `json:"from"`
	To       *string `json:"to"`
	Lamports *uint64 `json:"lamports"`
}

func (r *SendSolRequest) Validate() error {
	return requireFields(map[string]bool{
		"from":     r.From != nil,
		"to":       r.To != nil,
		"lamports": r.Lamports != nil,
	})
}

type SendTokenRequest struct {
	Destination *string `json:"destination"`
	Mint        *string `json:"mint"`
	Owner       *string `json:"owner"`
	Amount      *uint64 `json:"amount"`
}

func (r *SendTokenRequest) Validate() error {
	return requireFields(map[string]bool{
		"destination": r.Destination != nil,
		"mint":        r.Mint != nil,
		"owner":       r.Owner != nil,
		"amount":      r.Amount != nil,
	})
}

// AccountMeta is the wire form of one instruction account reference.
type AccountMeta struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type InstructionResponse struct {
	ProgramID       string        `json:"program_id"`
	Accounts        []AccountMeta `json:"accounts"`
	InstructionData string        `json:"instruction_data"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func requireFields(present map[string]bool) error {
	var allErrors field.ErrorList
	for _, name := range slices.Sorted(maps.Keys(present)) {
		if !present[name] {
			allErrors = append(allErrors, field.Required(field.NewPath(name), ""))
		}
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
