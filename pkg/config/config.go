package config

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the signer server configuration
const (
	EnvSignerPort            = "SOLANA_SIGNER_PORT"
	EnvSignerVerbose         = "SOLANA_SIGNER_VERBOSE"
	EnvSignerRateLimit       = "SOLANA_SIGNER_RATE_LIMIT"
	EnvSignerRateLimitBurst  = "SOLANA_SIGNER_RATE_LIMIT_BURST"
	EnvSignerMaxBodyBytes    = "SOLANA_SIGNER_MAX_BODY_BYTES"
	EnvSignerTokenProgram    = "SOLANA_SIGNER_TOKEN_PROGRAM"
	EnvSignerShutdownTimeout = "SOLANA_SIGNER_SHUTDOWN_TIMEOUT"
	EnvSignerEnvFile         = "SOLANA_SIGNER_ENV_FILE"
)

const (
	DefaultPort            = 8080
	DefaultRateLimit       = 50
	DefaultRateLimitBurst  = 100
	DefaultMaxBodyBytes    = 64 * 1024
	DefaultShutdownTimeout = 10 * time.Second
)

type TokenProgram string

const (
	TokenProgramSPL       TokenProgram = "spl-token"
	TokenProgramToken2022 TokenProgram = "token-2022"
)

var Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

var tokenProgramIDs = map[TokenProgram]solana.PublicKey{
	TokenProgramSPL:       solana.TokenProgramID,
	TokenProgramToken2022: Token2022ProgramID,
}

// GetTokenProgramID resolves a named token program or a raw base58 program id.
func GetTokenProgramID(program TokenProgram) (solana.PublicKey, error) {
	if id, ok := tokenProgramIDs[program]; ok {
		return id, nil
	}
	id, err := solana.PublicKeyFromBase58(string(program))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unknown token program %q: %w", program, err)
	}
	return id, nil
}

// ServerConfig represents the complete configuration for the signer server
type ServerConfig struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`

	// Per client token bucket; RateLimit 0 disables limiting
	RateLimit      int `json:"rate_limit"`
	RateLimitBurst int `json:"rate_limit_burst"`

	MaxBodyBytes    int64         `json:"max_body_bytes"`
	TokenProgram    TokenProgram  `json:"token_program"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Populated by Validate
	TokenProgramID solana.PublicKey `json:"-"`
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            DefaultPort,
		RateLimit:       DefaultRateLimit,
		RateLimitBurst:  DefaultRateLimitBurst,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		TokenProgram:    TokenProgramSPL,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Validate validates the server configuration and resolves the token program id
func (c *ServerConfig) Validate() error {
	var allErrors field.ErrorList

	if c.Port < 1 || c.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), c.Port, "must be between 1-65535"))
	}
	if c.RateLimit < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateLimit"), c.RateLimit, "must not be negative"))
	}
	if c.RateLimit > 0 && c.RateLimitBurst < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateLimitBurst"), c.RateLimitBurst, "must be at least 1 when rate limiting is enabled"))
	}
	if c.MaxBodyBytes <= 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("maxBodyBytes"), c.MaxBodyBytes, "must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("shutdownTimeout"), c.ShutdownTimeout.String(), "must be positive"))
	}

	if c.TokenProgram == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("tokenProgram"), "tokenProgram is required"))
	} else {
		id, err := GetTokenProgramID(c.TokenProgram)
		if err != nil {
			allErrors = append(allErrors, field.Invalid(field.NewPath("tokenProgram"), c.TokenProgram, err.Error()))
		} else {
			c.TokenProgramID = id
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// GetSupportedTokenProgramsString lists the named token programs for CLI help
func GetSupportedTokenProgramsString() string {
	return fmt.Sprintf("%s, %s or a base58 program id", TokenProgramSPL, TokenProgramToken2022)
}
