package config

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ServerConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := NewDefaultServerConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, solana.TokenProgramID, cfg.TokenProgramID)
	})

	t.Run("resolves token-2022", func(t *testing.T) {
		cfg := NewDefaultServerConfig()
		cfg.TokenProgram = TokenProgramToken2022
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb", cfg.TokenProgramID.String())
	})

	t.Run("accepts a raw program id", func(t *testing.T) {
		cfg := NewDefaultServerConfig()
		cfg.TokenProgram = TokenProgram(solana.TokenProgramID.String())
		require.NoError(t, cfg.Validate())
		assert.Equal(t, solana.TokenProgramID, cfg.TokenProgramID)
	})

	t.Run("aggregates every problem", func(t *testing.T) {
		cfg := &ServerConfig{
			Port:            70000,
			RateLimit:       5,
			RateLimitBurst:  0,
			MaxBodyBytes:    0,
			TokenProgram:    "not-a-program",
			ShutdownTimeout: time.Second,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
		assert.Contains(t, err.Error(), "rateLimitBurst")
		assert.Contains(t, err.Error(), "maxBodyBytes")
		assert.Contains(t, err.Error(), "tokenProgram")
		assert.NotContains(t, err.Error(), "shutdownTimeout")
	})

	t.Run("rate limiting can be disabled", func(t *testing.T) {
		cfg := NewDefaultServerConfig()
		cfg.RateLimit = 0
		cfg.RateLimitBurst = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("token program is required", func(t *testing.T) {
		cfg := NewDefaultServerConfig()
		cfg.TokenProgram = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tokenProgram")
	})
}
