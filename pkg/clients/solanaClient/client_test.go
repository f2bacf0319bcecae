package solanaClient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Layr-Labs/solana-signer-go/internal/keyGenerator/localKeyGenerator"
	"github.com/Layr-Labs/solana-signer-go/pkg/config"
	"github.com/Layr-Labs/solana-signer-go/pkg/instructions"
	"github.com/Layr-Labs/solana-signer-go/pkg/messageSigner/ed25519MessageSigner"
	"github.com/Layr-Labs/solana-signer-go/pkg/metrics"
	"github.com/Layr-Labs/solana-signer-go/pkg/server"
	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/testutil"
)

const (
	walletA  = testutil.WalletA
	walletB  = testutil.WalletB
	wsolMint = testutil.WrappedSOLMint
)

func setup(t *testing.T) *Client {
	t.Helper()
	cfg := config.NewDefaultServerConfig()
	cfg.RateLimit = 0
	require.NoError(t, cfg.Validate())

	l := testutil.NewTestLogger(t)
	s := server.NewServer(
		cfg,
		ed25519MessageSigner.NewEd25519MessageSigner(l),
		localKeyGenerator.NewLocalKeyGenerator(nil, l),
		instructions.NewBuilder(cfg.TokenProgramID, l),
		metrics.NewMetrics(),
		l,
	)
	ts := httptest.NewServer(s.GetHandler())
	t.Cleanup(ts.Close)

	c, err := NewClient(&ClientConfig{ServerURL: ts.URL + "/", Logger: l})
	require.NoError(t, err)
	return c
}

func Test_NewClient(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{Logger: zap.NewNop()})
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{ServerURL: "http://localhost:8080"})
	assert.Error(t, err)

	c, err := NewClient(&ClientConfig{ServerURL: "http://localhost:8080/", Logger: zap.NewNop()})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.serverURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func Test_ClientRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	kp, err := c.GenerateKeypair(ctx)
	require.NoError(t, err)

	signed, err := c.SignMessage(ctx, "gm", kp.Secret)
	require.NoError(t, err)
	assert.Equal(t, kp.Pubkey, signed.PublicKey)

	verified, err := c.VerifyMessage(ctx, "gm", signed.Signature, kp.Pubkey)
	require.NoError(t, err)
	assert.True(t, verified.Valid)

	verified, err = c.VerifyMessage(ctx, "gn", signed.Signature, kp.Pubkey)
	require.NoError(t, err)
	assert.False(t, verified.Valid)
}

func Test_ClientInstructions(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	t.Run("create token", func(t *testing.T) {
		ix, err := c.CreateToken(ctx, walletB, walletA, 9)
		require.NoError(t, err)
		assert.Len(t, ix.Accounts, 3)
		assert.Equal(t, testutil.InitializeMintWalletB9Data, ix.InstructionData)
	})

	t.Run("mint token", func(t *testing.T) {
		ix, err := c.MintToken(ctx, wsolMint, walletB, walletA, 500)
		require.NoError(t, err)
		assert.Equal(t, testutil.MintTo500Data, ix.InstructionData)
	})

	t.Run("send sol", func(t *testing.T) {
		ix, err := c.SendSol(ctx, walletA, walletB, 1000)
		require.NoError(t, err)
		assert.Equal(t, "11111111111111111111111111111111", ix.ProgramID)
		assert.Equal(t, testutil.SystemTransfer1000Data, ix.InstructionData)
	})

	t.Run("send token", func(t *testing.T) {
		ix, err := c.SendToken(ctx, walletB, wsolMint, walletA, 250)
		require.NoError(t, err)
		assert.Equal(t, testutil.Transfer250Data, ix.InstructionData)
	})
}

func Test_ClientErrors(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		_, err := c.SendSol(ctx, walletA, walletB, 0)
		require.Error(t, err)
		assert.Equal(t, serverError.KindValidation, serverError.KindOf(err))
		assert.Equal(t, "Invalid input: Amount must be greater than 0", err.Error())
	})

	t.Run("crypto", func(t *testing.T) {
		_, err := c.VerifyMessage(ctx, "gm", testutil.HelloSignature, testutil.OffCurveAddress)
		require.Error(t, err)
		assert.Equal(t, serverError.KindCrypto, serverError.KindOf(err))
	})

	t.Run("upstream failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"error":"Solana client error: connection refused"}`))
		}))
		defer ts.Close()

		bad, err := NewClient(&ClientConfig{ServerURL: ts.URL, Logger: zap.NewNop()})
		require.NoError(t, err)

		_, err = bad.GenerateKeypair(ctx)
		require.Error(t, err)
		assert.Equal(t, serverError.KindSolanaClient, serverError.KindOf(err))
		assert.Equal(t, "Solana client error: connection refused", err.Error())
	})

	t.Run("rate limited", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"error":"Too many requests"}`))
		}))
		defer ts.Close()

		limited, err := NewClient(&ClientConfig{ServerURL: ts.URL, Logger: zap.NewNop()})
		require.NoError(t, err)

		_, err = limited.GenerateKeypair(ctx)
		require.Error(t, err)
		assert.Equal(t, serverError.KindRateLimited, serverError.KindOf(err))
	})

	t.Run("non json error body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer ts.Close()

		bad, err := NewClient(&ClientConfig{ServerURL: ts.URL, Logger: zap.NewNop()})
		require.NoError(t, err)

		_, err = bad.SendSol(ctx, walletA, walletB, 1)
		require.Error(t, err)
		assert.Equal(t, serverError.KindInternal, serverError.KindOf(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.GenerateKeypair(cctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
