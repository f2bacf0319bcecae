package solanaClient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/types"
)

const DefaultTimeout = 30 * time.Second

// ClientConfig holds the configuration for the signer client
type ClientConfig struct {
	ServerURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is a thin typed wrapper over the signer server's HTTP API. Errors
// reported by the server come back as *serverError.ServerError with the kind
// recovered from the response.
type Client struct {
	serverURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if config.ServerURL == "" {
		return nil, errors.New("server URL is required")
	}
	if config.Logger == nil {
		return nil, errors.New("logger is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		serverURL:  strings.TrimRight(config.ServerURL, "/"),
		httpClient: httpClient,
		logger:     config.Logger,
	}, nil
}

func (c *Client) GenerateKeypair(ctx context.Context) (*types.KeypairResponse, error) {
	return post[types.KeypairResponse](ctx, c, "/keypair", nil)
}

func (c *Client) SignMessage(ctx context.Context, message, secret string) (*types.SignMessageResponse, error) {
	return post[types.SignMessageResponse](ctx, c, "/message/sign", &types.SignMessageRequest{
		Message: &message,
		Secret:  &secret,
	})
}

func (c *Client) VerifyMessage(ctx context.Context, message, signature, pubkey string) (*types.VerifyMessageResponse, error) {
	return post[types.VerifyMessageResponse](ctx, c, "/message/verify", &types.VerifyMessageRequest{
		Message:   &message,
		Signature: &signature,
		Pubkey:    &pubkey,
	})
}

func (c *Client) CreateToken(ctx context.Context, mintAuthority, mint string, decimals uint8) (*types.InstructionResponse, error) {
	return post[types.InstructionResponse](ctx, c, "/token/create", &types.CreateTokenRequest{
		MintAuthority: &mintAuthority,
		Mint:          &mint,
		Decimals:      &decimals,
	})
}

func (c *Client) MintToken(ctx context.Context, mint, destination, authority string, amount uint64) (*types.InstructionResponse, error) {
	return post[types.InstructionResponse](ctx, c, "/token/mint", &types.MintTokenRequest{
		Mint:        &mint,
		Destination: &destination,
		Authority:   &authority,
		Amount:      &amount,
	})
}

func (c *Client) SendSol(ctx context.Context, from, to string, lamports uint64) (*types.InstructionResponse, error) {
	return post[types.InstructionResponse](ctx, c, "/send/sol", &types.SendSolRequest{
		From:     &from,
		To:       &to,
		Lamports: &lamports,
	})
}

func (c *Client) SendToken(ctx context.Context, destination, mint, owner string, amount uint64) (*types.InstructionResponse, error) {
	return post[types.InstructionResponse](ctx, c, "/send/token", &types.SendTokenRequest{
		Destination: &destination,
		Mint:        &mint,
		Owner:       &owner,
		Amount:      &amount,
	})
}

func (c *Client) Health(ctx context.Context) (*types.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/health", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	return do[types.HealthResponse](c, req)
}

func post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return do[T](c, req)
}

func do[T any](c *Client, req *http.Request) (*T, error) {
	c.logger.Sugar().Debugw("Sending request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", req.URL.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	var envelope types.ApiResponse[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, serverError.Parse(resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if !envelope.Success || resp.StatusCode != http.StatusOK {
		message := http.StatusText(resp.StatusCode)
		if envelope.Error != nil {
			message = *envelope.Error
		}
		c.logger.Sugar().Debugw("Request rejected",
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"error", message,
		)
		return nil, serverError.Parse(resp.StatusCode, message)
	}
	if envelope.Data == nil {
		return nil, errors.Errorf("response from %s has no data", req.URL.Path)
	}
	return envelope.Data, nil
}
