package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Layr-Labs/solana-signer-go/internal/keyGenerator"
	"github.com/Layr-Labs/solana-signer-go/pkg/config"
	"github.com/Layr-Labs/solana-signer-go/pkg/instructions"
	"github.com/Layr-Labs/solana-signer-go/pkg/messageSigner"
	"github.com/Layr-Labs/solana-signer-go/pkg/metrics"
	"github.com/Layr-Labs/solana-signer-go/pkg/middleware"
)

/*
Server exposes the signer over HTTP. Every route answers with the
ApiResponse envelope: {success, data} on success, {success, error} otherwise.

  POST /keypair          fresh ed25519 keypair, base58 pubkey and 64-byte secret
  POST /message/sign     {message, secret} -> base64 signature
  POST /message/verify   {message, signature, pubkey} -> valid
  POST /token/create     {mintAuthority, mint, decimals} -> InitializeMint
  POST /token/mint       {mint, destination, authority, amount} -> MintTo
  POST /send/sol         {from, to, lamports} -> system Transfer
  POST /send/token       {destination, mint, owner, amount} -> token Transfer
  GET  /health
  GET  /metrics          prometheus exposition

Instructions are returned unsigned; nothing is submitted to a cluster.
*/
type Server struct {
	config     *config.ServerConfig
	signer     messageSigner.IMessageSigner
	keyGen     keyGenerator.IKeyGenerator
	builder    *instructions.Builder
	metrics    *metrics.Metrics
	limiter    *middleware.RateLimiter
	logger     *zap.Logger
	httpServer *http.Server
	listener   net.Listener
	errCh      chan error
}

func NewServer(
	cfg *config.ServerConfig,
	signer messageSigner.IMessageSigner,
	keyGen keyGenerator.IKeyGenerator,
	builder *instructions.Builder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	s := &Server{
		config:  cfg,
		signer:  signer,
		keyGen:  keyGen,
		builder: builder,
		metrics: m,
		logger:  logger,
		errCh:   make(chan error, 1),
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.Metrics(m))
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitBurst, m, logger)
		router.Use(s.limiter.Handler)
	}
	router.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	router.HandleFunc("/keypair", s.handleGenerateKeypair).Methods(http.MethodPost)

	router.HandleFunc("/message/sign", s.handleSignMessage).Methods(http.MethodPost)
	router.HandleFunc("/message/verify", s.handleVerifyMessage).Methods(http.MethodPost)

	router.HandleFunc("/token/create", s.handleCreateToken).Methods(http.MethodPost)
	router.HandleFunc("/token/mint", s.handleMintToken).Methods(http.MethodPost)

	router.HandleFunc("/send/sol", s.handleSendSol).Methods(http.MethodPost)
	router.HandleFunc("/send/token", s.handleSendToken).Methods(http.MethodPost)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start binds the listener and serves in the background. Bind failures are
// returned directly; failures while serving are delivered on Errors. ctx
// bounds the rate limiter janitor only; use Shutdown to stop serving.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener

	if s.limiter != nil {
		s.limiter.StartCleanup(ctx, time.Minute)
	}
	go func() {
		s.logger.Sugar().Infow("Starting HTTP server",
			"address", listener.Addr().String(),
			"token_program", s.builder.TokenProgramID().String(),
		)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
			s.errCh <- err
		}
		close(s.errCh)
	}()
	return nil
}

// Errors yields at most one error if serving fails, and is closed once the
// server stops.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Addr is the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Sugar().Infow("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
