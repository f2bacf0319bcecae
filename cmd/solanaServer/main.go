package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/solana-signer-go/internal/keyGenerator/localKeyGenerator"
	"github.com/Layr-Labs/solana-signer-go/pkg/config"
	"github.com/Layr-Labs/solana-signer-go/pkg/instructions"
	"github.com/Layr-Labs/solana-signer-go/pkg/logger"
	"github.com/Layr-Labs/solana-signer-go/pkg/messageSigner/ed25519MessageSigner"
	"github.com/Layr-Labs/solana-signer-go/pkg/metrics"
	"github.com/Layr-Labs/solana-signer-go/pkg/server"
)

func main() {
	// Flag EnvVars are resolved while parsing, so the env file must be loaded first
	if err := loadEnvFile(os.Getenv(config.EnvSignerEnvFile)); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}

	app := &cli.App{
		Name:  "solana-server",
		Usage: "Solana keypair, signing and instruction building server",
		Description: `An HTTP service for Solana key material and instructions.

This server can:
- Generate ed25519 keypairs
- Sign and verify arbitrary messages
- Build unsigned SPL Token and System program instructions

It never contacts a Solana cluster; callers assemble, sign and submit
transactions themselves.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvSignerPort},
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Value:   config.DefaultRateLimit,
				Usage:   "Requests per second allowed per client address (0 disables)",
				EnvVars: []string{config.EnvSignerRateLimit},
			},
			&cli.IntFlag{
				Name:    "rate-limit-burst",
				Value:   config.DefaultRateLimitBurst,
				Usage:   "Burst size of the per client rate limiter",
				EnvVars: []string{config.EnvSignerRateLimitBurst},
			},
			&cli.Int64Flag{
				Name:    "max-body-bytes",
				Value:   config.DefaultMaxBodyBytes,
				Usage:   "Maximum accepted request body size",
				EnvVars: []string{config.EnvSignerMaxBodyBytes},
			},
			&cli.StringFlag{
				Name:    "token-program",
				Value:   string(config.TokenProgramSPL),
				Usage:   fmt.Sprintf("Token program for token instructions: %s", config.GetSupportedTokenProgramsString()),
				EnvVars: []string{config.EnvSignerTokenProgram},
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Value:   config.DefaultShutdownTimeout,
				Usage:   "Time allowed for in-flight requests on shutdown",
				EnvVars: []string{config.EnvSignerShutdownTimeout},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvSignerVerbose},
			},
		},
		Action: runSignerServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
// Variables already present in the environment take precedence.
func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func runSignerServer(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("verbose"),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	serverConfig := parseServerConfig(c)
	if err := serverConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l.Sugar().Infow("Signer server configuration",
		"port", serverConfig.Port,
		"rate_limit", serverConfig.RateLimit,
		"rate_limit_burst", serverConfig.RateLimitBurst,
		"max_body_bytes", serverConfig.MaxBodyBytes,
		"token_program", serverConfig.TokenProgramID.String(),
	)

	m := metrics.NewMetrics()
	s := server.NewServer(
		serverConfig,
		ed25519MessageSigner.NewEd25519MessageSigner(l),
		localKeyGenerator.NewLocalKeyGenerator(nil, l),
		instructions.NewBuilder(serverConfig.TokenProgramID, l),
		m,
		l,
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	select {
	case <-ctx.Done():
		l.Sugar().Infow("Received shutdown signal")
	case err := <-s.Errors():
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	l.Sugar().Infow("Server stopped")
	return nil
}

func parseServerConfig(c *cli.Context) *config.ServerConfig {
	return &config.ServerConfig{
		Port:            c.Int("port"),
		Verbose:         c.Bool("verbose"),
		RateLimit:       c.Int("rate-limit"),
		RateLimitBurst:  c.Int("rate-limit-burst"),
		MaxBodyBytes:    c.Int64("max-body-bytes"),
		TokenProgram:    config.TokenProgram(c.String("token-program")),
		ShutdownTimeout: c.Duration("shutdown-timeout"),
	}
}
