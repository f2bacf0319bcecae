package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/solana-signer-go/pkg/clients/solanaClient"
	"github.com/Layr-Labs/solana-signer-go/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "solana-client",
		Usage: "Client for the Solana signer server",
		Description: `Calls a running solana-server and prints the JSON result.

Instructions come back unsigned; assemble and submit them with your wallet tooling.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server-url",
				Aliases: []string{"s"},
				Usage:   "Signer server base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"SOLANA_SIGNER_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: solanaClient.DefaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "keypair",
				Usage:  "Generate a new keypair",
				Action: keypairCommand,
			},
			{
				Name:  "sign",
				Usage: "Sign a message with a base58 secret key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Usage: "Message to sign", Required: true},
					&cli.StringFlag{Name: "secret", Usage: "Base58 encoded 64-byte secret key", Required: true, EnvVars: []string{"SOLANA_SIGNER_SECRET"}},
				},
				Action: signCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify a base64 signature over a message",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Usage: "Signed message", Required: true},
					&cli.StringFlag{Name: "signature", Usage: "Base64 encoded signature", Required: true},
					&cli.StringFlag{Name: "pubkey", Usage: "Base58 encoded public key", Required: true},
				},
				Action: verifyCommand,
			},
			{
				Name:  "create-token",
				Usage: "Build an InitializeMint instruction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mint-authority", Usage: "Mint authority address", Required: true},
					&cli.StringFlag{Name: "mint", Usage: "Mint account address", Required: true},
					&cli.UintFlag{Name: "decimals", Usage: "Token decimals (0-255)", Value: 9},
				},
				Action: createTokenCommand,
			},
			{
				Name:  "mint-token",
				Usage: "Build a MintTo instruction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mint", Usage: "Mint account address", Required: true},
					&cli.StringFlag{Name: "destination", Usage: "Destination token account", Required: true},
					&cli.StringFlag{Name: "authority", Usage: "Mint authority address", Required: true},
					&cli.Uint64Flag{Name: "amount", Usage: "Amount in base units", Required: true},
				},
				Action: mintTokenCommand,
			},
			{
				Name:  "send-sol",
				Usage: "Build a System program transfer instruction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "Sender address", Required: true},
					&cli.StringFlag{Name: "to", Usage: "Recipient address", Required: true},
					&cli.Uint64Flag{Name: "lamports", Usage: "Lamports to transfer", Required: true},
				},
				Action: sendSolCommand,
			},
			{
				Name:  "send-token",
				Usage: "Build a token Transfer between associated token accounts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "destination", Usage: "Recipient wallet address", Required: true},
					&cli.StringFlag{Name: "mint", Usage: "Mint address", Required: true},
					&cli.StringFlag{Name: "owner", Usage: "Sender wallet address", Required: true},
					&cli.Uint64Flag{Name: "amount", Usage: "Amount in base units", Required: true},
				},
				Action: sendTokenCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newClient(c *cli.Context) (*solanaClient.Client, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return solanaClient.NewClient(&solanaClient.ClientConfig{
		ServerURL: c.String("server-url"),
		Timeout:   c.Duration("timeout"),
		Logger:    l,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func keypairCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	kp, err := client.GenerateKeypair(c.Context)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}
	return printJSON(kp)
}

func signCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	signed, err := client.SignMessage(c.Context, c.String("message"), c.String("secret"))
	if err != nil {
		return fmt.Errorf("failed to sign message: %w", err)
	}
	return printJSON(signed)
}

func verifyCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	verified, err := client.VerifyMessage(c.Context, c.String("message"), c.String("signature"), c.String("pubkey"))
	if err != nil {
		return fmt.Errorf("failed to verify message: %w", err)
	}
	if err := printJSON(verified); err != nil {
		return err
	}
	if !verified.Valid {
		return cli.Exit("signature is not valid", 1)
	}
	return nil
}

func createTokenCommand(c *cli.Context) error {
	decimals := c.Uint("decimals")
	if decimals > 255 {
		return fmt.Errorf("decimals must be between 0 and 255, got %d", decimals)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	ix, err := client.CreateToken(c.Context, c.String("mint-authority"), c.String("mint"), uint8(decimals))
	if err != nil {
		return fmt.Errorf("failed to build initialize mint: %w", err)
	}
	return printJSON(ix)
}

func mintTokenCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	ix, err := client.MintToken(c.Context, c.String("mint"), c.String("destination"), c.String("authority"), c.Uint64("amount"))
	if err != nil {
		return fmt.Errorf("failed to build mint to: %w", err)
	}
	return printJSON(ix)
}

func sendSolCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	ix, err := client.SendSol(c.Context, c.String("from"), c.String("to"), c.Uint64("lamports"))
	if err != nil {
		return fmt.Errorf("failed to build transfer: %w", err)
	}
	return printJSON(ix)
}

func sendTokenCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	ix, err := client.SendToken(c.Context, c.String("destination"), c.String("mint"), c.String("owner"), c.Uint64("amount"))
	if err != nil {
		return fmt.Errorf("failed to build token transfer: %w", err)
	}
	return printJSON(ix)
}
