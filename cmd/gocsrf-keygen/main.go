// Package main provides gocsrf-keygen, an operator tool for goCsrf.
//
// It derives backend key material from a password with the same scrypt
// parameters the library uses, and can mint or inspect a token/cookie pair
// for debugging a deployment.
//
// Examples:
//
//	# derive a production key and print it base64-encoded
//	gocsrf-keygen derive --password 'correct horse battery staple'
//
//	# mint a pair under a known key
//	gocsrf-keygen mint --key <BASE64_KEY> --backend aesgcm --ttl 300
//
//	# check a token/cookie pair round-trips under a known key
//	gocsrf-keygen verify --key <BASE64_KEY> --backend aesgcm \
//	  --token <BASE64_TOKEN> --cookie <BASE64_COOKIE>
package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	goCsrf "github.com/MrEthical07/goCsrf"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "gocsrf-keygen",
		Usage: "Derive goCsrf key material and debug token/cookie pairs",
		Commands: []*cli.Command{
			deriveCommand(),
			mintCommand(),
			verifyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func deriveCommand() *cli.Command {
	return &cli.Command{
		Name:  "derive",
		Usage: "Derive 32 bytes of key material from a password",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Password to derive from",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "fast",
				Usage: "Use the fast (test-grade) KDF cost instead of production",
			},
		},
		Action: func(c *cli.Context) error {
			kdf := goCsrf.ProductionKDF()
			if c.Bool("fast") {
				kdf = goCsrf.FastKDF()
			}
			key := goCsrf.DeriveKey([]byte(c.String("password")), kdf)
			fmt.Println(base64.StdEncoding.EncodeToString(key[:]))
			return nil
		},
	}
}

func mintCommand() *cli.Command {
	return &cli.Command{
		Name:  "mint",
		Usage: "Mint a token/cookie pair under a known key",
		Flags: []cli.Flag{
			keyFlag(),
			backendFlag(),
			&cli.Int64Flag{
				Name:  "ttl",
				Value: 3600,
				Usage: "Cookie TTL in seconds (may be negative)",
			},
		},
		Action: func(c *cli.Context) error {
			protect, err := buildProtection(c)
			if err != nil {
				return err
			}
			defer protect.Close()

			token, cookie, err := protect.GenerateTokenPair(nil, c.Int64("ttl"))
			if err != nil {
				return err
			}

			fmt.Printf("token:  %s\n", token.B64String())
			fmt.Printf("cookie: %s\n", cookie.B64String())
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Parse and verify a token/cookie pair under a known key",
		Flags: []cli.Flag{
			keyFlag(),
			backendFlag(),
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Base64-encoded token",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "cookie",
				Usage:    "Base64-encoded cookie",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			protect, err := buildProtection(c)
			if err != nil {
				return err
			}
			defer protect.Close()

			tokenBytes, err := base64.StdEncoding.DecodeString(c.String("token"))
			if err != nil {
				return fmt.Errorf("token is not base64: %w", err)
			}
			cookieBytes, err := base64.StdEncoding.DecodeString(c.String("cookie"))
			if err != nil {
				return fmt.Errorf("cookie is not base64: %w", err)
			}

			token, err := protect.ParseToken(tokenBytes)
			if err != nil {
				return fmt.Errorf("token rejected: %w", err)
			}
			cookie, err := protect.ParseCookie(cookieBytes)
			if err != nil {
				return fmt.Errorf("cookie rejected: %w", err)
			}

			if !protect.VerifyTokenPair(token, cookie) {
				return errors.New("pair rejected: mismatched secrets or expired cookie")
			}

			fmt.Printf("ok: pair verified, cookie expires at %d\n", cookie.Expires())
			return nil
		},
	}
}

func keyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"k"},
		Usage:    "Base64-encoded 32-byte key",
		Required: true,
	}
}

func backendFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "backend",
		Value: "aesgcm",
		Usage: "Backend: hmac, aesgcm, or chacha20poly1305",
	}
}

func buildProtection(c *cli.Context) (goCsrf.Protection, error) {
	raw, err := base64.StdEncoding.DecodeString(c.String("key"))
	if err != nil {
		return nil, fmt.Errorf("key is not base64: %w", err)
	}
	if len(raw) != goCsrf.KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", goCsrf.KeySize, len(raw))
	}
	var key [goCsrf.KeySize]byte
	copy(key[:], raw)

	var backend goCsrf.Backend
	switch c.String("backend") {
	case "hmac":
		backend = goCsrf.BackendHmac
	case "aesgcm":
		backend = goCsrf.BackendAesGcm
	case "chacha20poly1305":
		backend = goCsrf.BackendChaCha20Poly1305
	default:
		return nil, fmt.Errorf("unknown backend %q", c.String("backend"))
	}

	return goCsrf.New().WithBackend(backend).WithKey(key).Build()
}
