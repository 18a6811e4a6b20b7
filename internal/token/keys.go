package token

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"log"
	"os"

	"github.com/avolkova/task-manager-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Keys holds the RSA keypair used to sign and verify tokens. It is
// resolved once at startup and never rotated.
type Keys struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeys resolves the signing keypair. Sources are tried in order:
// raw PEM strings from the environment, PEM files at the configured
// paths, then an ephemeral generated keypair. A configured source that
// fails to parse is an error; ephemeral keys are a fallback for when
// no source is configured at all and are unsuitable for production
// since issued tokens do not survive a restart.
func LoadKeys(cfg *config.Config) (*Keys, error) {
	if cfg.RSAPrivateKey != "" && cfg.RSAPublicKey != "" {
		keys, err := parseKeyPair([]byte(cfg.RSAPrivateKey), []byte(cfg.RSAPublicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to load RSA keys from environment: %w", err)
		}
		log.Println("RSA keys loaded from environment variables")
		return keys, nil
	}

	if fileExists(cfg.RSAPrivateKeyPath) && fileExists(cfg.RSAPublicKeyPath) {
		privatePEM, err := os.ReadFile(cfg.RSAPrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key file: %w", err)
		}
		publicPEM, err := os.ReadFile(cfg.RSAPublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key file: %w", err)
		}
		keys, err := parseKeyPair(privatePEM, publicPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to load RSA keys from files: %w", err)
		}
		log.Println("RSA keys loaded from key files")
		return keys, nil
	}

	log.Println("WARNING: RSA keys not configured, generating an ephemeral keypair")
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keypair: %w", err)
	}
	return &Keys{Private: private, Public: &private.PublicKey}, nil
}

func parseKeyPair(privatePEM, publicPEM []byte) (*Keys, error) {
	private, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	public, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return &Keys{Private: private, Public: public}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
