package configs

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	log.Println("✅ Session keys loaded and decoded successfully.")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

// CSRFKey decodes CSRF_KEY. A nil key with a nil error means CSRF
// protection is disabled.
func CSRFKey(env ENV) ([]byte, error) {
	if env.CSRFKey == "" {
		return nil, nil
	}
	key, err := base64.URLEncoding.DecodeString(env.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("CSRF_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

func GenerateAndPrintSessionKeys(envFilePath string) error {
	fmt.Println("Generating new session keys...")

	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("error: could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("error: could not generate encryption key")
	}

	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return fmt.Errorf("error: could not generate csrf key")
	}

	jwtSecret := securecookie.GenerateRandomKey(32)
	if jwtSecret == nil {
		return fmt.Errorf("error: could not generate jwt secret")
	}

	lines := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nCSRF_KEY=%s\nJWT_SECRET=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey),
		base64.URLEncoding.EncodeToString(jwtSecret),
	)

	fullPath, err := filepath.Abs(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", envFilePath, err)
	}

	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	if _, err := file.WriteString(lines); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Printf("\n✅ Keys have been written to '%s'.\n", fullPath)
	fmt.Println("Please copy these lines from that file into your actual .env file.")
	fmt.Println("If you regenerate, existing user sessions will be invalidated.")

	return nil
}
