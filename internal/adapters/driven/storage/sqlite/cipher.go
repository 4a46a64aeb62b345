package sqlite

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// sealedPrefix marks a column value produced by TokenCipher.Seal.
const sealedPrefix = "enc:v1:"

// keySize is the AES-256 key length.
const keySize = 32

// TokenCipher seals token JSON with AES-GCM.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher builds a cipher from a 32-byte key given either raw or as 64 hex characters.
func NewTokenCipher(key string) (*TokenCipher, error) {
	raw := []byte(key)
	if len(key) == 2*keySize {
		if decoded, err := hex.DecodeString(key); err == nil {
			raw = decoded
		}
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("%w: encryption key must be 32 bytes or 64 hex characters", domain.ErrInvalidInput)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &TokenCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns a prefixed base64 string holding nonce and ciphertext.
func (c *TokenCipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (c *TokenCipher) Open(value string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return nil, err
	}
	if len(data) < c.aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := data[:c.aead.NonceSize()], data[c.aead.NonceSize():]
	return c.aead.Open(nil, nonce, ciphertext, nil)
}

// isSealed reports whether a stored value was produced by Seal.
func isSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
