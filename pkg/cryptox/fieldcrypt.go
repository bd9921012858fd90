package cryptox

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
)

// FieldKeySize is the AES-256 key length in bytes.
const FieldKeySize = 32

var ErrInvalidFieldKey = errors.New("cryptox: field key must be 32 bytes (64 hex characters)")

// FieldCipher encrypts individual column values (emails, phone numbers) with
// AES-256-GCM. Output is base64(nonce || ciphertext || tag).
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a cipher from a raw 32 byte key.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != FieldKeySize {
		return nil, ErrInvalidFieldKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &FieldCipher{aead: gcm}, nil
}

// NewFieldCipherFromHex parses a hex encoded key, as stored in AES_SECRET_KEY.
func NewFieldCipherFromHex(hexKey string) (*FieldCipher, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, ErrInvalidFieldKey
	}
	return NewFieldCipher(key)
}

// GenerateFieldKey returns a fresh random key encoded as hex. Used in dev when
// no key is configured; values encrypted with it do not survive a restart.
func GenerateFieldKey() (string, error) {
	key := make([]byte, FieldKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate field key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Encrypt seals value with a random 96-bit nonce.
func (c *FieldCipher) Encrypt(value string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt and authenticates the ciphertext.
func (c *FieldCipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext encoding: %w", err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}

	return string(plaintext), nil
}
