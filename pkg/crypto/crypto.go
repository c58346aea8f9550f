package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// keyFromPassphrase derives a 32-byte AES key from an arbitrary passphrase.
func keyFromPassphrase(passphrase string) []byte {
	hash := sha256.Sum256([]byte(passphrase))
	return hash[:]
}

// EncryptString encrypts a secret with AES-256-GCM and returns it hex-encoded,
// nonce prepended. Used to store SMTP credentials at rest.
func EncryptString(str string, passphrase string) (string, error) {
	block, err := aes.NewCipher(keyFromPassphrase(passphrase))
	if err != nil {
		return "", fmt.Errorf("EncryptString cipher error: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("EncryptString gcm error: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("EncryptString nonce error: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(str), nil)

	return hex.EncodeToString(ciphertext), nil
}

// DecryptFromHexString reverses EncryptString.
func DecryptFromHexString(str string, passphrase string) (string, error) {
	if str == "" {
		return "", fmt.Errorf("DecryptFromHexString empty string")
	}

	data, err := hex.DecodeString(str)
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString decode error: %w", err)
	}

	block, err := aes.NewCipher(keyFromPassphrase(passphrase))
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString cipher error: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString gcm error: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("DecryptFromHexString ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString open error: %w", err)
	}

	return string(plaintext), nil
}
