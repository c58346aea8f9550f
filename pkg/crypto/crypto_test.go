package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := "smtp-password-123"
	passphrase := "workspace-secret"

	encrypted, err := EncryptString(secret, passphrase)
	require.NoError(t, err)
	assert.NotEqual(t, secret, encrypted)

	decrypted, err := DecryptFromHexString(encrypted, passphrase)
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)
}

func TestEncryptString_NonceMakesOutputUnique(t *testing.T) {
	a, err := EncryptString("same input", "key")
	require.NoError(t, err)
	b, err := EncryptString("same input", "key")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecryptFromHexString_WrongPassphrase(t *testing.T) {
	encrypted, err := EncryptString("secret", "right")
	require.NoError(t, err)

	_, err = DecryptFromHexString(encrypted, "wrong")
	assert.Error(t, err)
}

func TestDecryptFromHexString_InvalidInput(t *testing.T) {
	_, err := DecryptFromHexString("", "key")
	assert.Error(t, err)

	_, err = DecryptFromHexString("not-hex", "key")
	assert.Error(t, err)

	_, err = DecryptFromHexString("abcd", "key")
	assert.Error(t, err)
}
