package kitcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/internal/kitcrypto"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()
	plaintext := []byte("abandon ability able about above absent absorb abstract absurd abuse access accident")

	ciphertext, err := kitcrypto.Encrypt(plaintext, "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	assert.NotContains(t, string(ciphertext), "abandon")

	decrypted, err := kitcrypto.Decrypt(ciphertext, "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	t.Parallel()
	ciphertext, err := kitcrypto.Encrypt([]byte("secret"), "right")
	require.NoError(t, err)

	_, err = kitcrypto.Decrypt(ciphertext, "wrong")
	require.Error(t, err)
}

func TestDecryptCorruptedCiphertext(t *testing.T) {
	t.Parallel()
	_, err := kitcrypto.Decrypt([]byte("not an age file"), "pass")
	require.Error(t, err)
}

func TestDecryptSecure(t *testing.T) {
	t.Parallel()
	ciphertext, err := kitcrypto.Encrypt([]byte("sensitive"), "pass")
	require.NoError(t, err)

	sb, err := kitcrypto.DecryptSecure(ciphertext, "pass")
	require.NoError(t, err)
	defer sb.Destroy()

	assert.Equal(t, []byte("sensitive"), sb.Bytes())
}
