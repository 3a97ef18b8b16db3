package kitcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/internal/kitcrypto"
)

func TestSecureBytesLifecycle(t *testing.T) {
	t.Parallel()
	sb := kitcrypto.NewSecureBytes(32)
	require.Equal(t, 32, sb.Len())
	require.Len(t, sb.Bytes(), 32)

	copy(sb.Bytes(), []byte("super secret key material here!!"))
	assert.Equal(t, byte('s'), sb.Bytes()[0])

	sb.Destroy()
	assert.Nil(t, sb.Bytes())
	assert.Equal(t, 0, sb.Len())
	assert.False(t, sb.IsLocked())

	// Destroy is idempotent
	sb.Destroy()
}

func TestSecureBytesFromSliceCopies(t *testing.T) {
	t.Parallel()
	original := []byte{1, 2, 3, 4}
	sb := kitcrypto.SecureBytesFromSlice(original)
	defer sb.Destroy()

	original[0] = 99
	assert.Equal(t, byte(1), sb.Bytes()[0])
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	kitcrypto.ZeroBytes(data)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
}
