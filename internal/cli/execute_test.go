package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/adapter"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMoveCall(t *testing.T) {
	path := writeTempJSON(t, `{
		"packageObjectId": "0x2",
		"module": "coin",
		"function": "transfer",
		"typeArguments": ["0x2::sui::SUI"],
		"arguments": ["0xabc", 100],
		"gasBudget": 1000
	}`)

	call, err := loadMoveCall(path)
	require.NoError(t, err)
	assert.Equal(t, "0x2", call.PackageObjectID)
	assert.Equal(t, "coin", call.Module)
	assert.Equal(t, "transfer", call.Function)
	assert.Equal(t, []string{"0x2::sui::SUI"}, call.TypeArguments)
	assert.Equal(t, uint64(1000), call.GasBudget)
}

func TestLoadMoveCall_MissingFields(t *testing.T) {
	path := writeTempJSON(t, `{"module": "coin"}`)

	_, err := loadMoveCall(path)
	require.Error(t, err)
	assert.True(t, kiterr.Is(err, kiterr.ErrInvalidArgument))

	var kerr *kiterr.KitError
	require.True(t, kiterr.As(err, &kerr))
	assert.Contains(t, kerr.Details["missing"], "packageObjectId")
	assert.Contains(t, kerr.Details["missing"], "function")
	assert.NotContains(t, kerr.Details["missing"], "module")
}

func TestLoadMoveCall_BadJSON(t *testing.T) {
	path := writeTempJSON(t, `{not json`)

	_, err := loadMoveCall(path)
	require.Error(t, err)
}

func TestLoadMoveCall_MissingFile(t *testing.T) {
	_, err := loadMoveCall(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadTransactionInput(t *testing.T) {
	path := writeTempJSON(t, `{
		"transaction": {
			"kind": "moveCall",
			"data": {"packageObjectId": "0x2", "module": "coin", "function": "transfer"}
		}
	}`)

	in, err := loadTransactionInput(path)
	require.NoError(t, err)
	assert.Equal(t, adapter.TransactionKindMoveCall, in.Transaction.Kind)
}

func TestLoadTransactionInput_MissingKind(t *testing.T) {
	path := writeTempJSON(t, `{"transaction": {"data": {}}}`)

	_, err := loadTransactionInput(path)
	require.Error(t, err)
	assert.True(t, kiterr.Is(err, kiterr.ErrInvalidArgument))
}
