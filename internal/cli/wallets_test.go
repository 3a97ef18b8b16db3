package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/provider"
	"github.com/Shulepov/wallet-kit/registry"
)

// writeTestConfig drops a config file with two configured wallets into the
// isolated state directory.
func writeTestConfig(t *testing.T, dir string) {
	t.Helper()
	content := `version: 1
wallets:
  - name: sui-wallet
    download_url: https://example.com/sui
  - name: ethos
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
}

func TestWalletsList_Configured(t *testing.T) {
	dir := isolateState(t)
	writeTestConfig(t, dir)

	stdout, err := execute(t, "wallets", "list", "-o", "json")
	require.NoError(t, err)

	var view registry.View
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Configured, 2)
	assert.Equal(t, "sui-wallet", view.Configured[0].Name)
	assert.False(t, view.Configured[0].Installed)
	assert.Equal(t, "ethos", view.Configured[1].Name)
	assert.Empty(t, view.Available)
}

func TestWalletsList_DetectedAgent(t *testing.T) {
	isolateState(t)
	withMockSecret(t, "test-passphrase-123")

	_, err := execute(t, "agent", "restore", "local",
		"--mnemonic", testRestoreMnemonic, "-o", "json")
	require.NoError(t, err)

	stdout, err := execute(t, "wallets", "list", "-o", "json")
	require.NoError(t, err)

	var view registry.View
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Detected, 1)
	assert.Equal(t, "local", view.Detected[0].Name)
	assert.True(t, view.Detected[0].Installed)
	require.Len(t, view.Available, 1)
}

func TestWalletsList_EmptyText(t *testing.T) {
	isolateState(t)

	stdout, err := execute(t, "wallets", "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No wallets configured or detected")
}

func TestStatus_Disconnected(t *testing.T) {
	dir := isolateState(t)
	writeTestConfig(t, dir)

	stdout, err := execute(t, "status", "-o", "json")
	require.NoError(t, err)

	var snap provider.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))
	assert.Equal(t, provider.StatusDisconnected, snap.Status)
	assert.False(t, snap.Connected)
	assert.Len(t, snap.Wallets.Configured, 2)
}

func TestConnect_UnknownWallet(t *testing.T) {
	dir := isolateState(t)
	writeTestConfig(t, dir)

	_, err := execute(t, "connect", "sui-walet", "-o", "json")
	require.Error(t, err)
	// configured but not installed wallets are not connectable, and the
	// near-miss gets a spelling suggestion
	assert.Contains(t, err.Error(), "sui-walet")
}
