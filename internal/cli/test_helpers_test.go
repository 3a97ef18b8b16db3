package cli

import (
	"bytes"
	"testing"
)

// withMockSecret replaces the hidden-input prompt for testing and restores
// it on cleanup.
func withMockSecret(t *testing.T, secret string) {
	t.Helper()
	orig := promptSecret
	t.Cleanup(func() { promptSecret = orig })
	promptSecret = func(_ string) ([]byte, error) {
		return []byte(secret), nil
	}
}

// execute runs the root command with the given args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// isolateState points the state directory at a temp dir for one test.
func isolateState(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WALLETKIT_STATE_DIR", dir)
	t.Setenv("WALLETKIT_CONFIG", "")
	t.Setenv("WALLETKIT_KEYSTORE_DIR", "")
	return dir
}
