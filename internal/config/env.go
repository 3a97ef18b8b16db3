package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvConfig       = "WALLETKIT_CONFIG"
	EnvStateDir     = "WALLETKIT_STATE_DIR"
	EnvKeystoreDir  = "WALLETKIT_KEYSTORE_DIR"
	EnvLogLevel     = "WALLETKIT_LOG_LEVEL"
	EnvOutputFormat = "WALLETKIT_OUTPUT_FORMAT"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration. Overrides win over file values; command-line flags are
// applied by the CLI afterwards and win over both.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}

	if v := os.Getenv(EnvKeystoreDir); v != "" {
		cfg.Keystore.Dir = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}
}
