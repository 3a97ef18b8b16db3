// Package config provides configuration management for wallet-kit: the YAML
// config file, environment overrides, and the file-backed logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
	"github.com/Shulepov/wallet-kit/registry"
)

// Config represents the application configuration.
type Config struct {
	Version   int             `yaml:"version"`
	StateDir  string          `yaml:"state_dir"`
	Wallets   []WalletConfig  `yaml:"wallets"`
	Keystore  KeystoreConfig  `yaml:"keystore"`
	Detection DetectionConfig `yaml:"detection"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WalletConfig declares one statically configured wallet. Entries may name
// wallets that are not installed; detection attaches the adapter when one
// appears.
type WalletConfig struct {
	Name        string `yaml:"name"`
	IconURL     string `yaml:"icon_url,omitempty"`
	DownloadURL string `yaml:"download_url,omitempty"`
}

// KeystoreConfig defines where local agent files live.
type KeystoreConfig struct {
	Dir string `yaml:"dir"`
}

// DetectionConfig defines how the keystore directory is watched.
type DetectionConfig struct {
	Watch      bool `yaml:"watch"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, filling missing fields
// from Defaults and applying environment overrides on top. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, kiterr.Wrap(err, "parsing %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	ApplyEnvironment(cfg)
	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the config file path under the state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "config.yaml")
}

// Validate checks the configuration for invalid values. Failures are
// ErrConfigInvalid with the offending field in the details.
func (c *Config) Validate() error {
	for i, w := range c.Wallets {
		if strings.TrimSpace(w.Name) == "" {
			return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{
				"field":  "wallets",
				"reason": fmt.Sprintf("wallet entry %d has an empty name", i),
			})
		}
	}

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "", "auto", "text", "json":
	default:
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{
			"field":  "output.default_format",
			"reason": "must be one of auto, text, json",
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "off", "none", "error", "debug":
	default:
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{
			"field":  "logging.level",
			"reason": "must be one of off, error, debug",
		})
	}

	if c.Detection.DebounceMS < 0 {
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{
			"field":  "detection.debounce_ms",
			"reason": "must not be negative",
		})
	}

	return nil
}

// Descriptors converts the configured wallet list into registry descriptors,
// preserving configuration order.
func (c *Config) Descriptors() []registry.Descriptor {
	descs := make([]registry.Descriptor, 0, len(c.Wallets))
	for _, w := range c.Wallets {
		descs = append(descs, registry.Descriptor{
			Name:        w.Name,
			IconURL:     w.IconURL,
			DownloadURL: w.DownloadURL,
		})
	}
	return descs
}

// KeystoreDir returns the keystore directory, defaulting under the state
// directory when unset.
func (c *Config) KeystoreDir() string {
	if c.Keystore.Dir != "" {
		return ExpandHome(c.Keystore.Dir)
	}
	return filepath.Join(ExpandHome(c.StateDir), "agents")
}

// DefaultStateDir returns the default wallet-kit state directory.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".walletkit"
	}
	return filepath.Join(home, ".walletkit")
}

// ExpandHome expands a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
