package config

// Default detection settings.
const (
	// DefaultDebounceMS is the watcher debounce window in milliseconds.
	DefaultDebounceMS = 500
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version:  1,
		StateDir: "~/.walletkit",
		Keystore: KeystoreConfig{
			Dir: "", // resolved under state_dir when unset
		},
		Detection: DetectionConfig{
			Watch:      true,
			DebounceMS: DefaultDebounceMS,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.walletkit/walletkit.log",
		},
	}
}
