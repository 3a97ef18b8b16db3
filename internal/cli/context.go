package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/config"
	"github.com/Shulepov/wallet-kit/internal/keystore"
	"github.com/Shulepov/wallet-kit/internal/metrics"
	"github.com/Shulepov/wallet-kit/internal/output"
	"github.com/Shulepov/wallet-kit/detect"
	"github.com/Shulepov/wallet-kit/provider"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *config.Logger
	Formatter *output.Formatter
	Store     *keystore.Store
	Hub       *detect.Hub
	Provider  *provider.Provider
	Registry  *prometheus.Registry
}

type cmdContextKey struct{}

// SetCmdContext attaches a CommandContext to the command's context.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cmdContextKey{}, cc))
}

// GetCmdContext retrieves the CommandContext from the command, building one
// from the global state when none was injected (tests inject their own).
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	if ctx := cmd.Context(); ctx != nil {
		if cc, ok := ctx.Value(cmdContextKey{}).(*CommandContext); ok {
			return cc
		}
	}
	return newCommandContext()
}

// newCommandContext builds the full dependency set from the global config:
// the agent store, a detection hub seeded with one scan of the keystore
// directory, and a provider over both.
func newCommandContext() *CommandContext {
	cc := &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
	}

	cc.Store = keystore.NewStore(cfg.KeystoreDir())
	cc.Hub = detect.NewHub()

	adapters, err := keystore.Scan(cfg.KeystoreDir(), promptAgentPassphrase)
	if err == nil {
		cc.Hub.SetAdapters(adapters)
	} else {
		logger.Error("keystore scan failed: %v", err)
	}

	cc.Registry = prometheus.NewRegistry()
	cc.Provider = provider.New(&provider.Config{
		Wallets: cfg.Descriptors(),
		Source:  cc.Hub,
		Logger:  logger,
		Metrics: metrics.New(cc.Registry),
	})

	return cc
}

// promptAgentPassphrase asks for the passphrase that unlocks an agent.
func promptAgentPassphrase(agentName string) (string, error) {
	pass, err := promptSecret(fmt.Sprintf("Passphrase for agent '%s': ", agentName))
	if err != nil {
		return "", err
	}
	return string(pass), nil
}
