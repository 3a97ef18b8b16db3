package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/detect"
	"github.com/Shulepov/wallet-kit/internal/keystore"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
	"github.com/Shulepov/wallet-kit/provider"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// watchMetricsAddr serves Prometheus metrics when set.
	watchMetricsAddr string
)

// watchCmd watches the keystore directory and reports availability changes.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the keystore and report wallet availability changes",
	Long: `Watch the keystore directory for agent files appearing and disappearing
and print the availability view on every change. Runs until interrupted.

With --metrics-addr the orchestrator's Prometheus metrics are served on
the given address under /metrics.

Example:
  walletkit watch
  walletkit watch --metrics-addr :9090`,
	RunE: runWatch,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	if !cc.Config.Detection.Watch {
		return kiterr.WithSuggestion(kiterr.ErrConfigInvalid,
			"detection.watch is disabled in the config file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Agents are never unlocked here, so the passphrase source can refuse.
	noPassphrase := func(string) (string, error) {
		return "", kiterr.ErrPassphraseRequired
	}

	dir := cc.Config.KeystoreDir()
	debounce := time.Duration(cc.Config.Detection.DebounceMS) * time.Millisecond
	watcher := detect.NewWatcher(dir, cc.Hub, keystore.ScanFunc(noPassphrase)).
		WithDebounce(debounce).
		WithLogger(cc.Logger)

	if watchMetricsAddr != "" {
		go serveMetrics(ctx, cc, watchMetricsAddr)
	}

	events, cancel := cc.Provider.Subscribe()
	defer cancel()

	go func() {
		if err := cc.Provider.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cc.Logger.Error("provider watch stopped: %v", err)
		}
	}()

	w := cmd.OutOrStdout()
	outln(w, "Watching", dir, "for agent changes. Press Ctrl+C to stop.")
	formatWalletView(w, cc.Provider.Wallets())

	go func() {
		for ev := range events {
			if ev.Type != provider.EventWalletsChanged {
				continue
			}
			outln(w)
			outln(w, "Wallet availability changed:")
			formatWalletView(w, cc.Provider.Wallets())
		}
	}()

	err := watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		outln(w, "\nStopped.")
		return nil
	}
	return err
}

// serveMetrics exposes the command's metrics registry until ctx is canceled.
func serveMetrics(ctx context.Context, cc *CommandContext, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(cc.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cc.Logger.Error("metrics server: %v", err)
	}
}
