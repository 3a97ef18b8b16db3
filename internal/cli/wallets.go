package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/output"
	"github.com/Shulepov/wallet-kit/registry"
)

// walletsCmd is the parent command for wallet availability operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "Inspect wallet availability",
	Long:  `Show configured and detected wallets and whether each is installed.`,
}

// walletsListCmd lists all known wallets.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured and detected wallets",
	Long: `List every wallet walletkit knows about: entries from the config file in
configuration order, followed by detected agents that have no configured
counterpart. Installed is true when a live adapter backs the entry.

Example:
  walletkit wallets list
  walletkit wallets list -o json`,
	RunE: runWalletsList,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletsCmd)
	walletsCmd.AddCommand(walletsListCmd)
}

func runWalletsList(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	view := cc.Provider.Wallets()

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, view)
	}

	formatWalletView(w, view)
	return nil
}

// formatWalletView renders the merged availability view as a table.
func formatWalletView(w io.Writer, view registry.View) {
	if len(view.Configured) == 0 && len(view.Detected) == 0 {
		outln(w, "No wallets configured or detected.")
		outln(w, "Create an agent with: walletkit agent create <name>")
		return
	}

	table := output.NewTable("NAME", "SOURCE", "INSTALLED", "DOWNLOAD")
	for _, desc := range view.Configured {
		table.AddRow(desc.Name, "configured", installed(desc), desc.DownloadURL)
	}
	for _, desc := range view.Detected {
		table.AddRow(desc.Name, "detected", installed(desc), "")
	}
	_ = table.Render(w)
}

func installed(desc registry.Descriptor) string {
	if desc.Installed {
		return "yes"
	}
	return "no"
}
