package cli

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/output"
)

// connectCmd connects to a wallet and reports the resulting session.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var connectCmd = &cobra.Command{
	Use:   "connect <wallet>",
	Short: "Connect to a wallet",
	Long: `Connect to a wallet from the available list and print the session.

For a local agent this prompts for the passphrase, unlocks the key, and
verifies the derived address against the stored metadata.

Example:
  walletkit connect main`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

// statusCmd prints the orchestrator snapshot.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status and wallet availability",
	RunE:  runStatus,
}

// accountsCmd lists a wallet's accounts.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountsCmd = &cobra.Command{
	Use:   "accounts <wallet>",
	Short: "List the wallet's accounts",
	Long: `Connect to the wallet and list its accounts with addresses and
public keys.

Example:
  walletkit accounts main`,
	Args: cobra.ExactArgs(1),
	RunE: runAccounts,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(accountsCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	ctx, cancel := contextWithTimeout(cmd, defaultOperationTimeout)
	defer cancel()

	if err := cc.Provider.Select(ctx, name); err != nil {
		return err
	}

	snap := cc.Provider.Snapshot()
	w := cmd.OutOrStdout()

	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, snap)
	}

	out(w, "Connected to '%s'.\n", name)
	out(w, "Status: %s\n", snap.Status)
	if snap.Address != "" {
		out(w, "Address: %s\n", snap.Address)
	}
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	snap := cc.Provider.Snapshot()
	w := cmd.OutOrStdout()

	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, snap)
	}

	out(w, "Status: %s\n", snap.Status)
	if snap.Wallet != nil {
		out(w, "Wallet: %s\n", snap.Wallet.Name)
	}
	if snap.Address != "" {
		out(w, "Address: %s\n", snap.Address)
	}
	outln(w)
	formatWalletView(w, snap.Wallets)
	return nil
}

// accountsResponse is the JSON shape for the accounts command.
type accountsResponse struct {
	Wallet   string           `json:"wallet"`
	Accounts []accountDisplay `json:"accounts"`
}

type accountDisplay struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

func runAccounts(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	ctx, cancel := contextWithTimeout(cmd, defaultOperationTimeout)
	defer cancel()

	if err := cc.Provider.Select(ctx, name); err != nil {
		return err
	}

	accounts, err := cc.Provider.GetAccounts()
	if err != nil {
		return err
	}

	display := make([]accountDisplay, 0, len(accounts))
	for _, acct := range accounts {
		display = append(display, accountDisplay{
			Address:   acct.Address,
			PublicKey: hex.EncodeToString(acct.PublicKey),
		})
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, accountsResponse{Wallet: name, Accounts: display})
	}

	table := output.NewTable("ADDRESS", "PUBLIC KEY")
	for _, acct := range display {
		table.AddRow(acct.Address, acct.PublicKey)
	}
	return table.Render(w)
}
