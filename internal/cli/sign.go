package cli

import (
	"encoding/hex"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/output"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// signMessage is the message text to sign.
	signMessage string
	// signHex marks the message as hex-encoded bytes.
	signHex bool
	// signFile reads the message from a file instead of the flag.
	signFile string
)

// signCmd signs a message with the active wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var signCmd = &cobra.Command{
	Use:   "sign <wallet>",
	Short: "Sign a message with a wallet",
	Long: `Connect to the wallet and sign a message with its active account.

The wallet must advertise message signing; wallets without the capability
are rejected before any adapter call.

Example:
  walletkit sign main --message "hello world"
  walletkit sign main --message deadbeef --hex
  walletkit sign main --file message.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&signMessage, "message", "m", "", "message to sign")
	signCmd.Flags().BoolVar(&signHex, "hex", false, "treat --message as hex-encoded bytes")
	signCmd.Flags().StringVarP(&signFile, "file", "f", "", "read the message from a file")
}

// signResponse is the JSON shape for the sign command.
type signResponse struct {
	Wallet    string `json:"wallet"`
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// signInput resolves the message bytes from the command flags.
func signInput() ([]byte, error) {
	switch {
	case signFile != "":
		// #nosec G304 -- file path is from user input by design
		return os.ReadFile(signFile)
	case signMessage == "":
		return nil, kiterr.WithSuggestion(kiterr.ErrInvalidArgument,
			"provide a message with --message or --file")
	case signHex:
		msg, err := hex.DecodeString(signMessage)
		if err != nil {
			return nil, kiterr.WithSuggestion(kiterr.ErrInvalidArgument,
				"--hex requires a hex-encoded message")
		}
		return msg, nil
	default:
		return []byte(signMessage), nil
	}
}

func runSign(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	message, err := signInput()
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, defaultOperationTimeout)
	defer cancel()

	if err := cc.Provider.Select(ctx, name); err != nil {
		return err
	}

	signed, err := cc.Provider.SignMessage(ctx, message)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, signResponse{
			Wallet:    name,
			Address:   cc.Provider.Address(),
			Signature: "0x" + hex.EncodeToString(signed.Signature),
		})
	}

	out(w, "Signed %d bytes with '%s'.\n", len(signed.MessageBytes), name)
	out(w, "Address: %s\n", cc.Provider.Address())
	out(w, "Signature: 0x%s\n", hex.EncodeToString(signed.Signature))
	return nil
}
