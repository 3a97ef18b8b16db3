package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/internal/output"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// executeMoveCall is the path to a JSON file holding Move-call data.
	executeMoveCall string
	// executeInput is the path to a JSON file holding a full transaction input.
	executeInput string
)

// executeCmd signs and executes a transaction with the active wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var executeCmd = &cobra.Command{
	Use:   "execute <wallet>",
	Short: "Sign and execute a transaction",
	Long: `Connect to the wallet and submit a transaction for signing and execution.

The wallet must advertise transaction execution; local agents cannot
execute against a chain, so this is rejected for them.

With --move-call the file holds bare Move-call data and is wrapped in the
moveCall transaction shape. With --input the file holds a complete
transaction input.

Example:
  walletkit execute browser-ext --move-call call.json
  walletkit execute browser-ext --input tx.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExecute,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().StringVar(&executeMoveCall, "move-call", "", "JSON file with Move-call data")
	executeCmd.Flags().StringVar(&executeInput, "input", "", "JSON file with a full transaction input")
}

// loadMoveCall parses and validates Move-call data from a JSON file.
func loadMoveCall(path string) (*adapter.MoveCallData, error) {
	// #nosec G304 -- file path is from user input by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var call adapter.MoveCallData
	if err := json.Unmarshal(data, &call); err != nil {
		return nil, kiterr.Wrap(err, "parsing %s", path)
	}

	var missing []string
	if call.PackageObjectID == "" {
		missing = append(missing, "packageObjectId")
	}
	if call.Module == "" {
		missing = append(missing, "module")
	}
	if call.Function == "" {
		missing = append(missing, "function")
	}
	if len(missing) > 0 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidArgument, map[string]string{
			"file":    path,
			"missing": strings.Join(missing, ", "),
		})
	}

	return &call, nil
}

// loadTransactionInput parses a full transaction input from a JSON file.
func loadTransactionInput(path string) (*adapter.TransactionInput, error) {
	// #nosec G304 -- file path is from user input by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var in adapter.TransactionInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, kiterr.Wrap(err, "parsing %s", path)
	}
	if in.Transaction.Kind == "" {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidArgument, map[string]string{
			"file":    path,
			"missing": "transaction.kind",
		})
	}

	return &in, nil
}

func runExecute(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	if (executeMoveCall == "") == (executeInput == "") {
		return kiterr.WithSuggestion(kiterr.ErrInvalidArgument,
			"provide exactly one of --move-call or --input")
	}

	ctx, cancel := contextWithTimeout(cmd, defaultOperationTimeout)
	defer cancel()

	if err := cc.Provider.Select(ctx, name); err != nil {
		return err
	}

	var result *adapter.TransactionResult
	if executeMoveCall != "" {
		call, err := loadMoveCall(executeMoveCall)
		if err != nil {
			return err
		}
		result, err = cc.Provider.ExecuteMoveCall(ctx, call)
		if err != nil {
			return err
		}
	} else {
		in, err := loadTransactionInput(executeInput)
		if err != nil {
			return err
		}
		result, err = cc.Provider.SignAndExecuteTransaction(ctx, in)
		if err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, result)
	}

	out(w, "Transaction executed.\n")
	out(w, "Digest: %s\n", result.Digest)
	return nil
}
