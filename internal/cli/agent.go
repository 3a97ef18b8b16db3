package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/keystore"
	"github.com/Shulepov/wallet-kit/internal/output"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createWords is the number of words for mnemonic generation.
	createWords int
	// restoreMnemonic is the phrase supplied on the command line; prompted
	// for when empty.
	restoreMnemonic string
	// deleteForce skips the confirmation prompt.
	deleteForce bool
)

// agentCmd is the parent command for local signing agents.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage local signing agents",
	Long: `Create, restore, list, and delete local signing agents.

An agent is a locally stored wallet backed by a BIP39 mnemonic. The mnemonic
is encrypted with a passphrase; the address and public key are stored in
cleartext so listings never require unlocking.`,
}

// agentCreateCmd creates a new agent.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new signing agent",
	Long: `Create a new signing agent with a freshly generated BIP39 mnemonic.

The mnemonic is displayed once - write it down and store it securely.
You will be prompted for a passphrase to encrypt the agent file.

Example:
  walletkit agent create main
  walletkit agent create main --words 24`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentCreate,
}

// agentRestoreCmd restores an agent from a mnemonic.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore an agent from a mnemonic phrase",
	Long: `Restore a signing agent from an existing BIP39 mnemonic phrase.

The phrase is validated before anything is written; a mistyped word gets a
suggestion from the BIP39 word list when one is close enough.

Example:
  walletkit agent restore main
  walletkit agent restore main --mnemonic "abandon abandon ... about"`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentRestore,
}

// agentListCmd lists stored agents.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored agents",
	RunE:  runAgentList,
}

// agentShowCmd shows one agent's metadata.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show agent details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentShow,
}

// agentDeleteCmd deletes an agent file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var agentDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an agent",
	Long: `Delete an agent file from the keystore.

This removes the encrypted mnemonic permanently. Unless the mnemonic is
backed up elsewhere, the agent's key is unrecoverable afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentDelete,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.AddCommand(agentCreateCmd)
	agentCmd.AddCommand(agentRestoreCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)
	agentCmd.AddCommand(agentDeleteCmd)

	agentCreateCmd.Flags().IntVar(&createWords, "words", 12, "mnemonic length: 12 or 24 words")
	agentRestoreCmd.Flags().StringVar(&restoreMnemonic, "mnemonic", "", "mnemonic phrase (prompted for when omitted)")
	agentDeleteCmd.Flags().BoolVar(&deleteForce, "force", false, "skip the confirmation prompt")
}

// agentResponse is the JSON shape for created and restored agents.
type agentResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
	Path      string `json:"path"`
	Mnemonic  string `json:"mnemonic,omitempty"`
}

func runAgentCreate(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	if err := keystore.ValidateAgentName(name); err != nil {
		return err
	}
	if cc.Store.Exists(name) {
		return kiterr.WithSuggestion(kiterr.ErrAgentExists,
			fmt.Sprintf("agent '%s' already exists; pick another name or delete it first", name))
	}

	mnemonic, err := keystore.GenerateMnemonic(createWords)
	if err != nil {
		return err
	}

	agent, err := keystore.NewAgent(name, mnemonic)
	if err != nil {
		return err
	}

	passphrase, err := promptNewPassphrase()
	if err != nil {
		return err
	}

	if err := cc.Store.Save(agent, mnemonic, passphrase); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, agentResponse{
			Name:      agent.Name,
			Address:   agent.Address,
			PublicKey: agent.PublicKey,
			Path:      agent.Path,
			Mnemonic:  mnemonic,
		})
	}

	displayMnemonic(w, mnemonic)
	out(w, "Agent '%s' created successfully.\n", name)
	out(w, "Address: %s\n", agent.Address)
	return nil
}

func runAgentRestore(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	if err := keystore.ValidateAgentName(name); err != nil {
		return err
	}
	if cc.Store.Exists(name) {
		return kiterr.WithSuggestion(kiterr.ErrAgentExists,
			fmt.Sprintf("agent '%s' already exists; pick another name or delete it first", name))
	}

	mnemonic := restoreMnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = promptMnemonic(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	mnemonic = keystore.NormalizeMnemonic(mnemonic)

	if err := keystore.ValidateMnemonic(mnemonic); err != nil {
		return err
	}

	agent, err := keystore.NewAgent(name, mnemonic)
	if err != nil {
		return err
	}

	passphrase, err := promptNewPassphrase()
	if err != nil {
		return err
	}

	if err := cc.Store.Save(agent, mnemonic, passphrase); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, agentResponse{
			Name:      agent.Name,
			Address:   agent.Address,
			PublicKey: agent.PublicKey,
			Path:      agent.Path,
		})
	}

	out(w, "Agent '%s' restored successfully.\n", name)
	out(w, "Address: %s\n", agent.Address)
	return nil
}

func runAgentList(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	agents, err := cc.Store.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		if agents == nil {
			agents = []*keystore.Agent{}
		}
		return writeJSON(w, agents)
	}

	if len(agents) == 0 {
		outln(w, "No agents found.")
		outln(w, "Create one with: walletkit agent create <name>")
		return nil
	}

	table := output.NewTable("NAME", "ADDRESS", "CREATED")
	for _, agent := range agents {
		table.AddRow(agent.Name, agent.Address, agent.CreatedAt.Format(time.DateOnly))
	}
	return table.Render(w)
}

func runAgentShow(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	agent, err := cc.Store.Load(name)
	if err != nil {
		return kiterr.WithSuggestion(err,
			"list agents with: walletkit agent list")
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, agent)
	}

	out(w, "Agent: %s\n", agent.Name)
	out(w, "Address: %s\n", agent.Address)
	out(w, "Public key: %s\n", agent.PublicKey)
	out(w, "Derivation path: %s\n", agent.Path)
	out(w, "Created: %s\n", agent.CreatedAt.Format(time.RFC3339))
	return nil
}

func runAgentDelete(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	name := args[0]

	if !cc.Store.Exists(name) {
		return kiterr.WithSuggestion(kiterr.ErrAgentNotFound,
			fmt.Sprintf("agent '%s' not found; list agents with: walletkit agent list", name))
	}

	if !deleteForce {
		question := fmt.Sprintf("Delete agent '%s'? The encrypted mnemonic will be removed permanently.", name)
		if !confirmAction(cmd.InOrStdin(), question) {
			outln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := cc.Store.Delete(name); err != nil {
		return err
	}

	return output.FormatSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Agent '%s' deleted.", name), cc.Formatter.Format())
}

// displayMnemonic shows the mnemonic phrase with formatting.
func displayMnemonic(w io.Writer, mnemonic string) {
	outln(w)
	outln(w, "===================================================================")
	outln(w, "                    RECOVERY PHRASE")
	outln(w, "===================================================================")
	outln(w)
	outln(w, "Write down these words in order and store them securely.")
	outln(w, "This is the ONLY way to recover your agent.")
	outln(w)

	words := strings.Fields(mnemonic)
	for i, word := range words {
		out(w, "%2d. %s\n", i+1, word)
	}

	outln(w)
	outln(w, "===================================================================")
	outln(w)
}
