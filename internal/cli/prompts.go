package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Shulepov/wallet-kit/internal/kitcrypto"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

// minPassphraseLen is the minimum length for a new agent passphrase.
const minPassphraseLen = 8

// promptSecret reads a secret with hidden input. Tests replace it to avoid
// needing a terminal. The caller is responsible for zeroing the returned
// bytes after use.
//
//nolint:gochecknoglobals // replaced in tests
var promptSecret = func(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	secret, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	return secret, nil
}

// promptNewPassphrase prompts for a new passphrase with confirmation.
func promptNewPassphrase() (string, error) {
	pass, err := promptSecret("Enter encryption passphrase: ")
	if err != nil {
		return "", err
	}

	if len(pass) < minPassphraseLen {
		kitcrypto.ZeroBytes(pass)
		return "", kiterr.WithSuggestion(
			kiterr.ErrInvalidArgument,
			fmt.Sprintf("passphrase must be at least %d characters", minPassphraseLen),
		)
	}

	confirm, err := promptSecret("Confirm passphrase: ")
	if err != nil {
		kitcrypto.ZeroBytes(pass)
		return "", err
	}
	defer kitcrypto.ZeroBytes(confirm)

	if string(pass) != string(confirm) {
		kitcrypto.ZeroBytes(pass)
		return "", kiterr.WithSuggestion(
			kiterr.ErrInvalidArgument,
			"passphrases do not match",
		)
	}

	result := string(pass)
	kitcrypto.ZeroBytes(pass)
	return result, nil
}

// promptMnemonic reads a mnemonic phrase from the reader, one line.
func promptMnemonic(r io.Reader) (string, error) {
	out(os.Stderr, "Enter mnemonic phrase: ")

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading mnemonic: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirmAction asks a yes/no question and reports whether the user agreed.
func confirmAction(r io.Reader, question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
