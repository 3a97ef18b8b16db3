// Package errors provides structured error handling for wallet-kit.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes used by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Authentication failed
	ExitNotFound = 4 // Resource not found
	ExitState    = 5 // Operation invalid in the current session state
)

// KitError is the structured error type for wallet-kit.
type KitError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KitError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KitError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KitError.
func (e *KitError) Is(target error) bool {
	var t *KitError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &KitError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidArgument = &KitError{
		Code:     "INVALID_ARGUMENT",
		Message:  "invalid argument",
		ExitCode: ExitInput,
	}

	// Session errors.
	ErrNotConnected = &KitError{
		Code:     "NOT_CONNECTED",
		Message:  "wallet is not connected",
		ExitCode: ExitState,
	}

	ErrConnectionBusy = &KitError{
		Code:     "CONNECTION_BUSY",
		Message:  "a connection attempt is already in progress",
		ExitCode: ExitState,
	}

	ErrNoActiveAccount = &KitError{
		Code:     "NO_ACTIVE_ACCOUNT",
		Message:  "connected wallet has no active account",
		ExitCode: ExitState,
	}

	ErrWalletNotAvailable = &KitError{
		Code:     "WALLET_NOT_AVAILABLE",
		Message:  "wallet is not available",
		ExitCode: ExitNotFound,
	}

	ErrFeatureNotSupported = &KitError{
		Code:     "FEATURE_NOT_SUPPORTED",
		Message:  "feature not supported by the connected wallet",
		ExitCode: ExitInput,
	}

	// Keystore errors.
	ErrAgentExists = &KitError{
		Code:     "AGENT_EXISTS",
		Message:  "agent already exists",
		ExitCode: ExitInput,
	}

	ErrAgentNotFound = &KitError{
		Code:     "AGENT_NOT_FOUND",
		Message:  "agent not found",
		ExitCode: ExitNotFound,
	}

	ErrInvalidName = &KitError{
		Code:     "INVALID_NAME",
		Message:  "invalid agent name",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &KitError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrPassphraseRequired = &KitError{
		Code:     "PASSPHRASE_REQUIRED",
		Message:  "passphrase required to unlock the agent",
		ExitCode: ExitAuth,
	}

	ErrDecryptionFailed = &KitError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrKeystoreCorrupt = &KitError{
		Code:     "KEYSTORE_CORRUPT",
		Message:  "agent file is corrupted",
		ExitCode: ExitInput,
	}

	// Config errors.
	ErrConfigNotFound = &KitError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &KitError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new KitError with the given code and message.
func New(code, message string) *KitError {
	return &KitError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KitError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
