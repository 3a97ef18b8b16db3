// Package adapter defines the contract between the connection orchestrator
// and wallet implementations. An adapter is supplied by the host environment
// (a browser extension, an injected object, a local signing agent) and is
// invoked, never owned: the orchestrator does not mutate adapters.
package adapter

import "context"

// Feature identifies an optional adapter capability.
type Feature string

// Optional feature identifiers. Connect is mandatory and has no identifier.
const (
	FeatureDisconnect     Feature = "disconnect"
	FeatureSignMessage    Feature = "signMessage"
	FeatureSignAndExecute Feature = "signAndExecuteTransaction"
)

// String returns the feature identifier string.
func (f Feature) String() string {
	return string(f)
}

// IsValid returns true if the feature is a known identifier.
func (f Feature) IsValid() bool {
	switch f {
	case FeatureDisconnect, FeatureSignMessage, FeatureSignAndExecute:
		return true
	default:
		return false
	}
}

// AllFeatures returns every known optional feature identifier.
func AllFeatures() []Feature {
	return []Feature{FeatureDisconnect, FeatureSignMessage, FeatureSignAndExecute}
}

// Account is one address exposed by a connected wallet.
type Account struct {
	Address   string `json:"address"`
	PublicKey []byte `json:"publicKey"`
}

// ConnectOptions controls how an adapter establishes its session.
type ConnectOptions struct {
	// Silent requires the adapter to connect without user interaction.
	// An adapter that cannot connect without prompting must fail instead.
	Silent bool `json:"silent"`
}

// ConnectResult is the adapter's response to a successful connect.
type ConnectResult struct {
	Accounts []Account `json:"accounts"`
}

// SignMessageInput carries the account and raw bytes for a message signature.
type SignMessageInput struct {
	Account Account `json:"account"`
	Message []byte  `json:"message"`
}

// SignedMessage is the adapter's response to a message signing request.
type SignedMessage struct {
	Signature    []byte `json:"signature"`
	MessageBytes []byte `json:"messageBytes"`
}

// Adapter is the required surface every wallet implementation exposes.
// Optional capabilities live on separate interfaces (Disconnector,
// MessageSigner, TransactionExecutor) discovered by type assertion, and only
// after HasFeature confirms the adapter advertises them.
type Adapter interface {
	// Name returns the wallet's unique name, the join key against
	// configured wallet metadata.
	Name() string

	// Connect establishes the wallet session and returns its accounts.
	Connect(ctx context.Context, opts *ConnectOptions) (*ConnectResult, error)

	// Accounts returns the wallet's live account list once connected.
	// Implementations return their own slice; callers must not mutate it.
	Accounts() []Account

	// HasFeature reports whether the adapter advertises an optional feature.
	HasFeature(f Feature) bool
}

// Disconnector is implemented by adapters advertising FeatureDisconnect.
type Disconnector interface {
	// Disconnect tears down the wallet session.
	Disconnect(ctx context.Context) error
}

// MessageSigner is implemented by adapters advertising FeatureSignMessage.
type MessageSigner interface {
	// SignMessage signs raw bytes with the given account's key.
	SignMessage(ctx context.Context, in *SignMessageInput) (*SignedMessage, error)
}

// TransactionExecutor is implemented by adapters advertising FeatureSignAndExecute.
type TransactionExecutor interface {
	// SignAndExecuteTransaction signs the transaction and submits it for
	// execution, returning the execution result.
	SignAndExecuteTransaction(ctx context.Context, in *TransactionInput) (*TransactionResult, error)
}
