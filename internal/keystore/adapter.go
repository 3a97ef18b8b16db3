package keystore

import (
	"context"
	"sync"

	"github.com/Shulepov/wallet-kit/adapter"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

// PassphraseFunc supplies the passphrase that unlocks an agent. The CLI
// prompts; tests inject a fixed value.
type PassphraseFunc func(agentName string) (string, error)

// AgentAdapter exposes a stored agent through the adapter contract. It
// implements Disconnector and MessageSigner but deliberately not
// TransactionExecutor: a local key cannot execute against a chain, so the
// orchestrator's capability gate must reject those calls.
type AgentAdapter struct {
	meta       *Agent
	store      *Store
	passphrase PassphraseFunc

	mu       sync.Mutex
	key      *DerivedKey
	accounts []adapter.Account
}

var (
	_ adapter.Adapter       = (*AgentAdapter)(nil)
	_ adapter.Disconnector  = (*AgentAdapter)(nil)
	_ adapter.MessageSigner = (*AgentAdapter)(nil)
)

// NewAgentAdapter wraps stored agent metadata in an adapter.
func NewAgentAdapter(meta *Agent, store *Store, passphrase PassphraseFunc) *AgentAdapter {
	return &AgentAdapter{
		meta:       meta,
		store:      store,
		passphrase: passphrase,
	}
}

// Name returns the agent name.
func (a *AgentAdapter) Name() string {
	return a.meta.Name
}

// HasFeature reports the agent's capabilities.
func (a *AgentAdapter) HasFeature(f adapter.Feature) bool {
	switch f {
	case adapter.FeatureDisconnect, adapter.FeatureSignMessage:
		return true
	default:
		return false
	}
}

// Accounts returns the unlocked account list; nil before Connect.
func (a *AgentAdapter) Accounts() []adapter.Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accounts
}

// Connect unlocks the agent: it obtains a passphrase, decrypts the
// mnemonic, and derives the account key. A Silent connect fails with
// ErrPassphraseRequired since unlocking always needs user interaction.
func (a *AgentAdapter) Connect(_ context.Context, opts *adapter.ConnectOptions) (*adapter.ConnectResult, error) {
	if opts != nil && opts.Silent {
		return nil, kiterr.WithDetails(kiterr.ErrPassphraseRequired, map[string]string{
			"agent":  a.meta.Name,
			"reason": "silent connect cannot prompt for a passphrase",
		})
	}
	if a.passphrase == nil {
		return nil, kiterr.WithDetails(kiterr.ErrPassphraseRequired, map[string]string{
			"agent": a.meta.Name,
		})
	}

	pass, err := a.passphrase(a.meta.Name)
	if err != nil {
		return nil, err
	}

	mnemonic, err := a.store.Unlock(a.meta.Name, pass)
	if err != nil {
		return nil, err
	}
	defer mnemonic.Destroy()

	seed, err := MnemonicToSeed(string(mnemonic.Bytes()))
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	key, err := DeriveKey(seed, 0)
	if err != nil {
		return nil, err
	}

	if key.Address() != a.meta.Address {
		key.Destroy()
		return nil, kiterr.WithDetails(kiterr.ErrKeystoreCorrupt, map[string]string{
			"agent":  a.meta.Name,
			"reason": "derived address does not match stored metadata",
		})
	}

	account := adapter.Account{
		Address:   key.Address(),
		PublicKey: key.PublicKey(),
	}

	a.mu.Lock()
	if a.key != nil {
		a.key.Destroy()
	}
	a.key = key
	a.accounts = []adapter.Account{account}
	a.mu.Unlock()

	return &adapter.ConnectResult{Accounts: []adapter.Account{account}}, nil
}

// Disconnect zeroizes the key material and clears the account list.
func (a *AgentAdapter) Disconnect(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.key != nil {
		a.key.Destroy()
		a.key = nil
	}
	a.accounts = nil
	return nil
}

// SignMessage signs keccak256(message) with the unlocked key, producing a
// 65-byte [R || S || V] compact signature.
func (a *AgentAdapter) SignMessage(_ context.Context, in *adapter.SignMessageInput) (*adapter.SignedMessage, error) {
	if in == nil {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidArgument, map[string]string{
			"reason": "sign message input is required",
		})
	}

	a.mu.Lock()
	key := a.key
	a.mu.Unlock()

	if key == nil {
		return nil, kiterr.WithDetails(kiterr.ErrNotConnected, map[string]string{
			"agent": a.meta.Name,
		})
	}

	sig, err := key.Sign(in.Message)
	if err != nil {
		return nil, err
	}

	return &adapter.SignedMessage{
		Signature:    sig,
		MessageBytes: in.Message,
	}, nil
}
