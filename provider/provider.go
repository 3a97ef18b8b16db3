package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/detect"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
	"github.com/Shulepov/wallet-kit/registry"
)

// Operation names used for metrics labels.
const (
	opGetAccounts     = "getAccounts"
	opSignMessage     = "signMessage"
	opSignAndExecute  = "signAndExecuteTransaction"
	opExecuteMoveCall = "executeMoveCall"
	opGetPublicKey    = "getPublicKey"
)

// maxSuggestDistance is the maximum edit distance for wallet name
// suggestions.
const maxSuggestDistance = 2

// Provider owns the session record and is its only writer. All methods are
// safe for concurrent use; adapter invocations run without the session lock
// held, so a hung adapter cannot block readers.
type Provider struct {
	configured []registry.Descriptor
	source     detect.Source
	log        LogWriter
	metrics    Recorder

	mu      sync.RWMutex
	session Session
	subs    map[int]chan Event
	nextSub int
}

// Config contains dependencies for creating a Provider.
type Config struct {
	// Wallets is the statically configured wallet list, in display order.
	// Entries may name wallets that are not installed; detection fills the
	// adapter in when one appears.
	Wallets []registry.Descriptor

	// Source produces the detected adapters. Nil means no detection.
	Source detect.Source

	// Logger receives debug traces. Nil disables logging.
	Logger LogWriter

	// Metrics receives orchestrator activity. Nil disables recording.
	Metrics Recorder
}

// New creates a Provider with an empty (disconnected) session.
func New(cfg *Config) *Provider {
	p := &Provider{
		source:  cfg.Source,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		session: Session{Status: StatusDisconnected},
		subs:    make(map[int]chan Event),
	}
	if len(cfg.Wallets) > 0 {
		p.configured = make([]registry.Descriptor, len(cfg.Wallets))
		copy(p.configured, cfg.Wallets)
	}
	return p
}

// Wallets merges the configured wallet list with the adapters the detection
// source reports right now. The view is recomputed on every call, so a
// source that changes between calls is always reflected.
func (p *Provider) Wallets() registry.View {
	var detected []adapter.Adapter
	if p.source != nil {
		detected = p.source.Adapters()
	}
	return registry.Merge(p.configured, detected)
}

// Connect drives the session through Connecting to Connected using the
// given adapter. The status is set to Connecting synchronously, before the
// adapter call; on failure the session resets to Disconnected and the
// adapter's error is returned unchanged. A connect attempt while another is
// in flight fails with ErrConnectionBusy.
func (p *Provider) Connect(ctx context.Context, ad adapter.Adapter, opts *adapter.ConnectOptions) (*adapter.ConnectResult, error) {
	if ad == nil {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidArgument, map[string]string{
			"reason": "adapter is required",
		})
	}

	p.mu.Lock()
	if p.session.Status == StatusConnecting {
		p.mu.Unlock()
		return nil, kiterr.WithDetails(kiterr.ErrConnectionBusy, map[string]string{
			"wallet": ad.Name(),
		})
	}
	p.session = Session{Status: StatusConnecting}
	p.mu.Unlock()
	p.announce(StatusConnecting, ad.Name())

	p.debugf("connecting to wallet %s", ad.Name())
	start := time.Now()
	result, err := ad.Connect(ctx, opts)
	if err != nil {
		p.mu.Lock()
		p.session = Session{Status: StatusDisconnected}
		p.mu.Unlock()
		p.announce(StatusDisconnected, ad.Name())
		p.recordConnect(ad.Name(), false, time.Since(start))
		p.debugf("connect to wallet %s failed: %v", ad.Name(), err)
		return nil, err
	}

	p.mu.Lock()
	p.session = Session{Status: StatusConnected, Adapter: ad}
	p.mu.Unlock()
	p.announce(StatusConnected, ad.Name())
	p.recordConnect(ad.Name(), true, time.Since(start))
	p.debugf("connected to wallet %s", ad.Name())
	return result, nil
}

// Disconnect tears the session down. When the adapter advertises the
// disconnect feature its Disconnect is invoked, but the session reset to
// Disconnected is guaranteed on every exit path; an adapter-side error
// surfaces to the caller only after local state has been reset.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	if !p.session.Callable() {
		p.mu.Unlock()
		return kiterr.ErrNotConnected
	}
	ad := p.session.Adapter
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.session = Session{Status: StatusDisconnected}
		p.mu.Unlock()
		p.announce(StatusDisconnected, ad.Name())
		p.debugf("disconnected from wallet %s", ad.Name())
	}()

	if ad.HasFeature(adapter.FeatureDisconnect) {
		if d, ok := ad.(adapter.Disconnector); ok {
			return d.Disconnect(ctx)
		}
	}
	return nil
}

// Select connects to the named wallet from the available list. Re-selecting
// the currently connected wallet is a no-op. Selecting a different wallet
// first runs a full Disconnect, sequenced before the connect; a disconnect
// failure aborts the selection.
func (p *Provider) Select(ctx context.Context, name string) error {
	p.mu.RLock()
	current := p.session
	p.mu.RUnlock()

	if current.Callable() {
		if current.Adapter.Name() == name {
			return nil
		}
		if err := p.Disconnect(ctx); err != nil {
			return err
		}
	}

	view := p.Wallets()
	desc, ok := registry.Find(view.Available, name)
	if !ok {
		return p.walletNotAvailable(name, registry.Names(view.Available))
	}

	p.debugf("selecting wallet %s", name)
	_, err := p.Connect(ctx, desc.Adapter, nil)
	return err
}

// walletNotAvailable builds the selection failure carrying the requested
// name and the currently available names, with a close-match suggestion
// when one exists.
func (p *Provider) walletNotAvailable(name string, available []string) error {
	err := kiterr.WithDetails(kiterr.ErrWalletNotAvailable, map[string]string{
		"wallet":    name,
		"available": strings.Join(available, ", "),
	})
	if closest := closestName(name, available); closest != "" {
		err = kiterr.WithSuggestion(err, fmt.Sprintf("did you mean %q?", closest))
	}
	return err
}

// closestName returns the available name nearest the requested one, or
// empty when nothing is within editing distance.
func closestName(name string, available []string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range available {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best
}

// ensureCallable is the single precondition gate in front of every
// adapter-dependent operation.
func (p *Provider) ensureCallable() (adapter.Adapter, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.session.Callable() {
		return nil, kiterr.ErrNotConnected
	}
	return p.session.Adapter, nil
}

// GetAccounts returns the connected adapter's live account slice. The slice
// is not copied: if the adapter updates its accounts out of band, callers
// observe the change.
func (p *Provider) GetAccounts() ([]adapter.Account, error) {
	ad, err := p.ensureCallable()
	p.recordOperation(opGetAccounts, err == nil)
	if err != nil {
		return nil, err
	}
	return ad.Accounts(), nil
}

// SignMessage signs raw bytes with the active account. Requires the
// connected adapter to advertise and implement message signing.
func (p *Provider) SignMessage(ctx context.Context, message []byte) (*adapter.SignedMessage, error) {
	signed, err := p.signMessage(ctx, message)
	p.recordOperation(opSignMessage, err == nil)
	return signed, err
}

func (p *Provider) signMessage(ctx context.Context, message []byte) (*adapter.SignedMessage, error) {
	ad, err := p.ensureCallable()
	if err != nil {
		return nil, err
	}
	signer, err := p.messageSigner(ad)
	if err != nil {
		return nil, err
	}
	account, err := activeAccount(ad)
	if err != nil {
		return nil, err
	}
	return signer.SignMessage(ctx, &adapter.SignMessageInput{
		Account: account,
		Message: message,
	})
}

// SignAndExecuteTransaction delegates the transaction verbatim to the
// connected adapter: no payload validation, no retries.
func (p *Provider) SignAndExecuteTransaction(ctx context.Context, in *adapter.TransactionInput) (*adapter.TransactionResult, error) {
	result, err := p.signAndExecute(ctx, in)
	p.recordOperation(opSignAndExecute, err == nil)
	return result, err
}

// ExecuteMoveCall wraps Move-call data in the transaction-input shape under
// the moveCall kind and delegates. It exists for callers still on the
// legacy call shape; new callers use SignAndExecuteTransaction.
func (p *Provider) ExecuteMoveCall(ctx context.Context, data *adapter.MoveCallData) (*adapter.TransactionResult, error) {
	result, err := p.signAndExecute(ctx, adapter.NewMoveCallInput(data))
	p.recordOperation(opExecuteMoveCall, err == nil)
	return result, err
}

func (p *Provider) signAndExecute(ctx context.Context, in *adapter.TransactionInput) (*adapter.TransactionResult, error) {
	ad, err := p.ensureCallable()
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidArgument, map[string]string{
			"reason": "transaction input is required",
		})
	}
	executor, err := p.transactionExecutor(ad)
	if err != nil {
		return nil, err
	}
	return executor.SignAndExecuteTransaction(ctx, in)
}

// GetPublicKey returns the active account's public key.
func (p *Provider) GetPublicKey() ([]byte, error) {
	key, err := p.getPublicKey()
	p.recordOperation(opGetPublicKey, err == nil)
	return key, err
}

func (p *Provider) getPublicKey() ([]byte, error) {
	ad, err := p.ensureCallable()
	if err != nil {
		return nil, err
	}
	account, err := activeAccount(ad)
	if err != nil {
		return nil, err
	}
	return account.PublicKey, nil
}

// activeAccount resolves the first adapter account, the active account by
// policy.
func activeAccount(ad adapter.Adapter) (adapter.Account, error) {
	accounts := ad.Accounts()
	if len(accounts) == 0 {
		return adapter.Account{}, kiterr.ErrNoActiveAccount
	}
	return accounts[0], nil
}

// messageSigner gates the optional signMessage feature: the adapter must
// both advertise it and structurally implement it.
func (p *Provider) messageSigner(ad adapter.Adapter) (adapter.MessageSigner, error) {
	if !ad.HasFeature(adapter.FeatureSignMessage) {
		return nil, featureNotSupported(ad, adapter.FeatureSignMessage)
	}
	signer, ok := ad.(adapter.MessageSigner)
	if !ok {
		return nil, featureNotSupported(ad, adapter.FeatureSignMessage)
	}
	return signer, nil
}

// transactionExecutor gates the optional signAndExecuteTransaction feature.
func (p *Provider) transactionExecutor(ad adapter.Adapter) (adapter.TransactionExecutor, error) {
	if !ad.HasFeature(adapter.FeatureSignAndExecute) {
		return nil, featureNotSupported(ad, adapter.FeatureSignAndExecute)
	}
	executor, ok := ad.(adapter.TransactionExecutor)
	if !ok {
		return nil, featureNotSupported(ad, adapter.FeatureSignAndExecute)
	}
	return executor, nil
}

func featureNotSupported(ad adapter.Adapter, f adapter.Feature) error {
	return kiterr.WithDetails(kiterr.ErrFeatureNotSupported, map[string]string{
		"wallet":  ad.Name(),
		"feature": f.String(),
	})
}

// Session returns a copy of the current session record.
func (p *Provider) Session() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

// Status returns the current connection status.
func (p *Provider) Status() Status {
	return p.Session().Status
}

// Connecting reports whether a connect attempt is in flight.
func (p *Provider) Connecting() bool {
	return p.Status() == StatusConnecting
}

// Connected reports whether the session is connected.
func (p *Provider) Connected() bool {
	return p.Status() == StatusConnected
}

// Wallet returns the descriptor of the connected wallet, or nil.
func (p *Provider) Wallet() *registry.Descriptor {
	s := p.Session()
	if !s.Callable() {
		return nil
	}
	return p.describe(s.Adapter, p.Wallets())
}

// Account returns the active account, or nil when there is none.
func (p *Provider) Account() *adapter.Account {
	s := p.Session()
	if !s.Callable() {
		return nil
	}
	accounts := s.Adapter.Accounts()
	if len(accounts) == 0 {
		return nil
	}
	account := accounts[0]
	return &account
}

// Address returns the active account's address, or empty.
func (p *Provider) Address() string {
	if account := p.Account(); account != nil {
		return account.Address
	}
	return ""
}

// Snapshot returns the read-mostly view handed to UIs.
func (p *Provider) Snapshot() Snapshot {
	s := p.Session()

	snap := Snapshot{
		Status:     s.Status,
		Connecting: s.Status == StatusConnecting,
		Connected:  s.Status == StatusConnected,
		Wallets:    p.Wallets(),
	}
	if !s.Callable() {
		return snap
	}

	snap.Wallet = p.describe(s.Adapter, snap.Wallets)
	if accounts := s.Adapter.Accounts(); len(accounts) > 0 {
		account := accounts[0]
		snap.Account = &account
		snap.Address = account.Address
	}
	return snap
}

// describe resolves an adapter against the registry view, falling back to a
// synthesized descriptor for adapters connected directly without being
// configured or detected.
func (p *Provider) describe(ad adapter.Adapter, view registry.View) *registry.Descriptor {
	if desc, ok := registry.Find(view.Available, ad.Name()); ok {
		return &desc
	}
	return &registry.Descriptor{Name: ad.Name(), Installed: true, Adapter: ad}
}

// announce publishes a status transition to subscribers and the recorder.
func (p *Provider) announce(status Status, wallet string) {
	p.publish(Event{Type: EventStatusChanged, Status: status, Wallet: wallet})
	if p.metrics != nil {
		p.metrics.RecordStatus(status)
	}
}

func (p *Provider) recordConnect(wallet string, success bool, elapsed time.Duration) {
	if p.metrics != nil {
		p.metrics.RecordConnect(wallet, success, elapsed)
	}
}

func (p *Provider) recordOperation(op string, success bool) {
	if p.metrics != nil {
		p.metrics.RecordOperation(op, success)
	}
}

func (p *Provider) debugf(format string, args ...any) {
	if p.log != nil {
		p.log.Debug(format, args...)
	}
}
