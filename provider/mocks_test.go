package provider_test

import (
	"context"
	"sync"
	"time"

	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/provider"
)

// callLog records cross-adapter call order for sequencing assertions.
type callLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *callLog) add(entry string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// mockAdapter implements the full adapter surface with injectable failures
// and call counters.
type mockAdapter struct {
	mu       sync.Mutex
	name     string
	accounts []adapter.Account
	features map[adapter.Feature]bool

	connectErr    error
	disconnectErr error
	signErr       error
	execErr       error

	signature []byte
	digest    string

	connectCalls    int
	disconnectCalls int
	signCalls       int
	execCalls       int

	lastOpts *adapter.ConnectOptions
	lastSign *adapter.SignMessageInput
	lastExec *adapter.TransactionInput

	// connectStarted receives one value when Connect begins;
	// connectRelease, when set, blocks Connect until closed.
	connectStarted chan struct{}
	connectRelease chan struct{}

	log *callLog
}

func allFeatures() map[adapter.Feature]bool {
	return map[adapter.Feature]bool{
		adapter.FeatureDisconnect:     true,
		adapter.FeatureSignMessage:    true,
		adapter.FeatureSignAndExecute: true,
	}
}

func (m *mockAdapter) Name() string { return m.name }

func (m *mockAdapter) Connect(_ context.Context, opts *adapter.ConnectOptions) (*adapter.ConnectResult, error) {
	m.mu.Lock()
	m.connectCalls++
	m.lastOpts = opts
	started := m.connectStarted
	release := m.connectRelease
	err := m.connectErr
	accounts := m.accounts
	m.mu.Unlock()

	m.log.add(m.name + ".connect")
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return &adapter.ConnectResult{Accounts: accounts}, nil
}

func (m *mockAdapter) Accounts() []adapter.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts
}

func (m *mockAdapter) HasFeature(f adapter.Feature) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.features[f]
}

func (m *mockAdapter) Disconnect(_ context.Context) error {
	m.mu.Lock()
	m.disconnectCalls++
	err := m.disconnectErr
	m.mu.Unlock()

	m.log.add(m.name + ".disconnect")
	return err
}

func (m *mockAdapter) SignMessage(_ context.Context, in *adapter.SignMessageInput) (*adapter.SignedMessage, error) {
	m.mu.Lock()
	m.signCalls++
	m.lastSign = in
	err := m.signErr
	signature := m.signature
	m.mu.Unlock()

	m.log.add(m.name + ".signMessage")
	if err != nil {
		return nil, err
	}
	return &adapter.SignedMessage{Signature: signature, MessageBytes: in.Message}, nil
}

func (m *mockAdapter) SignAndExecuteTransaction(_ context.Context, in *adapter.TransactionInput) (*adapter.TransactionResult, error) {
	m.mu.Lock()
	m.execCalls++
	m.lastExec = in
	err := m.execErr
	digest := m.digest
	m.mu.Unlock()

	m.log.add(m.name + ".signAndExecuteTransaction")
	if err != nil {
		return nil, err
	}
	return &adapter.TransactionResult{Digest: digest}, nil
}

func (m *mockAdapter) calls() (connect, disconnect, sign, exec int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectCalls, m.disconnectCalls, m.signCalls, m.execCalls
}

// bareAdapter implements only the required adapter surface: no disconnect,
// no signing, no execution.
type bareAdapter struct {
	name     string
	accounts []adapter.Account
}

func (b *bareAdapter) Name() string { return b.name }

func (b *bareAdapter) Connect(_ context.Context, _ *adapter.ConnectOptions) (*adapter.ConnectResult, error) {
	return &adapter.ConnectResult{Accounts: b.accounts}, nil
}

func (b *bareAdapter) Accounts() []adapter.Account { return b.accounts }

func (b *bareAdapter) HasFeature(_ adapter.Feature) bool { return false }

// advertiserAdapter claims every feature but implements none of the
// optional interfaces.
type advertiserAdapter struct {
	bareAdapter
}

func (a *advertiserAdapter) HasFeature(_ adapter.Feature) bool { return true }

// recorderMock captures Recorder calls.
type recorderMock struct {
	mu         sync.Mutex
	connects   []string
	operations []string
	statuses   []provider.Status
}

func (r *recorderMock) RecordConnect(wallet string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connects = append(r.connects, wallet+":"+outcome(success))
}

func (r *recorderMock) RecordOperation(op string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, op+":"+outcome(success))
}

func (r *recorderMock) RecordStatus(status provider.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func (r *recorderMock) snapshot() (connects, operations []string, statuses []provider.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.connects...),
		append([]string(nil), r.operations...),
		append([]provider.Status(nil), r.statuses...)
}
