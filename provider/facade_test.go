package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/adapter"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
	"github.com/Shulepov/wallet-kit/provider"
)

func connect(t *testing.T, ad adapter.Adapter) *provider.Provider {
	t.Helper()
	p := newProvider(ad)
	_, err := p.Connect(context.Background(), ad, nil)
	require.NoError(t, err)
	return p
}

func TestGuardedOpsWhenDisconnected(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet", features: allFeatures()}

	tests := []struct {
		name string
		call func(p *provider.Provider) error
	}{
		{"getAccounts", func(p *provider.Provider) error {
			_, err := p.GetAccounts()
			return err
		}},
		{"signMessage", func(p *provider.Provider) error {
			_, err := p.SignMessage(context.Background(), []byte("hi"))
			return err
		}},
		{"signAndExecuteTransaction", func(p *provider.Provider) error {
			_, err := p.SignAndExecuteTransaction(context.Background(), &adapter.TransactionInput{})
			return err
		}},
		{"executeMoveCall", func(p *provider.Provider) error {
			_, err := p.ExecuteMoveCall(context.Background(), &adapter.MoveCallData{})
			return err
		}},
		{"getPublicKey", func(p *provider.Provider) error {
			_, err := p.GetPublicKey()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newProvider(mock)

			err := tt.call(p)

			require.ErrorIs(t, err, kiterr.ErrNotConnected)
			connects, disconnects, signs, execs := mock.calls()
			assert.Zero(t, connects+disconnects+signs+execs, "guarded op must not reach the adapter")
		})
	}
}

func TestGetAccountsReturnsLiveSlice(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet", accounts: []adapter.Account{account("0x1")}}
	p := connect(t, mock)

	accounts, err := p.GetAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	// The adapter's slice is handed out uncopied: adapter-side mutation is
	// visible through the returned reference.
	mock.accounts[0].Address = "0x2"
	assert.Equal(t, "0x2", accounts[0].Address)
}

func TestSignMessage(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{
		name:      "suiet",
		accounts:  []adapter.Account{account("0x1"), account("0x9")},
		features:  allFeatures(),
		signature: []byte("sig"),
	}
	p := connect(t, mock)

	signed, err := p.SignMessage(context.Background(), []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, []byte("sig"), signed.Signature)
	assert.Equal(t, []byte("hello"), signed.MessageBytes)

	// The first account is the active account by policy.
	require.NotNil(t, mock.lastSign)
	assert.Equal(t, "0x1", mock.lastSign.Account.Address)
	assert.Equal(t, []byte("hello"), mock.lastSign.Message)
}

func TestSignMessageNoActiveAccount(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet", features: allFeatures()}
	p := connect(t, mock)

	_, err := p.SignMessage(context.Background(), []byte("hello"))

	require.ErrorIs(t, err, kiterr.ErrNoActiveAccount)
	_, _, signs, _ := mock.calls()
	assert.Zero(t, signs)
}

func TestSignMessageFeatureNotSupported(t *testing.T) {
	t.Parallel()
	bare := &bareAdapter{name: "viewer", accounts: []adapter.Account{account("0x1")}}
	p := connect(t, bare)

	_, err := p.SignMessage(context.Background(), []byte("hello"))

	require.ErrorIs(t, err, kiterr.ErrFeatureNotSupported)
	var ke *kiterr.KitError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "viewer", ke.Details["wallet"])
	assert.Equal(t, "signMessage", ke.Details["feature"])
}

func TestAdvertisedButUnimplementedFeature(t *testing.T) {
	t.Parallel()
	// HasFeature lies; the structural check catches it without panicking.
	braggart := &advertiserAdapter{bareAdapter{name: "braggart", accounts: []adapter.Account{account("0x1")}}}
	p := connect(t, braggart)

	_, err := p.SignMessage(context.Background(), []byte("hello"))
	require.ErrorIs(t, err, kiterr.ErrFeatureNotSupported)

	_, err = p.SignAndExecuteTransaction(context.Background(), &adapter.TransactionInput{})
	require.ErrorIs(t, err, kiterr.ErrFeatureNotSupported)
}

func TestSignMessageAdapterErrorPropagates(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{
		name:     "suiet",
		accounts: []adapter.Account{account("0x1")},
		features: allFeatures(),
		signErr:  errAdapterBroken,
	}
	p := connect(t, mock)

	_, err := p.SignMessage(context.Background(), []byte("hello"))

	assert.Equal(t, errAdapterBroken, err)
	// A failed operation does not disturb the session.
	assert.True(t, p.Connected())
}

func TestSignAndExecuteTransaction(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{
		name:     "suiet",
		accounts: []adapter.Account{account("0x1")},
		features: allFeatures(),
		digest:   "8g3K...",
	}
	p := connect(t, mock)

	in := &adapter.TransactionInput{Transaction: adapter.TransactionData{
		Kind: adapter.TransactionKind("programmable"),
		Data: map[string]any{"bytes": "AAA="},
	}}
	result, err := p.SignAndExecuteTransaction(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "8g3K...", result.Digest)
	// Delegation is verbatim: the adapter sees the caller's exact input.
	assert.Same(t, in, mock.lastExec)
}

func TestSignAndExecuteTransactionNilInput(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet", accounts: []adapter.Account{account("0x1")}, features: allFeatures()}
	p := connect(t, mock)

	_, err := p.SignAndExecuteTransaction(context.Background(), nil)

	require.ErrorIs(t, err, kiterr.ErrInvalidArgument)
	_, _, _, execs := mock.calls()
	assert.Zero(t, execs)
}

func TestSignAndExecuteTransactionFeatureNotSupported(t *testing.T) {
	t.Parallel()
	bare := &bareAdapter{name: "viewer", accounts: []adapter.Account{account("0x1")}}
	p := connect(t, bare)

	_, err := p.SignAndExecuteTransaction(context.Background(), &adapter.TransactionInput{})

	require.ErrorIs(t, err, kiterr.ErrFeatureNotSupported)
}

func TestExecuteMoveCallWrapsLegacyShape(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{
		name:     "suiet",
		accounts: []adapter.Account{account("0x1")},
		features: allFeatures(),
		digest:   "digest-1",
	}
	p := connect(t, mock)

	data := &adapter.MoveCallData{
		PackageObjectID: "0x2",
		Module:          "devnet_nft",
		Function:        "mint",
		GasBudget:       10000,
	}
	result, err := p.ExecuteMoveCall(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, "digest-1", result.Digest)

	require.NotNil(t, mock.lastExec)
	assert.Equal(t, adapter.TransactionKindMoveCall, mock.lastExec.Transaction.Kind)
	assert.Same(t, data, mock.lastExec.Transaction.Data)
}

func TestGetPublicKey(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet", accounts: []adapter.Account{account("0x1")}}
	p := connect(t, mock)

	key, err := p.GetPublicKey()

	require.NoError(t, err)
	assert.Equal(t, []byte("pk-0x1"), key)
}

func TestGetPublicKeyNoActiveAccount(t *testing.T) {
	t.Parallel()
	mock := &mockAdapter{name: "suiet"}
	p := connect(t, mock)

	_, err := p.GetPublicKey()

	require.ErrorIs(t, err, kiterr.ErrNoActiveAccount)
}
