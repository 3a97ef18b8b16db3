package provider

import (
	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/registry"
)

// Status is the connection state of the session.
type Status string

// Session states. A session starts Disconnected, moves to Connecting when a
// connect attempt begins, and reaches Connected only after the adapter's own
// connect succeeds. Failure or explicit disconnect returns it to
// Disconnected.
const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// String returns the status string.
func (s Status) String() string {
	return string(s)
}

// Session is the single mutable record pairing the connection status with
// the active adapter. The adapter is present exactly when the status is
// Connected; during Connecting it is nil and is set only on success.
type Session struct {
	Status  Status
	Adapter adapter.Adapter
}

// Callable reports whether guarded operations may run: an adapter is
// present and the session is Connected.
func (s Session) Callable() bool {
	return s.Adapter != nil && s.Status == StatusConnected
}

// Snapshot is the read-mostly view handed to UIs: session state, the active
// wallet and account, and the current registry view.
type Snapshot struct {
	Status     Status               `json:"status"`
	Connecting bool                 `json:"connecting"`
	Connected  bool                 `json:"connected"`
	Wallet     *registry.Descriptor `json:"wallet,omitempty"`
	Account    *adapter.Account     `json:"account,omitempty"`
	Address    string               `json:"address,omitempty"`
	Wallets    registry.View        `json:"wallets"`
}
