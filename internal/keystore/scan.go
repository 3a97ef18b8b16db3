package keystore

import (
	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/detect"
)

// Scan loads every agent under dir into an adapter slice, in name order.
// A missing directory yields an empty result, not an error.
func Scan(dir string, passphrase PassphraseFunc) ([]adapter.Adapter, error) {
	store := NewStore(dir)
	agents, err := store.List()
	if err != nil {
		return nil, err
	}

	adapters := make([]adapter.Adapter, 0, len(agents))
	for _, agent := range agents {
		adapters = append(adapters, NewAgentAdapter(agent, store, passphrase))
	}
	return adapters, nil
}

// ScanFunc binds a passphrase source to Scan in the shape the directory
// watcher consumes.
func ScanFunc(passphrase PassphraseFunc) detect.ScanFunc {
	return func(dir string) ([]adapter.Adapter, error) {
		return Scan(dir, passphrase)
	}
}
