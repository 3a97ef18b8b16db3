// Package detect supplies the orchestrator with the adapters currently
// visible in the host environment. Sources are reactive data that the
// orchestrator re-reads on demand; it never polls or owns them.
package detect

import (
	"github.com/Shulepov/wallet-kit/adapter"
)

// Source produces the current list of detected adapters.
type Source interface {
	// Adapters returns the adapters visible right now, in detection order.
	Adapters() []adapter.Adapter
}

// Notifier is implemented by sources that announce membership changes.
type Notifier interface {
	// Subscribe returns a channel signaled after each change and a cancel
	// function releasing the subscription. Signals coalesce; a receiver
	// observing one re-reads Adapters for the current state.
	Subscribe() (<-chan struct{}, func())
}

// Static is a fixed adapter list, for embedders that run their own
// detection and for tests.
type Static struct {
	adapters []adapter.Adapter
}

// NewStatic returns a Source always reporting the given adapters.
func NewStatic(adapters ...adapter.Adapter) *Static {
	return &Static{adapters: adapters}
}

// Adapters returns the fixed adapter list.
func (s *Static) Adapters() []adapter.Adapter {
	return s.adapters
}
