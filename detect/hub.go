package detect

import (
	"sync"

	"github.com/Shulepov/wallet-kit/adapter"
)

// Hub is a mutable Source. Hosts register and remove adapters at runtime;
// subscribers receive a coalesced signal after every membership change.
// Registration order is preserved and is the detection order consumers see.
type Hub struct {
	mu       sync.RWMutex
	adapters []adapter.Adapter
	subs     map[int]chan struct{}
	nextSub  int
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan struct{}),
	}
}

// Adapters returns a copy of the current adapter list in registration order.
func (h *Hub) Adapters() []adapter.Adapter {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]adapter.Adapter, len(h.adapters))
	copy(out, h.adapters)
	return out
}

// Register adds an adapter to the hub. An existing adapter with the same
// name is replaced in place, keeping its position.
func (h *Hub) Register(ad adapter.Adapter) {
	if ad == nil {
		return
	}

	h.mu.Lock()
	replaced := false
	for i, existing := range h.adapters {
		if existing.Name() == ad.Name() {
			h.adapters[i] = ad
			replaced = true
			break
		}
	}
	if !replaced {
		h.adapters = append(h.adapters, ad)
	}
	h.notifyLocked()
	h.mu.Unlock()
}

// Unregister removes the adapter with the given name. Returns true if an
// adapter was removed.
func (h *Hub) Unregister(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, existing := range h.adapters {
		if existing.Name() == name {
			h.adapters = append(h.adapters[:i], h.adapters[i+1:]...)
			h.notifyLocked()
			return true
		}
	}
	return false
}

// SetAdapters replaces the whole adapter list, e.g. after a rescan.
func (h *Hub) SetAdapters(adapters []adapter.Adapter) {
	next := make([]adapter.Adapter, len(adapters))
	copy(next, adapters)

	h.mu.Lock()
	h.adapters = next
	h.notifyLocked()
	h.mu.Unlock()
}

// Subscribe returns a change-signal channel and its cancel function.
func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
	return ch, cancel
}

// notifyLocked signals every subscriber without blocking. A subscriber that
// already has a pending signal keeps it; signals coalesce.
func (h *Hub) notifyLocked() {
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

var _ Source = (*Hub)(nil)
var _ Notifier = (*Hub)(nil)
