package provider

import (
	"context"

	"github.com/Shulepov/wallet-kit/detect"
)

// EventType classifies provider change notifications.
type EventType string

// Event types delivered to subscribers.
const (
	// EventStatusChanged fires on every session state transition.
	EventStatusChanged EventType = "statusChanged"

	// EventWalletsChanged fires when the detection source reports a change
	// in the visible adapter set.
	EventWalletsChanged EventType = "walletsChanged"
)

// Event is one change notification. Status and Wallet are set for
// EventStatusChanged; EventWalletsChanged carries neither, subscribers
// re-read Wallets for the current view.
type Event struct {
	Type   EventType `json:"type"`
	Status Status    `json:"status,omitempty"`
	Wallet string    `json:"wallet,omitempty"`
}

const eventBuffer = 8

// Subscribe returns a channel of change notifications and a cancel function.
// Delivery never blocks the orchestrator: a subscriber whose buffer is full
// misses events and should re-read Snapshot to resynchronize.
func (p *Provider) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	ch := make(chan Event, eventBuffer)
	p.subs[id] = ch
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
	return ch, cancel
}

// Watch forwards detection-source change signals to event subscribers until
// ctx is canceled. A source that cannot signal changes produces no wallet
// events; Watch still blocks so callers get one uniform lifecycle.
func (p *Provider) Watch(ctx context.Context) error {
	notifier, ok := p.source.(detect.Notifier)
	if !ok {
		<-ctx.Done()
		return ctx.Err()
	}

	ch, cancel := notifier.Subscribe()
	defer cancel()

	for {
		select {
		case <-ch:
			p.publish(Event{Type: EventWalletsChanged})
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// publish delivers an event to every subscriber without blocking.
func (p *Provider) publish(ev Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, ch := range p.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
