// Package registry merges statically configured wallet descriptors with
// dynamically detected adapters into the availability view shown to users.
package registry

import (
	"github.com/Shulepov/wallet-kit/adapter"
)

// Descriptor describes one wallet's identity and availability.
// Installed is true exactly when a detected adapter is attached.
type Descriptor struct {
	Name        string          `json:"name"`
	IconURL     string          `json:"iconUrl,omitempty"`
	DownloadURL string          `json:"downloadUrl,omitempty"`
	Installed   bool            `json:"installed"`
	Adapter     adapter.Adapter `json:"-"`
}

// View partitions wallets by source. Configured preserves configuration
// order, Detected preserves detection order, and Available is the
// concatenation of both restricted to installed wallets. Never sorted.
type View struct {
	Configured []Descriptor `json:"configured"`
	Detected   []Descriptor `json:"detected"`
	Available  []Descriptor `json:"available"`
}

// Merge joins configured wallet metadata with detected adapters by name.
//
// A configured entry that matches a detected adapter keeps its own metadata
// (icon, download URL) but carries the detected adapter object; duplicate
// names are not deduplicated, and the first detected adapter with a matching
// name wins. Detected adapters with no configured counterpart are normalized
// into descriptors with no download metadata, since a download URL is
// irrelevant for a wallet that is already present.
//
// Merge is a pure function of its inputs; callers recompute it whenever
// either source changes.
func Merge(configured []Descriptor, detected []adapter.Adapter) View {
	view := View{
		Configured: make([]Descriptor, 0, len(configured)),
		Detected:   make([]Descriptor, 0, len(detected)),
	}

	for _, desc := range configured {
		merged := desc
		merged.Installed = false
		merged.Adapter = nil
		for _, ad := range detected {
			if ad.Name() == desc.Name {
				merged.Installed = true
				merged.Adapter = ad
				break
			}
		}
		view.Configured = append(view.Configured, merged)
	}

	for _, ad := range detected {
		if hasName(configured, ad.Name()) {
			continue
		}
		view.Detected = append(view.Detected, Descriptor{
			Name:      ad.Name(),
			Installed: true,
			Adapter:   ad,
		})
	}

	view.Available = make([]Descriptor, 0, len(view.Configured)+len(view.Detected))
	for _, desc := range view.Configured {
		if desc.Installed {
			view.Available = append(view.Available, desc)
		}
	}
	view.Available = append(view.Available, view.Detected...)

	return view
}

// Find returns the first descriptor with the given name.
func Find(descs []Descriptor, name string) (Descriptor, bool) {
	for _, desc := range descs {
		if desc.Name == name {
			return desc, true
		}
	}
	return Descriptor{}, false
}

// Names returns the descriptor names in order.
func Names(descs []Descriptor) []string {
	names := make([]string, 0, len(descs))
	for _, desc := range descs {
		names = append(names, desc.Name)
	}
	return names
}

func hasName(descs []Descriptor, name string) bool {
	for _, desc := range descs {
		if desc.Name == name {
			return true
		}
	}
	return false
}
