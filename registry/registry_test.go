package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shulepov/wallet-kit/adapter"
	"github.com/Shulepov/wallet-kit/registry"
)

type fakeAdapter struct {
	name string
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Connect(_ context.Context, _ *adapter.ConnectOptions) (*adapter.ConnectResult, error) {
	return &adapter.ConnectResult{}, nil
}

func (f *fakeAdapter) Accounts() []adapter.Account { return nil }

func (f *fakeAdapter) HasFeature(_ adapter.Feature) bool { return false }

func TestMergeConfiguredAndDetected(t *testing.T) {
	t.Parallel()
	adapterA := &fakeAdapter{name: "A"}
	configured := []registry.Descriptor{
		{Name: "A", IconURL: "https://a.example/icon.png", DownloadURL: "https://a.example/get"},
		{Name: "B", DownloadURL: "https://b.example/get"},
	}

	view := registry.Merge(configured, []adapter.Adapter{adapterA})

	require.Len(t, view.Configured, 2)
	assert.True(t, view.Configured[0].Installed)
	assert.Same(t, adapterA, view.Configured[0].Adapter)
	assert.False(t, view.Configured[1].Installed)
	assert.Nil(t, view.Configured[1].Adapter)

	assert.Empty(t, view.Detected)

	require.Len(t, view.Available, 1)
	assert.Equal(t, "A", view.Available[0].Name)
}

func TestMergeAvailableOnlyInstalled(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		configured []registry.Descriptor
		detected   []adapter.Adapter
	}{
		{"both empty", nil, nil},
		{"configured only", []registry.Descriptor{{Name: "A"}, {Name: "B"}}, nil},
		{"detected only", nil, []adapter.Adapter{&fakeAdapter{name: "X"}}},
		{
			"partial overlap",
			[]registry.Descriptor{{Name: "A"}, {Name: "B"}, {Name: "C"}},
			[]adapter.Adapter{&fakeAdapter{name: "B"}, &fakeAdapter{name: "Z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := registry.Merge(tt.configured, tt.detected)
			for _, desc := range view.Available {
				assert.True(t, desc.Installed, "available wallet %q must be installed", desc.Name)
				assert.NotNil(t, desc.Adapter, "available wallet %q must carry an adapter", desc.Name)
			}
		})
	}
}

func TestMergeMetadataPrecedence(t *testing.T) {
	t.Parallel()
	// A wallet in both lists keeps configured metadata but the detected adapter.
	detected := &fakeAdapter{name: "suiet"}
	configured := []registry.Descriptor{{
		Name:        "suiet",
		IconURL:     "https://suiet.app/icon.png",
		DownloadURL: "https://suiet.app/get",
	}}

	view := registry.Merge(configured, []adapter.Adapter{detected})

	require.Len(t, view.Available, 1)
	got := view.Available[0]
	assert.Equal(t, "https://suiet.app/icon.png", got.IconURL)
	assert.Equal(t, "https://suiet.app/get", got.DownloadURL)
	assert.Same(t, detected, got.Adapter)
}

func TestMergeDetectedOnlyNormalization(t *testing.T) {
	t.Parallel()
	detected := &fakeAdapter{name: "martian"}

	view := registry.Merge(nil, []adapter.Adapter{detected})

	require.Len(t, view.Detected, 1)
	got := view.Detected[0]
	assert.Equal(t, "martian", got.Name)
	assert.True(t, got.Installed)
	assert.Empty(t, got.IconURL)
	assert.Empty(t, got.DownloadURL)
	assert.Same(t, detected, got.Adapter)

	require.Len(t, view.Available, 1)
	assert.Equal(t, "martian", view.Available[0].Name)
}

func TestMergeOrderStable(t *testing.T) {
	t.Parallel()
	configured := []registry.Descriptor{{Name: "zeta"}, {Name: "alpha"}}
	detected := []adapter.Adapter{
		&fakeAdapter{name: "zeta"},
		&fakeAdapter{name: "alpha"},
		&fakeAdapter{name: "omega"},
		&fakeAdapter{name: "beta"},
	}

	view := registry.Merge(configured, detected)

	// Configured order first, then detection order; never sorted by name.
	assert.Equal(t, []string{"zeta", "alpha", "omega", "beta"}, registry.Names(view.Available))
}

func TestMergeDuplicateConfiguredNames(t *testing.T) {
	t.Parallel()
	first := &fakeAdapter{name: "dup"}
	second := &fakeAdapter{name: "dup"}
	configured := []registry.Descriptor{{Name: "dup"}, {Name: "dup"}}

	view := registry.Merge(configured, []adapter.Adapter{first, second})

	// Duplicates are not collapsed; each configured entry attaches the first
	// detected adapter with a matching name.
	require.Len(t, view.Configured, 2)
	assert.Same(t, first, view.Configured[0].Adapter)
	assert.Same(t, first, view.Configured[1].Adapter)
	assert.Empty(t, view.Detected)
	assert.Len(t, view.Available, 2)
}

func TestMergeEmptyInputs(t *testing.T) {
	t.Parallel()

	t.Run("no detected", func(t *testing.T) {
		t.Parallel()
		configured := []registry.Descriptor{{Name: "A", DownloadURL: "https://a.example"}}
		view := registry.Merge(configured, nil)

		require.Len(t, view.Configured, 1)
		assert.False(t, view.Configured[0].Installed)
		assert.Nil(t, view.Configured[0].Adapter)
		assert.Empty(t, view.Available)
	})

	t.Run("no configured", func(t *testing.T) {
		t.Parallel()
		view := registry.Merge(nil, nil)
		assert.Empty(t, view.Configured)
		assert.Empty(t, view.Detected)
		assert.Empty(t, view.Available)
	})
}

func TestMergeIgnoresStaleInstalledFlag(t *testing.T) {
	t.Parallel()
	// Input descriptors may carry flags from a previous merge; Merge derives
	// Installed strictly from the detected list.
	configured := []registry.Descriptor{{
		Name:      "ghost",
		Installed: true,
		Adapter:   &fakeAdapter{name: "ghost"},
	}}

	view := registry.Merge(configured, nil)

	require.Len(t, view.Configured, 1)
	assert.False(t, view.Configured[0].Installed)
	assert.Nil(t, view.Configured[0].Adapter)
	assert.Empty(t, view.Available)
}

func TestFind(t *testing.T) {
	t.Parallel()
	descs := []registry.Descriptor{{Name: "A"}, {Name: "B"}}

	got, ok := registry.Find(descs, "B")
	require.True(t, ok)
	assert.Equal(t, "B", got.Name)

	_, ok = registry.Find(descs, "missing")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	t.Parallel()
	descs := []registry.Descriptor{{Name: "one"}, {Name: "two"}}
	assert.Equal(t, []string{"one", "two"}, registry.Names(descs))
	assert.Empty(t, registry.Names(nil))
}
