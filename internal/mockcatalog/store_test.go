package mockcatalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSeeded(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	entries, err := Fixtures()
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), entries))
	return store
}

func TestFixtures_AreOrderedAndUnique(t *testing.T) {
	entries, err := Fixtures()
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	seen := map[string]bool{}
	for i, e := range entries {
		assert.Equal(t, i+1, e.ID, "ids are contiguous from 1")
		assert.False(t, seen[e.Name], "duplicate %s", e.Name)
		seen[e.Name] = true
		assert.NotEmpty(t, e.Types, e.Name)
	}
	assert.True(t, seen["pikachu"])
	assert.True(t, seen["charizard"])
}

func TestStore_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	store := openSeeded(t)
	ctx := context.Background()

	n, err := store.Count(ctx, " CHAR ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := store.List(ctx, "char", 0, 20)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, names)
}

func TestStore_ListWindows(t *testing.T) {
	store := openSeeded(t)
	ctx := context.Background()

	all, err := store.Count(ctx, "")
	require.NoError(t, err)

	first, err := store.List(ctx, "", 0, 5)
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, "bulbasaur", first[0].Name)

	tail, err := store.List(ctx, "", all-2, 5)
	require.NoError(t, err)
	assert.Len(t, tail, 2)

	past, err := store.List(ctx, "", all+10, 5)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestStore_GetByIDOrName(t *testing.T) {
	store := openSeeded(t)
	ctx := context.Background()

	byID, err := store.Get(ctx, "25")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", byID.Name)
	assert.Equal(t, []string{"static", "lightning-rod"}, byID.Abilities)

	byName, err := store.Get(ctx, "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, byID, byName)

	_, err = store.Get(ctx, "missingno")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FileBackedReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, []Entry{{ID: 1, Name: "Bulbasaur", Height: 7, Weight: 69}}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	e, err := store.Get(ctx, "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, 7, e.Height)
	assert.Empty(t, e.Abilities)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
