package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/shopfront/internal/session"
	"github.com/aussiebroadwan/shopfront/internal/session/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var _ session.Slot = (*sqlite.Slot)(nil)

func TestSlotLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")

	slot, err := sqlite.Open(path)
	require.NoError(t, err)

	_, ok, err := slot.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, slot.Set(ctx, "first"))
	require.NoError(t, slot.Set(ctx, "second"))

	tok, ok, err := slot.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", tok)
	require.NoError(t, slot.Close())

	// Survives reopening, and migrations are idempotent.
	slot, err = sqlite.Open(path)
	require.NoError(t, err)
	defer slot.Close()

	tok, ok, err = slot.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", tok)

	require.NoError(t, slot.Clear(ctx))
	require.NoError(t, slot.Clear(ctx))

	_, ok, err = slot.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
