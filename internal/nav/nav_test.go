package nav_test

import (
	"testing"

	"github.com/aussiebroadwan/shopfront/internal/nav"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	h := nav.NewHistory(nav.Root)
	require.Equal(t, nav.Root, h.Current())

	h.Navigate(nav.Login)
	h.Navigate(nav.Home)

	require.Equal(t, nav.Home, h.Current())
	require.Equal(t, []string{nav.Root, nav.Login, nav.Home}, h.Trail())

	// Trail is a copy.
	trail := h.Trail()
	trail[0] = "x"
	require.Equal(t, nav.Root, h.Trail()[0])
}

func TestNavigatorFunc(t *testing.T) {
	t.Parallel()

	var got string
	nav.NavigatorFunc(func(p string) { got = p }).Navigate(nav.NotFound)
	require.Equal(t, nav.NotFound, got)

	nav.Discard.Navigate(nav.Home)
}
