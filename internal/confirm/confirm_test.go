package confirm_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRequestRedeem(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Unix(1_700_000_000, 0)}
	b := confirm.NewBook(time.Minute, c.now)

	tk := b.Request("cancel-order", "o1")
	require.NotEmpty(t, tk.ID)
	require.Equal(t, "o1", tk.Target)
	require.Equal(t, 1, b.Pending())

	got, err := b.Redeem(tk.ID, "cancel-order")
	require.NoError(t, err)
	require.Equal(t, tk, got)

	_, err = b.Redeem(tk.ID, "cancel-order")
	require.ErrorIs(t, err, confirm.ErrUnknownTicket)
}

func TestRedeemWrongAction(t *testing.T) {
	t.Parallel()

	b := confirm.NewBook(0, nil)
	tk := b.Request("clear-cart", "")

	_, err := b.Redeem(tk.ID, "cancel-order")
	require.ErrorIs(t, err, confirm.ErrUnknownTicket)

	// Still redeemable for the right action.
	_, err = b.Redeem(tk.ID, "clear-cart")
	require.NoError(t, err)
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Unix(1_700_000_000, 0)}
	b := confirm.NewBook(time.Minute, c.now)

	tk := b.Request("remove-item", "Mug")
	c.advance(time.Minute)

	_, err := b.Redeem(tk.ID, "remove-item")
	require.ErrorIs(t, err, confirm.ErrExpired)
	require.Zero(t, b.Pending())
}

func TestAbortAndSweep(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Unix(1_700_000_000, 0)}
	b := confirm.NewBook(time.Minute, c.now)

	a := b.Request("x", "1")
	b.Request("x", "2")
	require.Equal(t, 2, b.Pending())

	b.Abort(a.ID)
	b.Abort("nope")
	require.Equal(t, 1, b.Pending())

	c.advance(2 * time.Minute)
	b.Request("x", "3")
	require.Equal(t, 1, b.Pending())
}
