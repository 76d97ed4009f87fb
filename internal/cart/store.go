// Package cart keeps the single authoritative copy of the current actor's
// cart. Every mutation goes to the backend and is followed by a refetch;
// the store never computes post-mutation state itself.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/pkg/broadcast"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// Confirmation actions.
const (
	ActionRemoveItem = "cart.remove"
	ActionClear      = "cart.clear"
)

// ErrNotInCart is returned when decrementing a product the cart does not hold.
var ErrNotInCart = errors.New("cart: product not in cart")

// Backend is the part of shopsdk.Client the store calls.
type Backend interface {
	GetCart(ctx context.Context) (*shopsdk.Cart, error)
	AddToCart(ctx context.Context, name string, quantity int) (*shopsdk.Cart, error)
	RemoveFromCart(ctx context.Context, name string) (*shopsdk.Cart, error)
	ClearCart(ctx context.Context) error
}

// Store owns the cart cache and the "cart changed" signal.
type Store struct {
	backend Backend
	tickets *confirm.Book
	log     *slog.Logger

	// mu serializes mutate-then-refetch cycles of this instance.
	mu      sync.Mutex
	cart    *broadcast.Value[*shopsdk.Cart]
	changed *broadcast.Signal
}

// New creates a store with an empty cache. tickets may be nil when the
// two-step commands are not used.
func New(backend Backend, tickets *confirm.Book, logger *slog.Logger) *Store {
	if tickets == nil {
		tickets = confirm.NewBook(0, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		tickets: tickets,
		log:     logger,
		cart:    broadcast.NewValue[*shopsdk.Cart](nil),
		changed: broadcast.NewSignal(),
	}
}

// Cart is the read-only cart cache. nil means no cart loaded.
func (s *Store) Cart() broadcast.Reader[*shopsdk.Cart] { return s.cart }

// Changed pulses after every successful refetch.
func (s *Store) Changed() broadcast.Notifier { return s.changed }

// Current returns the cached cart without a backend call.
func (s *Store) Current() *shopsdk.Cart { return s.cart.Load() }

// Count is the cached number of units in the cart.
func (s *Store) Count() int { return s.cart.Load().Count() }

// GetCart fetches the cart, replaces the cache and returns it.
func (s *Store) GetCart(ctx context.Context) (*shopsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refetch(ctx)
}

// AddItem changes the quantity of product by delta, which may be
// negative. A decrement that would leave the line at zero or below removes
// the line instead. The decision is made under the store lock against the
// cached line, refetching first when the cache does not hold it. A zero
// delta only refetches.
func (s *Store) AddItem(ctx context.Context, product string, delta int) (*shopsdk.Cart, error) {
	if delta == 0 {
		return s.GetCart(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if delta > 0 {
		return s.apply(ctx, "add", func(ctx context.Context) error {
			_, err := s.backend.AddToCart(ctx, product, delta)
			return err
		})
	}

	item, err := s.line(ctx, product)
	if err != nil {
		return nil, err
	}
	name := item.Product.Label()
	if item.Quantity+delta <= 0 {
		return s.apply(ctx, "remove", func(ctx context.Context) error {
			_, err := s.backend.RemoveFromCart(ctx, name)
			return err
		})
	}
	return s.apply(ctx, "add", func(ctx context.Context) error {
		_, err := s.backend.AddToCart(ctx, name, delta)
		return err
	})
}

// RemoveItem drops the line for product.
func (s *Store) RemoveItem(ctx context.Context, product string) (*shopsdk.Cart, error) {
	return s.mutate(ctx, "remove", func(ctx context.Context) error {
		_, err := s.backend.RemoveFromCart(ctx, product)
		return err
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (*shopsdk.Cart, error) {
	return s.mutate(ctx, "clear", s.backend.ClearCart)
}

// Increase adds one unit of item's product.
func (s *Store) Increase(ctx context.Context, item shopsdk.CartItem) (*shopsdk.Cart, error) {
	return s.AddItem(ctx, item.Product.Name, 1)
}

// Decrease takes one unit away. The last unit removes the line rather than
// leaving a zero-quantity item.
func (s *Store) Decrease(ctx context.Context, item shopsdk.CartItem) (*shopsdk.Cart, error) {
	return s.AddItem(ctx, item.Product.Label(), -1)
}

// Reset drops the cache without a backend call, for logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Publish(nil)
	s.changed.Notify()
}

// RequestRemove starts a two-step removal of product.
func (s *Store) RequestRemove(product string) confirm.Ticket {
	return s.tickets.Request(ActionRemoveItem, product)
}

// ConfirmRemove redeems a RequestRemove ticket.
func (s *Store) ConfirmRemove(ctx context.Context, ticketID string) (*shopsdk.Cart, error) {
	t, err := s.tickets.Redeem(ticketID, ActionRemoveItem)
	if err != nil {
		return nil, err
	}
	return s.RemoveItem(ctx, t.Target)
}

// RequestClear starts a two-step clear.
func (s *Store) RequestClear() confirm.Ticket {
	return s.tickets.Request(ActionClear, "")
}

// ConfirmClear redeems a RequestClear ticket.
func (s *Store) ConfirmClear(ctx context.Context, ticketID string) (*shopsdk.Cart, error) {
	if _, err := s.tickets.Redeem(ticketID, ActionClear); err != nil {
		return nil, err
	}
	return s.Clear(ctx)
}

// Abort drops a pending removal or clear.
func (s *Store) Abort(ticketID string) { s.tickets.Abort(ticketID) }

// mutate runs call and then refetches, holding the lock across both so the
// refetch is strictly after the backend acknowledged the mutation.
func (s *Store) mutate(ctx context.Context, op string, call func(context.Context) error) (*shopsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, op, call)
}

// apply is mutate with s.mu already held.
func (s *Store) apply(ctx context.Context, op string, call func(context.Context) error) (*shopsdk.Cart, error) {
	if err := call(ctx); err != nil {
		return nil, fmt.Errorf("cart %s: %w", op, err)
	}
	return s.refetch(ctx)
}

// line returns the cart line for product with s.mu held.
func (s *Store) line(ctx context.Context, product string) (shopsdk.CartItem, error) {
	if item, ok := s.cart.Load().Find(product); ok {
		return item, nil
	}
	c, err := s.refetch(ctx)
	if err != nil {
		return shopsdk.CartItem{}, err
	}
	item, ok := c.Find(product)
	if !ok {
		return shopsdk.CartItem{}, fmt.Errorf("%w: %s", ErrNotInCart, product)
	}
	return item, nil
}

func (s *Store) refetch(ctx context.Context) (*shopsdk.Cart, error) {
	c, err := s.backend.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("cart fetch: %w", err)
	}

	if !c.Consistent() {
		s.log.Warn("cart totals disagree with lines", "cart_id", c.ID, "cart_total", c.CartTotal)
	}

	s.cart.Publish(c)
	s.changed.Notify()
	return c, nil
}
