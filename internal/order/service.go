package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/pkg/broadcast"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// ActionCancel is the confirmation action for cancelling an order.
const ActionCancel = "order.cancel"

var (
	// ErrEmptyCart is returned by Checkout when the cached cart has no
	// lines. No request is sent.
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrNothingToUpdate is returned by UpdateDetails for an empty form.
	ErrNothingToUpdate = errors.New("order: nothing to update")
)

// Backend is the part of shopsdk.Client the service calls.
type Backend interface {
	CreateOrder(ctx context.Context, req shopsdk.CreateOrderRequest) (*shopsdk.Order, error)
	ListOrders(ctx context.Context) ([]shopsdk.Order, error)
	ListAllOrders(ctx context.Context) ([]shopsdk.Order, error)
	GetOrder(ctx context.Context, id string) (*shopsdk.Order, error)
	UpdateOrder(ctx context.Context, id string, req shopsdk.UpdateOrderRequest) (*shopsdk.Order, error)
	CancelOrder(ctx context.Context, id string) (*shopsdk.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status shopsdk.OrderStatus) (*shopsdk.Order, error)
	OrderStats(ctx context.Context) (*shopsdk.OrderStats, error)
}

// Identity answers who is acting. session.Manager satisfies it.
type Identity interface {
	SubjectID() string
	IsAuthenticatedAdmin() bool
}

// Carts is the cart store as seen from checkout. cart.Store satisfies it.
type Carts interface {
	Current() *shopsdk.Cart
	GetCart(ctx context.Context) (*shopsdk.Cart, error)
}

// CheckoutForm is the delivery information collected at checkout.
type CheckoutForm struct {
	Address string `json:"address" validate:"notblank"`
	Phone   string `json:"phonenumber" validate:"notblank,phone"`
}

// DetailsForm edits delivery information. Empty fields are left as is.
type DetailsForm struct {
	Address string `json:"address" validate:"omitempty,notblank"`
	Phone   string `json:"phonenumber" validate:"omitempty,phone"`
}

// Overview is the account page's order summary.
type Overview struct {
	Orders []shopsdk.Order
	Stats  *shopsdk.OrderStats
	Spent  float64
}

// Service drives order mutations and keeps the list for the current view.
type Service struct {
	backend Backend
	who     Identity
	carts   Carts
	tickets *confirm.Book
	val     *validate.Validator
	log     *slog.Logger

	mu     sync.Mutex
	orders *broadcast.Value[[]shopsdk.Order]
}

// Option configures a Service.
type Option func(*Service)

// WithTickets shares a confirmation book with other components.
func WithTickets(b *confirm.Book) Option { return func(s *Service) { s.tickets = b } }

// WithValidator replaces validate.Default.
func WithValidator(v *validate.Validator) Option { return func(s *Service) { s.val = v } }

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// NewService creates a Service. carts may be nil when checkout is not used.
func NewService(backend Backend, who Identity, carts Carts, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		who:     who,
		carts:   carts,
		orders:  broadcast.NewValue[[]shopsdk.Order](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tickets == nil {
		s.tickets = confirm.NewBook(0, nil)
	}
	if s.val == nil {
		s.val = validate.Default
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Orders is the order list of the current view.
func (s *Service) Orders() broadcast.Reader[[]shopsdk.Order] { return s.orders }

// Quote prices the cached cart.
func (s *Service) Quote() Quote {
	if s.carts == nil {
		return Quote{}
	}
	return QuoteFor(s.carts.Current())
}

// Checkout places an order for the cached cart. The form is validated and
// an empty cart is rejected before anything is sent. On success the cart
// is refetched, which the backend has emptied.
func (s *Service) Checkout(ctx context.Context, form CheckoutForm) (*shopsdk.Order, error) {
	if s.carts == nil || s.carts.Current().Empty() {
		return nil, ErrEmptyCart
	}
	if err := s.val.StructCtx(ctx, form); err != nil {
		return nil, err
	}

	o, err := s.backend.CreateOrder(ctx, shopsdk.CreateOrderRequest{
		Address:     strings.TrimSpace(form.Address),
		PhoneNumber: validate.NormalizePhone(form.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("order checkout: %w", err)
	}

	if _, err := s.carts.GetCart(ctx); err != nil {
		s.log.WarnContext(ctx, "cart refresh after checkout failed", "order_id", o.ID, "error", err)
	}
	return o, nil
}

// LoadMine replaces the view with the caller's orders.
func (s *Service) LoadMine(ctx context.Context) ([]shopsdk.Order, error) {
	return s.load(ctx, "mine", s.backend.ListOrders)
}

// LoadAll replaces the view with every order. The backend rejects
// non-admins.
func (s *Service) LoadAll(ctx context.Context) ([]shopsdk.Order, error) {
	return s.load(ctx, "all", s.backend.ListAllOrders)
}

func (s *Service) load(ctx context.Context, which string, list func(context.Context) ([]shopsdk.Order, error)) ([]shopsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("order list %s: %w", which, err)
	}
	s.orders.Publish(orders)
	return orders, nil
}

// Get fetches one order from the backend.
func (s *Service) Get(ctx context.Context, id string) (*shopsdk.Order, error) {
	o, err := s.backend.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order get: %w", err)
	}
	return o, nil
}

// Stats fetches the caller's order summary.
func (s *Service) Stats(ctx context.Context) (*shopsdk.OrderStats, error) {
	st, err := s.backend.OrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return st, nil
}

// Overview loads the caller's orders and stats concurrently.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.LoadMine(gctx)
		ov.Orders = orders
		return err
	})
	g.Go(func() error {
		st, err := s.Stats(gctx)
		ov.Stats = st
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	ov.Spent = TotalSpent(ov.Orders)
	return ov, nil
}

// UpdateDetails edits the delivery details of an order the caller may
// modify. The check runs locally first; the backend checks again.
func (s *Service) UpdateDetails(ctx context.Context, id string, form DetailsForm) (*shopsdk.Order, error) {
	if strings.TrimSpace(form.Address) == "" && strings.TrimSpace(form.Phone) == "" {
		return nil, ErrNothingToUpdate
	}
	if err := s.val.StructCtx(ctx, form); err != nil {
		return nil, err
	}

	o, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(*o, s.who.SubjectID()) {
		return nil, fmt.Errorf("%w: modify order %s", ErrNotPermitted, id)
	}

	req := shopsdk.UpdateOrderRequest{Address: strings.TrimSpace(form.Address)}
	if form.Phone != "" {
		req.PhoneNumber = validate.NormalizePhone(form.Phone)
	}
	updated, err := s.backend.UpdateOrder(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("order update: %w", err)
	}
	s.replace(*updated)
	return updated, nil
}

// RequestCancel starts a two-step cancellation of an order the caller may
// cancel.
func (s *Service) RequestCancel(ctx context.Context, id string) (confirm.Ticket, error) {
	o, err := s.lookup(ctx, id)
	if err != nil {
		return confirm.Ticket{}, err
	}
	if !CanCancel(*o, s.who.SubjectID()) {
		return confirm.Ticket{}, fmt.Errorf("%w: cancel order %s", ErrNotPermitted, id)
	}
	return s.tickets.Request(ActionCancel, id), nil
}

// ConfirmCancel redeems a RequestCancel ticket. The order is fetched again
// and the check repeated, since it may have moved on in the meantime.
func (s *Service) ConfirmCancel(ctx context.Context, ticketID string) (*shopsdk.Order, error) {
	t, err := s.tickets.Redeem(ticketID, ActionCancel)
	if err != nil {
		return nil, err
	}

	o, err := s.Get(ctx, t.Target)
	if err != nil {
		return nil, err
	}
	if !CanCancel(*o, s.who.SubjectID()) {
		return nil, fmt.Errorf("%w: cancel order %s", ErrNotPermitted, o.ID)
	}

	canceled, err := s.backend.CancelOrder(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("order cancel: %w", err)
	}
	s.replace(*canceled)
	return canceled, nil
}

// AbortCancel drops a pending cancellation.
func (s *Service) AbortCancel(ticketID string) { s.tickets.Abort(ticketID) }

// SetStatus moves an order to status as an admin.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*shopsdk.Order, error) {
	if !s.who.IsAuthenticatedAdmin() {
		return nil, fmt.Errorf("%w: set status of order %s", ErrNotPermitted, id)
	}

	o, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Transition(ActorAdmin, o.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("order set status: %w", err)
	}
	s.replace(*updated)
	return updated, nil
}

// lookup prefers the cached view and falls back to the backend.
func (s *Service) lookup(ctx context.Context, id string) (*shopsdk.Order, error) {
	for _, o := range s.orders.Load() {
		if o.ID == id {
			return &o, nil
		}
	}
	return s.Get(ctx, id)
}

// replace swaps o into the view if it is listed there.
func (s *Service) replace(o shopsdk.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.orders.Load()
	i := slices.IndexFunc(cur, func(x shopsdk.Order) bool { return x.ID == o.ID })
	if i < 0 {
		return
	}
	next := slices.Clone(cur)
	next[i] = o
	s.orders.Publish(next)
}
