package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/internal/order"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	orders   map[string]shopsdk.Order
	created  []shopsdk.CreateOrderRequest
	failNext error
}

func newFakeBackend(orders ...shopsdk.Order) *fakeBackend {
	f := &fakeBackend{orders: map[string]shopsdk.Order{}}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeBackend) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) set(id string, fn func(*shopsdk.Order)) *shopsdk.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.orders[id]
	fn(&o)
	f.orders[id] = o
	return &o
}

func (f *fakeBackend) CreateOrder(_ context.Context, req shopsdk.CreateOrderRequest) (*shopsdk.Order, error) {
	if err := f.record("create"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	o := shopsdk.Order{ID: "new", User: shopsdk.UserID("u1"), Status: order.Pending, Address: req.Address, PhoneNumber: req.PhoneNumber}
	f.orders[o.ID] = o
	return &o, nil
}

func (f *fakeBackend) ListOrders(context.Context) ([]shopsdk.Order, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []shopsdk.Order
	for _, id := range []string{"o1", "o2", "o3"} {
		if o, ok := f.orders[id]; ok && o.User.ID == "u1" {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListAllOrders(context.Context) ([]shopsdk.Order, error) {
	if err := f.record("list_all"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []shopsdk.Order
	for _, id := range []string{"o1", "o2", "o3"} {
		if o, ok := f.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetOrder(_ context.Context, id string) (*shopsdk.Order, error) {
	if err := f.record("get " + id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, &shopsdk.APIError{StatusCode: 404, Message: "Order not found"}
	}
	return &o, nil
}

func (f *fakeBackend) UpdateOrder(_ context.Context, id string, req shopsdk.UpdateOrderRequest) (*shopsdk.Order, error) {
	if err := f.record("update " + id); err != nil {
		return nil, err
	}
	return f.set(id, func(o *shopsdk.Order) {
		if req.Address != "" {
			o.Address = req.Address
		}
		if req.PhoneNumber != "" {
			o.PhoneNumber = req.PhoneNumber
		}
	}), nil
}

func (f *fakeBackend) CancelOrder(_ context.Context, id string) (*shopsdk.Order, error) {
	if err := f.record("cancel " + id); err != nil {
		return nil, err
	}
	return f.set(id, func(o *shopsdk.Order) { o.Status = order.Canceled }), nil
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, id string, st shopsdk.OrderStatus) (*shopsdk.Order, error) {
	if err := f.record("status " + id); err != nil {
		return nil, err
	}
	return f.set(id, func(o *shopsdk.Order) { o.Status = st }), nil
}

func (f *fakeBackend) OrderStats(context.Context) (*shopsdk.OrderStats, error) {
	if err := f.record("stats"); err != nil {
		return nil, err
	}
	return &shopsdk.OrderStats{TotalOrders: 3, PendingOrders: 1, CanCancel: true}, nil
}

type identity struct {
	id    string
	admin bool
}

func (i identity) SubjectID() string          { return i.id }
func (i identity) IsAuthenticatedAdmin() bool { return i.admin }

type fakeCarts struct {
	cur     *shopsdk.Cart
	fetches int
}

func (c *fakeCarts) Current() *shopsdk.Cart { return c.cur }

func (c *fakeCarts) GetCart(context.Context) (*shopsdk.Cart, error) {
	c.fetches++
	c.cur = &shopsdk.Cart{ID: "c1"}
	return c.cur, nil
}

func fullCart() *shopsdk.Cart {
	return &shopsdk.Cart{
		ID:        "c1",
		Items:     []shopsdk.CartItem{{Product: shopsdk.ProductRef{Name: "Mug"}, Quantity: 1, Price: 4, Total: 4}},
		CartTotal: 4,
	}
}

func seeded() *fakeBackend {
	return newFakeBackend(
		shopsdk.Order{ID: "o1", User: shopsdk.UserID("u1"), Status: order.Pending, TotalPrice: 10},
		shopsdk.Order{ID: "o2", User: shopsdk.UserRef{Kind: shopsdk.RefExpanded, ID: "u1", Name: "Alice"}, Status: order.Delivered, TotalPrice: 25},
		shopsdk.Order{ID: "o3", User: shopsdk.UserID("u2"), Status: order.Pending, TotalPrice: 5},
	)
}

func newService(b order.Backend, who order.Identity, carts order.Carts) *order.Service {
	return order.NewService(b, who, carts, order.WithLogger(slogx.Discard()))
}

func TestCheckout(t *testing.T) {
	t.Parallel()

	t.Run("empty cart is rejected before any call", func(t *testing.T) {
		b := seeded()
		for _, c := range []*shopsdk.Cart{nil, {ID: "c1"}} {
			svc := newService(b, identity{id: "u1"}, &fakeCarts{cur: c})
			_, err := svc.Checkout(context.Background(), order.CheckoutForm{Address: "1 Main St", Phone: "0400000000"})
			require.ErrorIs(t, err, order.ErrEmptyCart)
		}
		require.Empty(t, b.Calls())
	})

	t.Run("invalid form is rejected before any call", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, &fakeCarts{cur: fullCart()})

		_, err := svc.Checkout(context.Background(), order.CheckoutForm{Address: "  ", Phone: "12ab"})
		require.True(t, validate.HasField(err, "address"))
		require.True(t, validate.HasField(err, "phonenumber"))
		require.Empty(t, b.Calls())
	})

	t.Run("places the order and refreshes the cart", func(t *testing.T) {
		b := seeded()
		carts := &fakeCarts{cur: fullCart()}
		svc := newService(b, identity{id: "u1"}, carts)

		o, err := svc.Checkout(context.Background(), order.CheckoutForm{Address: " 1 Main St ", Phone: "0400 000 000"})
		require.NoError(t, err)
		require.Equal(t, "new", o.ID)
		require.Equal(t, []shopsdk.CreateOrderRequest{{Address: "1 Main St", PhoneNumber: "0400000000"}}, b.created)
		require.Equal(t, 1, carts.fetches)
		require.True(t, carts.cur.Empty())
	})

	t.Run("quote follows the cached cart", func(t *testing.T) {
		svc := newService(seeded(), identity{id: "u1"}, &fakeCarts{cur: fullCart()})
		require.InDelta(t, 14.32, svc.Quote().Total, 0.001)
	})
}

func TestLoadPublishesView(t *testing.T) {
	t.Parallel()

	svc := newService(seeded(), identity{id: "u1"}, nil)
	ch, cancel := svc.Orders().Subscribe()
	defer cancel()
	require.Nil(t, <-ch)

	mine, err := svc.LoadMine(context.Background())
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Len(t, <-ch, 2)

	all, err := svc.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Len(t, svc.Orders().Load(), 3)
}

func TestOverview(t *testing.T) {
	t.Parallel()

	t.Run("loads orders and stats", func(t *testing.T) {
		svc := newService(seeded(), identity{id: "u1"}, nil)
		ov, err := svc.Overview(context.Background())
		require.NoError(t, err)
		require.Len(t, ov.Orders, 2)
		require.Equal(t, 3, ov.Stats.TotalOrders)
		require.InDelta(t, 25.0, ov.Spent, 0.001)
	})

	t.Run("any failure fails the whole", func(t *testing.T) {
		b := seeded()
		b.failNext = errors.New("boom")
		svc := newService(b, identity{id: "u1"}, nil)
		_, err := svc.Overview(context.Background())
		require.Error(t, err)
	})
}

func TestUpdateDetails(t *testing.T) {
	t.Parallel()

	t.Run("owner edits a pending order", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)
		_, err := svc.LoadMine(context.Background())
		require.NoError(t, err)

		o, err := svc.UpdateDetails(context.Background(), "o1", order.DetailsForm{Address: "2 High St"})
		require.NoError(t, err)
		require.Equal(t, "2 High St", o.Address)
		require.Equal(t, "2 High St", svc.Orders().Load()[0].Address)
		require.Equal(t, []string{"list", "update o1"}, b.Calls())
	})

	t.Run("shipped order is refused locally", func(t *testing.T) {
		b := seeded()
		b.set("o1", func(o *shopsdk.Order) { o.Status = order.Shipped })
		svc := newService(b, identity{id: "u1"}, nil)

		_, err := svc.UpdateDetails(context.Background(), "o1", order.DetailsForm{Address: "x"})
		require.ErrorIs(t, err, order.ErrNotPermitted)
		require.Equal(t, []string{"get o1"}, b.Calls())
	})

	t.Run("someone else's order is refused", func(t *testing.T) {
		svc := newService(seeded(), identity{id: "u1"}, nil)
		_, err := svc.UpdateDetails(context.Background(), "o3", order.DetailsForm{Address: "x"})
		require.ErrorIs(t, err, order.ErrNotPermitted)
	})

	t.Run("empty and invalid forms", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)

		_, err := svc.UpdateDetails(context.Background(), "o1", order.DetailsForm{})
		require.ErrorIs(t, err, order.ErrNothingToUpdate)

		_, err = svc.UpdateDetails(context.Background(), "o1", order.DetailsForm{Phone: "123"})
		require.True(t, validate.HasField(err, "phonenumber"))
		require.Empty(t, b.Calls())
	})
}

func TestTwoStepCancel(t *testing.T) {
	t.Parallel()

	t.Run("request then confirm cancels", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)

		tk, err := svc.RequestCancel(context.Background(), "o1")
		require.NoError(t, err)
		require.Equal(t, order.ActionCancel, tk.Action)
		require.NotContains(t, b.Calls(), "cancel o1")

		o, err := svc.ConfirmCancel(context.Background(), tk.ID)
		require.NoError(t, err)
		require.Equal(t, order.Canceled, o.Status)

		_, err = svc.ConfirmCancel(context.Background(), tk.ID)
		require.ErrorIs(t, err, confirm.ErrUnknownTicket)
	})

	t.Run("abort leaves the order alone", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)

		tk, err := svc.RequestCancel(context.Background(), "o1")
		require.NoError(t, err)
		svc.AbortCancel(tk.ID)

		_, err = svc.ConfirmCancel(context.Background(), tk.ID)
		require.ErrorIs(t, err, confirm.ErrUnknownTicket)
		require.NotContains(t, b.Calls(), "cancel o1")
	})

	t.Run("order shipped between request and confirm", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)

		tk, err := svc.RequestCancel(context.Background(), "o1")
		require.NoError(t, err)
		b.set("o1", func(o *shopsdk.Order) { o.Status = order.Shipped })

		_, err = svc.ConfirmCancel(context.Background(), tk.ID)
		require.ErrorIs(t, err, order.ErrNotPermitted)
		require.NotContains(t, b.Calls(), "cancel o1")
	})

	t.Run("not the owner", func(t *testing.T) {
		svc := newService(seeded(), identity{id: "u2"}, nil)
		_, err := svc.RequestCancel(context.Background(), "o1")
		require.ErrorIs(t, err, order.ErrNotPermitted)
	})
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	t.Run("admin ships a pending order", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "admin", admin: true}, nil)
		_, err := svc.LoadAll(context.Background())
		require.NoError(t, err)

		o, err := svc.SetStatus(context.Background(), "o3", order.Shipped)
		require.NoError(t, err)
		require.Equal(t, order.Shipped, o.Status)
		require.Equal(t, order.Shipped, svc.Orders().Load()[2].Status)
	})

	t.Run("terminal order is refused locally", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "admin", admin: true}, nil)
		_, err := svc.SetStatus(context.Background(), "o2", order.Pending)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		require.Equal(t, []string{"get o2"}, b.Calls())
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		b := seeded()
		svc := newService(b, identity{id: "u1"}, nil)
		_, err := svc.SetStatus(context.Background(), "o1", order.Shipped)
		require.ErrorIs(t, err, order.ErrNotPermitted)
		require.Empty(t, b.Calls())
	})
}
