package backend

import (
	"slices"

	"github.com/aussiebroadwan/shopfront/internal/order"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	ID   string
	Role jwtx.Role
}

func (a Actor) admin() bool { return a.Role == jwtx.RoleAdmin }

// PlaceOrder turns every cart line into a pending order, takes the
// quantities out of stock and empties the cart. Stock is checked for all
// lines before anything changes.
func (s *Store) PlaceOrder(userID, address, phone string) ([]shopsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(userID)
	if len(c.Lines) == 0 {
		return nil, fail(ErrInvalid, "Cart is empty")
	}
	for _, l := range c.Lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			return nil, fail(ErrNotFound, "Product not found")
		}
		if l.Quantity > p.Stock {
			return nil, fail(ErrInvalid, "Not enough stock for %s", p.Name)
		}
	}

	now := s.now()
	placed := make([]shopsdk.Order, 0, len(c.Lines))
	for _, l := range c.Lines {
		p := s.products[l.ProductID]
		p.Stock -= l.Quantity
		p.UpdatedAt = now

		o := &shopsdk.Order{
			ID:          s.newID(),
			User:        shopsdk.UserID(userID),
			Product:     shopsdk.ProductRef{Kind: shopsdk.RefID, ID: p.ID},
			Quantity:    l.Quantity,
			Price:       p.Price,
			TotalPrice:  cents(float64(l.Quantity) * p.Price),
			Address:     address,
			PhoneNumber: phone,
			Status:      order.Pending,
			PurchaseAt:  now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.orders[o.ID] = o
		s.ledger = append(s.ledger, o.ID)
		placed = append(placed, s.orderView(o, false))
	}

	c.Lines = nil
	c.UpdatedAt = now
	return placed, nil
}

// Orders lists the user's orders, newest first. Owners are bare ids.
func (s *Store) Orders(userID string) []shopsdk.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []shopsdk.Order{}
	for _, id := range slices.Backward(s.ledger) {
		if o := s.orders[id]; o.User.ID == userID {
			out = append(out, s.orderView(o, false))
		}
	}
	return out
}

// AllOrders lists every order, newest first, with owners expanded.
func (s *Store) AllOrders() []shopsdk.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shopsdk.Order, 0, len(s.ledger))
	for _, id := range slices.Backward(s.ledger) {
		out = append(out, s.orderView(s.orders[id], true))
	}
	return out
}

// Order returns one order to its owner or an admin.
func (s *Store) Order(id string, actor Actor) (shopsdk.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, err := s.visibleOrder(id, actor)
	if err != nil {
		return shopsdk.Order{}, err
	}
	return s.orderView(o, true), nil
}

// UpdateOrder edits delivery details of the actor's pending order.
func (s *Store) UpdateOrder(id string, actor Actor, address, phone string) (shopsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.visibleOrder(id, actor)
	if err != nil {
		return shopsdk.Order{}, err
	}
	if !order.CanModify(*o, actor.ID) {
		return shopsdk.Order{}, fail(ErrForbidden, "Order can no longer be modified")
	}

	if address != "" {
		o.Address = address
	}
	if phone != "" {
		o.PhoneNumber = phone
	}
	s.touch(o, actor, "update")
	return s.orderView(o, true), nil
}

// CancelOrder cancels the actor's pending order and restocks it.
func (s *Store) CancelOrder(id string, actor Actor) (shopsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.visibleOrder(id, actor)
	if err != nil {
		return shopsdk.Order{}, err
	}
	if err := order.Transition(order.ActorOwner, o.Status, order.Canceled); err != nil || !order.IsOwner(*o, actor.ID) {
		return shopsdk.Order{}, fail(ErrForbidden, "Order can no longer be canceled")
	}

	s.setStatus(o, actor, order.Canceled)
	return s.orderView(o, true), nil
}

// SetOrderStatus moves any order as an admin.
func (s *Store) SetOrderStatus(id string, actor Actor, status order.Status) (shopsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !actor.admin() {
		return shopsdk.Order{}, fail(ErrForbidden, "forbidden")
	}
	o, ok := s.orders[id]
	if !ok {
		return shopsdk.Order{}, fail(ErrNotFound, "Order not found")
	}
	if err := order.Transition(order.ActorAdmin, o.Status, status); err != nil {
		return shopsdk.Order{}, fail(ErrInvalid, "Cannot change status from %s to %s", o.Status, status)
	}

	s.setStatus(o, actor, status)
	return s.orderView(o, true), nil
}

// Stats summarizes the user's orders per status.
func (s *Store) Stats(userID string) shopsdk.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[order.Status]*shopsdk.StatusStat)
	st := shopsdk.OrderStats{Stats: []shopsdk.StatusStat{}}
	for _, id := range s.ledger {
		o := s.orders[id]
		if o.User.ID != userID {
			continue
		}
		agg, ok := byStatus[o.Status]
		if !ok {
			agg = &shopsdk.StatusStat{Status: o.Status}
			byStatus[o.Status] = agg
		}
		agg.Count++
		agg.TotalAmount = cents(agg.TotalAmount + o.TotalPrice)
		st.TotalOrders++
		if o.Status == order.Pending {
			st.PendingOrders++
		}
	}
	for _, status := range order.Statuses {
		if agg, ok := byStatus[status]; ok {
			st.Stats = append(st.Stats, *agg)
		}
	}
	st.CanCancel = st.PendingOrders > 0
	return st
}

// visibleOrder expects s.mu held.
func (s *Store) visibleOrder(id string, actor Actor) (*shopsdk.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, fail(ErrNotFound, "Order not found")
	}
	if !actor.admin() && !order.IsOwner(*o, actor.ID) {
		return nil, fail(ErrForbidden, "forbidden")
	}
	return o, nil
}

// setStatus expects s.mu held. Orders leaving for canceled or rejected
// give their quantity back to stock.
func (s *Store) setStatus(o *shopsdk.Order, actor Actor, status order.Status) {
	if status == order.Canceled || status == order.Rejected {
		if p, ok := s.products[o.Product.ID]; ok {
			p.Stock += o.Quantity
		}
	}
	o.Status = status
	s.touch(o, actor, "status:"+string(status))
}

func (s *Store) touch(o *shopsdk.Order, actor Actor, action string) {
	now := s.now()
	o.UpdatedAt = now
	o.LastUpdatedBy = &shopsdk.LastUpdate{User: shopsdk.UserID(actor.ID), Timestamp: now, Action: action}
}

// orderView copies o with the product expanded and, if asked, the owner.
// Expects s.mu held.
func (s *Store) orderView(o *shopsdk.Order, expandUser bool) shopsdk.Order {
	out := *o
	if p, ok := s.products[o.Product.ID]; ok {
		out.Product = expandProduct(p)
	}
	if expandUser {
		if u, ok := s.users[o.User.ID]; ok {
			out.User = shopsdk.UserRef{Kind: shopsdk.RefExpanded, ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	if o.LastUpdatedBy != nil {
		lu := *o.LastUpdatedBy
		out.LastUpdatedBy = &lu
	}
	return out
}
