package backend

import (
	"math"
	"slices"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// Cart returns the user's cart, creating an empty one on first use.
func (s *Store) Cart(userID string) shopsdk.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView(userID, s.cartFor(userID))
}

// AddToCart changes the quantity of product name by delta. A line that
// drops to zero or below is removed.
func (s *Store) AddToCart(userID, name string, delta int) (shopsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delta == 0 {
		return shopsdk.Cart{}, fail(ErrInvalid, "Quantity must not be zero")
	}
	p, ok := s.productByName(name)
	if !ok {
		return shopsdk.Cart{}, fail(ErrNotFound, "Product not found")
	}

	c := s.cartFor(userID)
	i := slices.IndexFunc(c.Lines, func(l cartLine) bool { return l.ProductID == p.ID })

	qty := delta
	if i >= 0 {
		qty += c.Lines[i].Quantity
	}
	switch {
	case qty <= 0 && i >= 0:
		c.Lines = slices.Delete(c.Lines, i, i+1)
	case qty <= 0:
		return shopsdk.Cart{}, fail(ErrInvalid, "Product is not in the cart")
	case qty > p.Stock:
		return shopsdk.Cart{}, fail(ErrInvalid, "Not enough stock")
	case i >= 0:
		c.Lines[i].Quantity = qty
	default:
		c.Lines = append(c.Lines, cartLine{ProductID: p.ID, Quantity: qty})
	}

	c.UpdatedAt = s.now()
	return s.cartView(userID, c), nil
}

// RemoveFromCart drops the line for product name.
func (s *Store) RemoveFromCart(userID, name string) (shopsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(userID)
	p, ok := s.productByName(name)
	i := -1
	if ok {
		i = slices.IndexFunc(c.Lines, func(l cartLine) bool { return l.ProductID == p.ID })
	}
	if i < 0 {
		return shopsdk.Cart{}, fail(ErrNotFound, "Product is not in the cart")
	}

	c.Lines = slices.Delete(c.Lines, i, i+1)
	c.UpdatedAt = s.now()
	return s.cartView(userID, c), nil
}

// ClearCart empties the user's cart.
func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(userID)
	c.Lines = nil
	c.UpdatedAt = s.now()
}

// cartFor expects s.mu held for writing.
func (s *Store) cartFor(userID string) *cartRecord {
	c, ok := s.carts[userID]
	if !ok {
		now := s.now()
		c = &cartRecord{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
		s.carts[userID] = c
	}
	return c
}

// cartView prices c at current catalog prices. Lines whose product has
// gone are skipped. Expects s.mu held.
func (s *Store) cartView(userID string, c *cartRecord) shopsdk.Cart {
	out := shopsdk.Cart{
		ID:        c.ID,
		User:      userID,
		Items:     []shopsdk.CartItem{},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, l := range c.Lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			continue
		}
		total := cents(float64(l.Quantity) * p.Price)
		out.Items = append(out.Items, shopsdk.CartItem{
			ID:       c.ID + ":" + p.ID,
			Product:  expandProduct(p),
			Quantity: l.Quantity,
			Price:    p.Price,
			Total:    total,
		})
		out.CartTotal += total
	}
	out.CartTotal = cents(out.CartTotal)
	out.ItemsCount = len(out.Items)
	return out
}

func cents(v float64) float64 { return math.Round(v*100) / 100 }
