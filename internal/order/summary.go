package order

import (
	"math"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// Checkout pricing applied on top of the cart total.
const (
	ShippingFee = 10.00
	TaxRate     = 0.08
)

// Quote is the price breakdown shown before placing an order.
type Quote struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// QuoteFor prices a cart. An empty cart quotes zero throughout.
func QuoteFor(c *shopsdk.Cart) Quote {
	if c.Empty() {
		return Quote{}
	}
	q := Quote{
		Subtotal: c.CartTotal,
		Shipping: ShippingFee,
		Tax:      roundCents(c.CartTotal * TaxRate),
	}
	q.Total = roundCents(q.Subtotal + q.Shipping + q.Tax)
	return q
}

// TotalSpent sums the totals of delivered orders.
func TotalSpent(orders []shopsdk.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.Status == Delivered {
			sum += o.TotalPrice
		}
	}
	return roundCents(sum)
}

// Revenue sums the totals of orders that were not canceled or rejected.
func Revenue(orders []shopsdk.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.Status != Canceled && o.Status != Rejected {
			sum += o.TotalPrice
		}
	}
	return roundCents(sum)
}

// CountByStatus tallies orders per status. Every known status is present.
func CountByStatus(orders []shopsdk.Order) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// Filter returns the orders in status s, or all orders when s is empty.
func Filter(orders []shopsdk.Order, s Status) []shopsdk.Order {
	if s == "" {
		return orders
	}
	out := make([]shopsdk.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
