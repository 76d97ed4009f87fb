package shopsdk

import (
	"math"
	"time"

	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
)

// ============================================================================
// Cart
// ============================================================================

// CartItem is one cart line.
type CartItem struct {
	ID       string     `json:"_id,omitempty"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Price    float64    `json:"price"`
	Total    float64    `json:"total"`
}

// Cart is the server's cart for the current user.
type Cart struct {
	ID         string     `json:"_id"`
	User       string     `json:"user"`
	Items      []CartItem `json:"items"`
	CartTotal  float64    `json:"cartTotal"`
	ItemsCount int        `json:"itemsCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Count is the sum of line quantities. A nil cart counts zero.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// Consistent reports whether every line total is quantity × price and the
// cart total is the sum of line totals, to the cent.
func (c *Cart) Consistent() bool {
	if c == nil {
		return true
	}
	var sum float64
	for _, it := range c.Items {
		if !sameCents(it.Total, float64(it.Quantity)*it.Price) {
			return false
		}
		sum += it.Total
	}
	return sameCents(sum, c.CartTotal)
}

// Find returns the line for a product, matched by name or by id.
func (c *Cart) Find(product string) (CartItem, bool) {
	if c == nil || product == "" {
		return CartItem{}, false
	}
	for _, it := range c.Items {
		if it.Product.Name == product || it.Product.ID == product {
			return it, true
		}
	}
	return CartItem{}, false
}

func sameCents(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// ============================================================================
// Orders
// ============================================================================

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
	StatusRejected  OrderStatus = "rejected"
)

// LastUpdate records who last changed an order.
type LastUpdate struct {
	User      UserRef   `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// Order is one purchased product line.
type Order struct {
	ID            string      `json:"_id"`
	User          UserRef     `json:"user"`
	Product       ProductRef  `json:"product"`
	Quantity      int         `json:"quantity"`
	Price         float64     `json:"price"`
	TotalPrice    float64     `json:"totalPrice"`
	Address       string      `json:"address"`
	PhoneNumber   string      `json:"phonenumber"`
	Status        OrderStatus `json:"status"`
	PurchaseAt    time.Time   `json:"purchaseAt"`
	LastUpdatedBy *LastUpdate `json:"lastUpdatedBy,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// StatusStat aggregates orders of one status.
type StatusStat struct {
	Status      OrderStatus `json:"_id"`
	Count       int         `json:"count"`
	TotalAmount float64     `json:"totalAmount"`
}

// OrderStats is the backend's per-user order summary.
type OrderStats struct {
	Stats         []StatusStat `json:"stats"`
	TotalOrders   int          `json:"totalOrders"`
	PendingOrders int          `json:"pendingOrders"`
	CanCancel     bool         `json:"canCancel"`
}

// ============================================================================
// Users and catalog
// ============================================================================

// User is an account as the backend reports it.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      jwtx.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a catalog entry.
type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Desc      string    `json:"desc"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	ImgURL    string    `json:"imgURL"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ============================================================================
// Request bodies
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RemoveFromCartRequest struct {
	Name string `json:"name"`
}

type CreateOrderRequest struct {
	Address     string `json:"address"`
	PhoneNumber string `json:"phonenumber"`
}

// UpdateOrderRequest changes delivery details. Empty fields are left as is.
type UpdateOrderRequest struct {
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// UpdateUserRequest changes profile fields. Empty fields are left as is.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
