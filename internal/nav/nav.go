// Package nav names the storefront's routes and the navigation side effect
// used by session, authz and triage.
package nav

import "sync"

// Routes the client navigates to on its own.
const (
	Root      = "/"
	Home      = "/home"
	Login     = "/login"
	Signup    = "/signup"
	NotFound  = "/not-found"
	Dashboard = "/dashboard"
	Cart      = "/cart"
	Checkout  = "/checkout"
	Account   = "/account"
	MyOrders  = "/account/orders"
)

// Navigator changes the current location.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Discard ignores navigation.
var Discard Navigator = NavigatorFunc(func(string) {})

// History is a Navigator that remembers where it has been.
type History struct {
	mu    sync.Mutex
	trail []string
}

// NewHistory starts at start.
func NewHistory(start string) *History {
	return &History{trail: []string{start}}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.trail = append(h.trail, path)
}

// Current is the last location navigated to.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.trail) == 0 {
		return ""
	}
	return h.trail[len(h.trail)-1]
}

// Trail returns every location in order, starting location first.
func (h *History) Trail() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.trail...)
}
