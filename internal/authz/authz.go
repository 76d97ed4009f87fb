// Package authz decides which client routes the current actor may enter.
//
// Authorize is pure: it reads the session through Predicates and returns a
// Decision. Router applies the decision by navigating on denial.
package authz

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aussiebroadwan/shopfront/internal/nav"
)

// Guard names the predicate protecting a route.
type Guard uint8

const (
	Public Guard = iota
	// AuthenticatedUser admits only a valid user-role credential.
	AuthenticatedUser
	// AuthenticatedAdmin admits only a valid admin-role credential.
	AuthenticatedAdmin
)

func (g Guard) String() string {
	switch g {
	case AuthenticatedUser:
		return "user"
	case AuthenticatedAdmin:
		return "admin"
	default:
		return "public"
	}
}

// Predicates is the read side of the session the authorizer needs.
// *session.Manager satisfies it.
type Predicates interface {
	IsAuthenticatedUser() bool
	IsAuthenticatedAdmin() bool
}

// Route is one entry of the route table.
type Route struct {
	Pattern string
	Guard   Guard
}

// Decision is the outcome of authorizing a path.
type Decision struct {
	// Route is the matched pattern, or NotFound's for unknown paths.
	Route   string
	Guard   Guard
	Allowed bool
	// Redirect is where a denied navigation is sent, and the not-found
	// route for unknown paths.
	Redirect string
}

// Routes is the storefront's route surface.
var Routes = []Route{
	{nav.Root, Public},
	{nav.Home, Public},
	{"/products", Public},
	{"/products/{slug}", Public},
	{"/about", Public},
	{nav.Cart, Public},
	{nav.Checkout, Public},
	{"/testimonial", Public},
	{nav.Login, Public},
	{nav.Signup, Public},
	{nav.NotFound, Public},

	{nav.Account, AuthenticatedUser},
	{nav.MyOrders, AuthenticatedUser},

	{nav.Dashboard, AuthenticatedAdmin},
	{"/dashboard/home", AuthenticatedAdmin},
	{"/dashboard/products", AuthenticatedAdmin},
	{"/dashboard/users", AuthenticatedAdmin},
	{"/dashboard/categories", AuthenticatedAdmin},
	{"/dashboard/orders", AuthenticatedAdmin},
}

// Authorizer matches paths against a route table.
type Authorizer struct {
	preds    Predicates
	mux      *http.ServeMux
	routes   map[string]Route // keyed by mux pattern
	fallback string
}

// New builds an Authorizer over routes. Denied navigation falls back to
// nav.Home.
func New(preds Predicates, routes []Route) *Authorizer {
	a := &Authorizer{
		preds:    preds,
		mux:      http.NewServeMux(),
		routes:   make(map[string]Route, len(routes)),
		fallback: nav.Home,
	}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, r := range routes {
		// Exact-match patterns: "{$}" keeps "/" from matching everything.
		pattern := r.Pattern
		if pattern == nav.Root {
			pattern = "/{$}"
		}
		a.mux.Handle("GET "+pattern, noop)
		a.routes["GET "+pattern] = r
	}
	return a
}

// Authorize decides whether path may be entered now. It has no side
// effects and does no I/O.
func (a *Authorizer) Authorize(target string) Decision {
	route, ok := a.match(target)
	if !ok {
		return Decision{Route: nav.NotFound, Allowed: false, Redirect: nav.NotFound}
	}

	d := Decision{Route: route.Pattern, Guard: route.Guard, Allowed: a.admits(route.Guard)}
	if !d.Allowed {
		d.Redirect = a.fallback
	}
	return d
}

func (a *Authorizer) admits(g Guard) bool {
	switch g {
	case AuthenticatedUser:
		return a.preds.IsAuthenticatedUser()
	case AuthenticatedAdmin:
		return a.preds.IsAuthenticatedAdmin()
	default:
		return true
	}
}

func (a *Authorizer) match(target string) (Route, bool) {
	u, err := url.Parse(target)
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return Route{}, false
	}

	// Clean first so the mux never answers with a redirect.
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path.Clean(u.Path)}}
	_, pattern := a.mux.Handler(req)
	route, ok := a.routes[pattern]
	return route, ok
}

// Router applies decisions to a Navigator.
type Router struct {
	authz *Authorizer
	nav   nav.Navigator
}

// NewRouter wires an Authorizer to a Navigator.
func NewRouter(a *Authorizer, n nav.Navigator) *Router {
	return &Router{authz: a, nav: n}
}

// Navigate enters path if allowed and reports whether it did. A denied
// path navigates to the decision's redirect instead.
func (r *Router) Navigate(path string) bool {
	d := r.authz.Authorize(path)
	if d.Allowed {
		r.nav.Navigate(path)
		return true
	}
	r.nav.Navigate(d.Redirect)
	return false
}
