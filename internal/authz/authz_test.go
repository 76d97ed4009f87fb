package authz_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopfront/internal/authz"
	"github.com/aussiebroadwan/shopfront/internal/nav"
	"github.com/aussiebroadwan/shopfront/internal/session"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fakePreds struct{ user, admin bool }

func (f fakePreds) IsAuthenticatedUser() bool  { return f.user }
func (f fakePreds) IsAuthenticatedAdmin() bool { return f.admin }

func TestAuthorizeTable(t *testing.T) {
	t.Parallel()

	anon := authz.New(fakePreds{}, authz.Routes)
	user := authz.New(fakePreds{user: true}, authz.Routes)
	admin := authz.New(fakePreds{admin: true}, authz.Routes)

	cases := []struct {
		path             string
		route            string
		anon, usr, admin bool
	}{
		{"/", "/", true, true, true},
		{"/home", "/home", true, true, true},
		{"/products/blue-mug", "/products/{slug}", true, true, true},
		{"/cart?step=2", "/cart", true, true, true},
		{"/account", "/account", false, true, false},
		{"/account/orders", "/account/orders", false, true, false},
		{"/dashboard", "/dashboard", false, false, true},
		{"/dashboard/orders/", "/dashboard/orders", false, false, true},
		{"/dashboard/users", "/dashboard/users", false, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			for _, c := range []struct {
				a    *authz.Authorizer
				want bool
			}{{anon, tc.anon}, {user, tc.usr}, {admin, tc.admin}} {
				d := c.a.Authorize(tc.path)
				require.Equal(t, tc.route, d.Route)
				require.Equal(t, c.want, d.Allowed)
				if c.want {
					require.Empty(t, d.Redirect)
				} else {
					require.Equal(t, nav.Home, d.Redirect)
				}
			}
		})
	}
}

func TestAuthorizeUnknownPath(t *testing.T) {
	t.Parallel()

	a := authz.New(fakePreds{admin: true}, authz.Routes)

	for _, p := range []string{"/nope", "/products/a/b", "relative", "/dashboard/secret"} {
		d := a.Authorize(p)
		require.False(t, d.Allowed, p)
		require.Equal(t, nav.NotFound, d.Redirect, p)
	}
}

func TestAuthorizeIsPure(t *testing.T) {
	t.Parallel()

	a := authz.New(fakePreds{}, authz.Routes)
	first := a.Authorize("/dashboard")
	second := a.Authorize("/dashboard")
	require.Equal(t, first, second)
}

func TestRouterNavigate(t *testing.T) {
	t.Parallel()

	h := nav.NewHistory(nav.Root)
	r := authz.NewRouter(authz.New(fakePreds{user: true}, authz.Routes), h)

	require.True(t, r.Navigate("/account/orders"))
	require.Equal(t, "/account/orders", h.Current())

	require.False(t, r.Navigate("/dashboard/orders"))
	require.Equal(t, nav.Home, h.Current())

	require.False(t, r.Navigate("/missing"))
	require.Equal(t, nav.NotFound, h.Current())
}

// An expired user credential fails the account guard and lands on /home.
func TestExpiredUserIsRedirectedHome(t *testing.T) {
	t.Parallel()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := jwtx.NewEdDSASigner(priv)
	require.NoError(t, err)

	now := time.Now()
	token, err := signer.Sign(jwtx.NewClaims("u1", "U", "u@x.io", jwtx.RoleUser, -time.Hour, now))
	require.NoError(t, err)

	h := nav.NewHistory(nav.Root)
	m := session.New(session.NewMemorySlot(),
		session.WithNavigator(h),
		session.WithClock(func() time.Time { return now }),
		session.WithLogger(slogx.Discard()),
	)
	require.NoError(t, m.StoreCredential(context.Background(), token))

	require.False(t, m.IsAuthenticatedUser())

	r := authz.NewRouter(authz.New(m, authz.Routes), h)
	require.False(t, r.Navigate(nav.MyOrders))
	require.Equal(t, nav.Home, h.Current())
}
