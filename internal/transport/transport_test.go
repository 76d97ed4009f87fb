package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopfront/internal/transport"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) { return s.token, s.token != "" }

// capture records the last request that reached the end of the chain.
func capture(got **http.Request) http.RoundTripper {
	return transport.Func(func(r *http.Request) (*http.Response, error) {
		*got = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
}

func TestAugmenterClonesWhenCredentialPresent(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := &transport.Augmenter{Tokens: staticTokens{"tok"}, Base: capture(&got)}

	orig := httptest.NewRequest(http.MethodGet, "http://shop/cart", nil)
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	require.NotSame(t, orig, got)
	require.Empty(t, orig.Header.Get("Authorization"))
}

func TestAugmenterForwardsWhenNoCredential(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := &transport.Augmenter{Tokens: staticTokens{}, Base: capture(&got)}

	orig := httptest.NewRequest(http.MethodGet, "http://shop/product", nil)
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Same(t, orig, got)
	require.Empty(t, got.Header.Get("Authorization"))
}

func TestChainOrderAndRequestID(t *testing.T) {
	t.Parallel()

	var got *http.Request
	var order []string
	mark := func(name string) transport.Wrapper {
		return func(next http.RoundTripper) http.RoundTripper {
			return transport.Func(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := transport.Chain(capture(&got),
		mark("outer"),
		transport.RequestID(),
		transport.Augment(staticTokens{"tok"}),
		mark("inner"),
		transport.Logging(slogx.Discard()),
	)

	orig := httptest.NewRequest(http.MethodGet, "http://shop/order", nil)
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Equal(t, []string{"outer", "inner"}, order)
	require.NotEmpty(t, got.Header.Get(slogx.RequestIDHeader))
	require.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	require.Empty(t, orig.Header.Get(slogx.RequestIDHeader))
}

func TestRequestIDKeepsExisting(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := transport.Chain(capture(&got), transport.RequestID())

	req := httptest.NewRequest(http.MethodGet, "http://shop/", nil)
	req.Header.Set(slogx.RequestIDHeader, "fixed")
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, "fixed", got.Header.Get(slogx.RequestIDHeader))
}

func TestRateLimitHonoursContext(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := transport.Chain(capture(&got), transport.RateLimit(rate.Every(time.Hour), 1))

	req := httptest.NewRequest(http.MethodPost, "http://shop/cart", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = rt.RoundTrip(req.WithContext(ctx))
	require.Error(t, err)
}
