// Package transport holds the client's outbound http.RoundTripper chain.
package transport

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/shopfront/pkg/idx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"golang.org/x/time/rate"
)

// Wrapper decorates a RoundTripper.
type Wrapper func(http.RoundTripper) http.RoundTripper

// Chain builds base wrapped by ws, the first listed outermost.
func Chain(base http.RoundTripper, ws ...Wrapper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(ws) - 1; i >= 0; i-- {
		base = ws[i](base)
	}
	return base
}

// Func adapts a function to http.RoundTripper.
type Func func(*http.Request) (*http.Response, error)

func (f Func) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// TokenSource yields the credential to attach. *session.Manager satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

// Augmenter attaches the current credential as a bearer header. The
// caller's request is never modified: a credential goes on a clone.
type Augmenter struct {
	Tokens TokenSource
	Base   http.RoundTripper
}

func (a *Augmenter) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := a.Tokens.Token()
	if !ok {
		return a.Base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return a.Base.RoundTrip(clone)
}

// Augment is Augmenter as a Wrapper.
func Augment(tokens TokenSource) Wrapper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &Augmenter{Tokens: tokens, Base: next}
	}
}

// RequestID stamps a fresh X-Request-ID on requests that lack one, on a
// clone, so client and server logs correlate.
func RequestID() Wrapper {
	return func(next http.RoundTripper) http.RoundTripper {
		return Func(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(slogx.RequestIDHeader) != "" {
				return next.RoundTrip(req)
			}
			clone := req.Clone(req.Context())
			clone.Header.Set(slogx.RequestIDHeader, idx.New().String())
			return next.RoundTrip(clone)
		})
	}
}

// RateLimit makes calls wait for a token from a shared bucket. It smooths
// bursts such as repeated add-to-cart; it does not reject.
func RateLimit(limit rate.Limit, burst int) Wrapper {
	l := rate.NewLimiter(limit, burst)
	return func(next http.RoundTripper) http.RoundTripper {
		return Func(func(req *http.Request) (*http.Response, error) {
			if err := l.Wait(req.Context()); err != nil {
				return nil, err
			}
			return next.RoundTrip(req)
		})
	}
}

// Logging logs each call through slogx.Transport.
func Logging(logger *slog.Logger) Wrapper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &slogx.Transport{Base: next, Logger: logger}
	}
}
