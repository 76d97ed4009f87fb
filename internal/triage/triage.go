// Package triage applies one failure policy to every outbound call: a
// redirect or a user notice, after which the failure still reaches the
// caller untouched.
package triage

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/shopfront/internal/nav"
)

// GenericMessage is the notice shown for failures without a redirect.
const GenericMessage = "something went wrong"

// Action is the global effect for a failure.
type Action uint8

const (
	ActionNone Action = iota
	ActionNotFound
	ActionLogin
	ActionNotify
)

func (a Action) String() string {
	switch a {
	case ActionNotFound:
		return "not_found"
	case ActionLogin:
		return "login"
	case ActionNotify:
		return "notify"
	default:
		return "none"
	}
}

// Classify maps a response status to an Action. Statuses below 400 need
// none.
func Classify(status int) Action {
	switch {
	case status == http.StatusNotFound:
		return ActionNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ActionLogin
	case status >= http.StatusBadRequest:
		return ActionNotify
	default:
		return ActionNone
	}
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(msg string)
}

// LogNotifier surfaces notices through a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(msg string) {
	n.Logger.Warn("notice", "msg", msg)
}

// Transport runs the policy on every response and transport error, then
// returns both unchanged.
type Transport struct {
	Base     http.RoundTripper
	Nav      nav.Navigator
	Notifier Notifier
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.Base.RoundTrip(req)
	switch {
	case err != nil:
		// The caller gave up; there is nobody to tell.
		if !errors.Is(err, context.Canceled) {
			t.apply(ActionNotify)
		}
	default:
		t.apply(Classify(resp.StatusCode))
	}
	return resp, err
}

func (t *Transport) apply(a Action) {
	switch a {
	case ActionNotFound:
		t.Nav.Navigate(nav.NotFound)
	case ActionLogin:
		t.Nav.Navigate(nav.Login)
	case ActionNotify:
		t.Notifier.Notify(GenericMessage)
	}
}

// Wrap builds a Transport around next.
func Wrap(n nav.Navigator, notifier Notifier) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &Transport{Base: next, Nav: n, Notifier: notifier}
	}
}
