// Package session owns the storefront credential: where it is kept, whether
// it is still valid, and who the current actor is.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/shopfront/internal/nav"
	"github.com/aussiebroadwan/shopfront/pkg/broadcast"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
)

// ErrInvalidCredential is returned by Establish for a credential that does
// not decode or has already expired.
var ErrInvalidCredential = errors.New("session: invalid credential")

// Manager is the single owner of the credential and the broadcast session.
//
// The route predicates read the broadcast session, never the slot, so route
// and request checks do no I/O. A credential that is stored but not yet
// broadcast grants nothing.
type Manager struct {
	slot Slot
	dec  jwtx.Decoder
	nav  nav.Navigator
	now  func() time.Time
	log  *slog.Logger

	mu      sync.RWMutex
	token   string
	session *broadcast.Value[*jwtx.Claims]
}

// Option configures a Manager.
type Option func(*Manager)

// WithDecoder replaces the default UnverifiedDecoder.
func WithDecoder(d jwtx.Decoder) Option { return func(m *Manager) { m.dec = d } }

// WithNavigator sets where login and logout navigate.
func WithNavigator(n nav.Navigator) Option { return func(m *Manager) { m.nav = n } }

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.log = l } }

// New creates a Manager with no session. Call RefreshFromStorage to pick up
// a previously stored credential.
func New(slot Slot, opts ...Option) *Manager {
	m := &Manager{
		slot:    slot,
		dec:     jwtx.UnverifiedDecoder{},
		nav:     nav.Discard,
		now:     time.Now,
		log:     slog.Default(),
		session: broadcast.NewValue[*jwtx.Claims](nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session is the read-only view of the current claims; nil means logged out.
func (m *Manager) Session() broadcast.Reader[*jwtx.Claims] {
	return m.session
}

// StoreCredential persists token without validating it.
func (m *Manager) StoreCredential(ctx context.Context, token string) error {
	if err := m.slot.Set(ctx, token); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Token returns the stored credential, if any.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// IsValid reports whether token decodes and has not expired. Decode errors
// are reported as false, never returned.
func (m *Manager) IsValid(token string) bool {
	_, ok := m.decodeValid(token)
	return ok
}

// IsRole reports whether token is valid and carries exactly role.
func (m *Manager) IsRole(token string, role jwtx.Role) bool {
	claims, ok := m.decodeValid(token)
	return ok && claims.Role == role
}

// IsAuthenticatedUser reports whether the broadcast session holds
// unexpired user-role claims. Admins do not satisfy it.
func (m *Manager) IsAuthenticatedUser() bool {
	return m.sessionHas(jwtx.RoleUser)
}

// IsAuthenticatedAdmin reports whether the broadcast session holds
// unexpired admin-role claims.
func (m *Manager) IsAuthenticatedAdmin() bool {
	return m.sessionHas(jwtx.RoleAdmin)
}

func (m *Manager) sessionHas(role jwtx.Role) bool {
	c := m.session.Load()
	return c != nil && c.Role == role && c.ValidAt(m.now())
}

// CurrentClaims returns the last broadcast claims.
func (m *Manager) CurrentClaims() (jwtx.Claims, bool) {
	c := m.session.Load()
	if c == nil {
		return jwtx.Claims{}, false
	}
	return *c, true
}

// SubjectID is the current actor's id, or "" when logged out.
func (m *Manager) SubjectID() string {
	c, _ := m.CurrentClaims()
	return c.ID
}

// RefreshFromStorage loads the persisted credential. A valid one is
// broadcast; a stored but invalid one is logged out.
func (m *Manager) RefreshFromStorage(ctx context.Context) error {
	token, ok, err := m.slot.Get(ctx)
	if err != nil {
		return fmt.Errorf("session: refresh: %w", err)
	}

	if !ok {
		m.publish("", nil)
		return nil
	}

	claims, valid := m.decodeValid(token)
	if !valid {
		m.log.Info("stored credential invalid, logging out")
		return m.Logout(ctx)
	}

	m.publish(token, &claims)
	return nil
}

// Establish handles a freshly issued credential: it is stored, validated,
// broadcast, and the actor is sent to their landing page. An invalid
// credential is evicted and ErrInvalidCredential returned.
func (m *Manager) Establish(ctx context.Context, token string) (jwtx.Claims, error) {
	if err := m.StoreCredential(ctx, token); err != nil {
		return jwtx.Claims{}, err
	}

	claims, ok := m.decodeValid(token)
	if !ok {
		if err := m.evict(ctx); err != nil {
			m.log.Warn("failed to evict credential", "err", err)
		}
		return jwtx.Claims{}, ErrInvalidCredential
	}

	m.publish(token, &claims)
	m.log.Info("session established", "user_id", claims.ID, "role", claims.Role)

	if claims.Role == jwtx.RoleAdmin {
		m.nav.Navigate(nav.Dashboard)
	} else {
		m.nav.Navigate(nav.Home)
	}
	return claims, nil
}

// Logout clears the credential, broadcasts no session and navigates home.
// The in-memory session is cleared even when the slot fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.evict(ctx)
	m.nav.Navigate(nav.Home)
	return err
}

func (m *Manager) evict(ctx context.Context) error {
	m.publish("", nil)
	if err := m.slot.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear credential: %w", err)
	}
	return nil
}

func (m *Manager) publish(token string, claims *jwtx.Claims) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.session.Publish(claims)
}

func (m *Manager) decodeValid(token string) (jwtx.Claims, bool) {
	if token == "" {
		return jwtx.Claims{}, false
	}
	claims, err := m.dec.Decode(token)
	if err != nil {
		m.log.Debug("credential did not decode", "err", err)
		return jwtx.Claims{}, false
	}
	return claims, claims.ValidAt(m.now())
}
