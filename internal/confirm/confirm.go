// Package confirm turns destructive commands into two steps: Request
// issues a ticket, Confirm redeems it. Nothing blocks waiting for a user.
package confirm

import (
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/shopfront/pkg/idx"
)

var (
	ErrUnknownTicket = errors.New("confirm: unknown ticket")
	ErrExpired       = errors.New("confirm: ticket expired")
)

// DefaultTTL is how long a ticket stays redeemable.
const DefaultTTL = 2 * time.Minute

// Ticket is a pending confirmation for one action on one target.
type Ticket struct {
	ID        string
	Action    string
	Target    string
	ExpiresAt time.Time
}

// Book tracks outstanding tickets. Expired tickets are dropped lazily when
// touched or when new ones are issued.
type Book struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	pending map[string]Ticket
}

// NewBook creates a Book. A non-positive ttl means DefaultTTL; a nil clock
// means time.Now.
func NewBook(ttl time.Duration, now func() time.Time) *Book {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Book{ttl: ttl, now: now, pending: make(map[string]Ticket)}
}

// Request issues a ticket for action on target.
func (b *Book) Request(action, target string) Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)

	t := Ticket{
		ID:        idx.NewAt(now).String(),
		Action:    action,
		Target:    target,
		ExpiresAt: now.Add(b.ttl),
	}
	b.pending[t.ID] = t
	return t
}

// Redeem consumes the ticket with id, which must be for action. A ticket
// can be redeemed once.
func (b *Book) Redeem(id, action string) (Ticket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.pending[id]
	if !ok || t.Action != action {
		return Ticket{}, ErrUnknownTicket
	}
	delete(b.pending, id)

	if !b.now().Before(t.ExpiresAt) {
		return Ticket{}, ErrExpired
	}
	return t, nil
}

// Abort drops a ticket. Unknown ids are ignored.
func (b *Book) Abort(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, id)
}

// Pending reports the number of live tickets.
func (b *Book) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweep(b.now())
	return len(b.pending)
}

func (b *Book) sweep(now time.Time) {
	for id, t := range b.pending {
		if !now.Before(t.ExpiresAt) {
			delete(b.pending, id)
		}
	}
}
