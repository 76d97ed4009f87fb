// Package broadcast provides single-owner multicast cells for in-process
// state: a replay-of-one Value and a payload-free Signal.
package broadcast

import "sync"

// Reader is the read-only side of a Value handed to consumers.
type Reader[T any] interface {
	// Load returns the last published value.
	Load() T

	// Subscribe returns a channel that immediately yields the current value
	// and then every later one. A slow consumer only ever sees the newest
	// pending value. Call cancel to release the subscription.
	Subscribe() (<-chan T, func())
}

// Value is a multicast "last known value". Only the owner publishes; it is
// safe for concurrent use.
type Value[T any] struct {
	mu     sync.Mutex
	cur    T
	nextID uint64
	subs   map[uint64]chan T
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[uint64]chan T)}
}

// Load returns the last published value.
func (v *Value[T]) Load() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Publish replaces the value and fans it out to every subscriber without
// blocking.
func (v *Value[T]) Publish(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cur = x
	for _, ch := range v.subs {
		offerLatest(ch, x)
	}
}

// Subscribe implements Reader.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++

	ch := make(chan T, 1)
	ch <- v.cur
	v.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			close(ch)
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// offerLatest puts x into a one-slot channel, evicting a stale pending value.
// Callers hold the owner's lock, so there is a single writer per channel.
func offerLatest[T any](ch chan T, x T) {
	select {
	case ch <- x:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}
	ch <- x
}
