package broadcast

import "sync"

// Notifier is the read-only side of a Signal.
type Notifier interface {
	Subscribe() (<-chan struct{}, func())
}

// Signal is a payload-free multicast pulse. Unlike Value it does not replay:
// a subscriber only hears about Notify calls made after it subscribed, and
// bursts collapse into a single pending pulse.
type Signal struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan struct{}
}

// NewSignal creates an idle Signal.
func NewSignal() *Signal {
	return &Signal{subs: make(map[uint64]chan struct{})}
}

// Notify wakes every subscriber.
func (s *Signal) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe implements Notifier.
func (s *Signal) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}
