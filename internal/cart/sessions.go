package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "cart_session"

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps browsing-session ids to their carts and evicts idle ones.
type Sessions struct {
	mu   sync.Mutex
	m    map[string]*entry
	ttl  time.Duration
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		m:    make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}
}

// Get returns the cart for id, creating a session with a fresh id when id is
// empty or unknown. The returned id is the one the caller must keep using.
func (s *Sessions) Get(id string) (string, *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.m[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.store
	}
	if id == "" {
		id = uuid.NewString()
	}
	e := &entry{store: NewStore(), lastSeen: now}
	s.m[id] = e
	return id, e.store
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Evict drops sessions idle for longer than the ttl and reports how many went.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, e := range s.m {
		if e.lastSeen.Before(cutoff) {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// StartJanitor evicts idle sessions every interval until Close.
func (s *Sessions) StartJanitor(interval time.Duration, onEvict func(n int)) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
				if n := s.Evict(); n > 0 && onEvict != nil {
					onEvict(n)
				}
			}
		}
	}()
}

// Close stops the janitor if one was started.
func (s *Sessions) Close() {
	s.once.Do(func() { close(s.stop) })
}
