package session

import "sync"

// Update is delivered to subscribers after every applied change. Rev grows
// by one per applied change, so consumers receiving updates from several
// goroutines can drop any with a Rev older than what they already hold.
type Update struct {
	Rev   uint64
	State State
}

// Store holds the current session snapshot. Every change replaces the whole
// snapshot.
//
// Attempts are tagged with a sequence number from Begin. Commit applies a
// result only while its sequence number is still the newest issued, so a
// slow attempt can never overwrite the outcome of a newer one or a Reset.
type Store struct {
	mu    sync.Mutex
	state State
	seq   uint64
	rev   uint64
	subs  map[int]func(Update)
	subID int
}

// NewStore returns a store holding Initial().
func NewStore() *Store {
	return &Store{state: Initial(), subs: make(map[int]func(Update))}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin issues a new sequence number, applies fn and returns the number.
func (s *Store) Begin(fn Transform) uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	u, subs := s.applyLocked(fn)
	s.mu.Unlock()

	notify(subs, u)
	return seq
}

// Commit applies fn only if seq is still the newest sequence number. It
// reports whether the change was applied.
func (s *Store) Commit(seq uint64, fn Transform) bool {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return false
	}
	u, subs := s.applyLocked(fn)
	s.mu.Unlock()

	notify(subs, u)
	return true
}

// Reset invalidates every in-flight attempt and returns to Initial. It
// returns the sequence number the reset was issued under.
func (s *Store) Reset() uint64 {
	return s.Begin(Reset)
}

// Subscribe registers fn to run after each applied change and returns a
// function that removes it. fn runs synchronously on the goroutine that made
// the change, after the store's lock is released.
func (s *Store) Subscribe(fn func(Update)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.subID
	s.subID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) applyLocked(fn Transform) (Update, []func(Update)) {
	s.state = fn(s.state)
	s.rev++
	subs := make([]func(Update), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	return Update{Rev: s.rev, State: s.state}, subs
}

func notify(subs []func(Update), u Update) {
	for _, f := range subs {
		f(u)
	}
}
