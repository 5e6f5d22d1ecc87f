// Package session holds the client's in-memory authentication state and
// the pieces that (re)build it: the startup bootstrapper and the 401
// response interceptor.
package session

import (
	"sync"

	"github.com/eventsync/eventsync/internal/client/models"
)

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Session      models.Session
	Loading      bool
	Error        string
	Bootstrapped bool
}

func (s Snapshot) User() *models.UserProfile {
	return s.Session.User
}

// State is the single owner of session data for one client instance.
// Subscribers are notified after every change, outside the lock.
type State struct {
	mu           sync.RWMutex
	session      models.Session
	inflight     int
	err          string
	bootstrapped bool

	nextID      int
	subscribers map[int]func(Snapshot)
}

func NewState() *State {
	return &State{subscribers: map[int]func(Snapshot){}}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	sess := s.session
	sess.User = sess.User.Clone()
	return Snapshot{
		Session:      sess,
		Loading:      s.inflight > 0,
		Error:        s.err,
		Bootstrapped: s.bootstrapped,
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *State) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, f := range s.subscribers {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(snap)
	}
}

// SetSession installs token and user. A token without a user (or the
// reverse) leaves the session empty.
func (s *State) SetSession(token string, user *models.UserProfile) {
	sess := models.Session{Token: token, User: user.Clone()}.Normalize()
	s.update(func() { s.session = sess })
}

func (s *State) ClearSession() {
	s.update(func() { s.session = models.Session{} })
}

// UpdateUser replaces the profile of the current session. It does nothing
// when nobody is signed in.
func (s *State) UpdateUser(user *models.UserProfile) {
	s.update(func() {
		if s.session.Authenticated() && user != nil {
			s.session.User = user.Clone()
		}
	})
}

// Begin marks an operation in flight and clears the error. Loading stays
// set until every Begin has a matching End.
func (s *State) Begin() {
	s.update(func() {
		s.inflight++
		s.err = ""
	})
}

func (s *State) End() {
	s.update(func() {
		if s.inflight > 0 {
			s.inflight--
		}
	})
}

func (s *State) Fail(msg string) {
	s.update(func() { s.err = msg })
}

func (s *State) ClearError() {
	s.update(func() { s.err = "" })
}

func (s *State) MarkBootstrapped() {
	s.update(func() { s.bootstrapped = true })
}

// Reset drops the session and the error. The bootstrapped flag survives.
func (s *State) Reset() {
	s.update(func() {
		s.session = models.Session{}
		s.err = ""
	})
}
