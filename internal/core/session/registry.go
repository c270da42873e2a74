// Package session holds the in-process registry of active sessions.
//
// The registry is the single source of truth for "who is signed in".
// It has exactly one writer path (the auth service's sign-in/sign-out
// flow) and many readers (middleware, admin session management).
// Subscribers are notified synchronously inside the mutating call, so
// an authorization check performed immediately after sign-in always
// observes the new state.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// Session is one active signed-in principal, keyed by token ID (jti).
type Session struct {
	ID       string       `json:"id"`
	User     *domain.User `json:"user"`
	IssuedAt time.Time    `json:"issued_at"`
	Expires  time.Time    `json:"expires"`
}

// EventKind classifies a registry state transition.
type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

// Event describes one registry state transition.
type Event struct {
	Kind    EventKind
	Session Session
}

// Registry tracks active sessions. The zero value is not usable; use New.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	subs     []func(Event)
}

func New() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Subscribe registers fn for state-transition notifications. fn runs
// synchronously under the registry lock; it must not call back into
// the registry.
func (r *Registry) Subscribe(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Register records a new session. A session is present iff its user is
// non-nil; a nil user is rejected to preserve that invariant.
func (r *Registry) Register(s Session) {
	if s.User == nil || s.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.notify(Event{Kind: SignedIn, Session: s})
}

// Revoke removes a session. It always succeeds locally; removing an
// unknown ID is a no-op. Reports whether a session was present.
func (r *Registry) Revoke(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	delete(r.sessions, id)
	r.notify(Event{Kind: SignedOut, Session: s})
	return true
}

// RevokeUser removes every session belonging to userID, notifying
// subscribers for each. Returns the revoked sessions.
func (r *Registry) RevokeUser(userID string) []Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	var revoked []Session
	for id, s := range r.sessions {
		if s.User.ID != userID {
			continue
		}
		delete(r.sessions, id)
		r.notify(Event{Kind: SignedOut, Session: s})
		revoked = append(revoked, s)
	}
	return revoked
}

// Get returns the session for id, dropping it first if expired.
func (r *Registry) Get(id string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok && !s.Expires.IsZero() && time.Now().After(s.Expires) {
		r.Revoke(id)
		return Session{}, false
	}
	return s, ok
}

// Active returns a snapshot of all live sessions, ordered by issue time.
func (r *Registry) Active() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Session, 0, len(r.sessions))
	now := time.Now()
	for _, s := range r.sessions {
		if !s.Expires.IsZero() && now.After(s.Expires) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.Before(out[j].IssuedAt) })
	return out
}

// notify runs under r.mu.
func (r *Registry) notify(e Event) {
	for _, fn := range r.subs {
		fn(e)
	}
}
