package repository

import (
	"sync"
	"time"

	"seyone-academy-go/internal/model"
)

// LiveSession is what the registry needs to know about a mounted chat widget.
type LiveSession interface {
	ID() string
	ClientID() string
	State() model.AdvisorState
	LastActive() time.Time
	Close()
}

// AdvisorSessionRepository keeps mounted advisor sessions in memory.
// Conversations are never persisted; a restart drops every session.
type AdvisorSessionRepository[S LiveSession] struct {
	mu       sync.RWMutex
	sessions map[string]S
}

func NewAdvisorSessionRepository[S LiveSession]() *AdvisorSessionRepository[S] {
	return &AdvisorSessionRepository[S]{sessions: make(map[string]S)}
}

func (r *AdvisorSessionRepository[S]) Save(s S) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

// Find returns the session with id if it belongs to clientID.
func (r *AdvisorSessionRepository[S]) Find(clientID, id string) (S, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.ClientID() != clientID {
		var zero S
		return zero, false
	}
	return s, true
}

// Remove deletes the session from the registry and returns it.
func (r *AdvisorSessionRepository[S]) Remove(id string) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	return s, ok
}

// CountByState reports how many live sessions are in each state.
func (r *AdvisorSessionRepository[S]) CountByState() map[model.AdvisorState]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[model.AdvisorState]int{
		model.StateIdle:             0,
		model.StateAwaitingResponse: 0,
	}
	for _, s := range r.sessions {
		out[s.State()]++
	}
	return out
}

// Sweep closes and removes sessions idle since before now-ttl, returning how many went.
// A session waiting for a reply is not considered idle.
func (r *AdvisorSessionRepository[S]) Sweep(now time.Time, ttl time.Duration) int {
	var expired []S
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.State() == model.StateClosed ||
			(s.State() != model.StateAwaitingResponse && now.Sub(s.LastActive()) > ttl) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// CloseAll closes every session, used on shutdown.
func (r *AdvisorSessionRepository[S]) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]S)
	r.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
