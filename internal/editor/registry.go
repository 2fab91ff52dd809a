package editor

import (
	"context"
	"sync"
	"time"

	"emb-site/internal/domain/content"
)

// IdleTTL is how long a session may go untouched. Sessions of admins who
// closed the dashboard without leaving are dropped on a later Open,
// unsaved edits included.
const IdleTTL = 2 * time.Hour

// Loader fetches a stored page with its sections resolved.
type Loader interface {
	Load(ctx context.Context, slug string) (*content.Page, []content.Section, error)
}

type entry struct {
	session *Session
	seen    time.Time
}

// Registry keeps one Session per admin and page.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	loader   Loader
	idle     time.Duration
	now      func() time.Time
}

func NewRegistry(loader Loader) *Registry {
	return &Registry{
		sessions: map[string]*entry{},
		loader:   loader,
		idle:     IdleTTL,
		now:      time.Now,
	}
}

func key(owner, slug string) string { return owner + "|" + slug }

// Open returns the running session or starts one from storage. Every call
// counts as activity on the session.
func (r *Registry) Open(ctx context.Context, owner, slug string) (*Session, error) {
	r.mu.Lock()
	r.evictIdle()
	if e, ok := r.sessions[key(owner, slug)]; ok {
		e.seen = r.now()
		r.mu.Unlock()
		return e.session, nil
	}
	r.mu.Unlock()

	p, secs, err := r.loader.Load(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[key(owner, slug)]; ok {
		e.seen = r.now()
		return e.session, nil
	}
	s := NewSession(p, secs)
	r.sessions[key(owner, slug)] = &entry{session: s, seen: r.now()}
	return s, nil
}

// evictIdle drops sessions past the idle limit. r.mu must be held.
func (r *Registry) evictIdle() {
	cutoff := r.now().Add(-r.idle)
	for k, e := range r.sessions {
		if e.seen.Before(cutoff) {
			delete(r.sessions, k)
		}
	}
}

// Get returns a running session without loading.
func (r *Registry) Get(owner, slug string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[key(owner, slug)]
	if !ok || e.seen.Before(r.now().Add(-r.idle)) {
		return nil, false
	}
	return e.session, true
}

// Len reports how many sessions are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Leave tears the session down when navigation is allowed.
func (r *Registry) Leave(owner, slug string, confirm bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[key(owner, slug)]
	if !ok {
		return nil
	}
	if err := e.session.Leave(confirm); err != nil {
		return err
	}
	delete(r.sessions, key(owner, slug))
	return nil
}
