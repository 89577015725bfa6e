package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/persona"
)

// DocumentAvailability answers whether a founder has any indexed documents.
// Satisfied by docstore.Store.
type DocumentAvailability interface {
	HasAnyDocuments(ctx context.Context, founderID string) (bool, error)
}

// carryoverEntry bridges the destroy-then-recreate transition when an upload
// upgrades a Plain session. DetachedAt lets the sweeper expire entries that
// were never consumed because the founder never chatted again.
type carryoverEntry struct {
	turns      []Turn
	detachedAt time.Time
}

// Registry owns all live sessions, keyed by (founder, persona). It guarantees
// at most one session per key, performs the Plain -> Grounded transition with
// memory carryover, and expires idle sessions via Sweep.
//
// A single mutex guards both maps. Expected concurrency per founder is low,
// so coarse locking is fine; the lock is held across the document-availability
// check so a freshly created session's mode can never contradict a concurrent
// upload.
type Registry struct {
	mu        sync.Mutex
	sessions  map[Key]*Session
	carryover map[Key]carryoverEntry

	docs        DocumentAvailability
	tokenBudget int
	log         logger.ILogger
}

// NewRegistry creates an empty registry. tokenBudget <= 0 uses the default.
func NewRegistry(docs DocumentAvailability, tokenBudget int, log logger.ILogger) *Registry {
	return &Registry{
		sessions:    make(map[Key]*Session),
		carryover:   make(map[Key]carryoverEntry),
		docs:        docs,
		tokenBudget: tokenBudget,
		log:         log,
	}
}

// GetOrCreate returns the live session for the key, creating it if absent.
//
// Creation consults document availability to pick the mode and consumes any
// pending carryover memory for the key. Two racing first-requests for one key
// are serialized; the loser observes the winner's session.
func (r *Registry) GetOrCreate(ctx context.Context, founderID string, p persona.Persona) (*Session, error) {
	key := Key{FounderID: founderID, Persona: p}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if s, ok := r.sessions[key]; ok {
		s.lastActivity = now
		return s, nil
	}

	hasDocs, err := r.docs.HasAnyDocuments(ctx, founderID)
	if err != nil {
		return nil, fmt.Errorf("check document availability for %s: %w", founderID, err)
	}

	mode := ModePlain
	if hasDocs {
		mode = ModeGrounded
	}

	var mem *Memory
	if entry, ok := r.carryover[key]; ok {
		mem = NewMemoryFromTurns(r.tokenBudget, entry.turns)
		delete(r.carryover, key)
		r.log.Info("SessionRegistry", "Seeded session from carried-over memory", map[string]interface{}{
			"founder_id": founderID,
			"persona":    p.String(),
			"turns":      mem.Len(),
		})
	} else {
		mem = NewMemory(r.tokenBudget)
	}

	s := &Session{
		Key:          key,
		Mode:         mode,
		Memory:       mem,
		CreatedAt:    now,
		lastActivity: now,
	}
	r.sessions[key] = s

	r.log.Info("SessionRegistry", "Created session", map[string]interface{}{
		"founder_id": founderID,
		"persona":    p.String(),
		"mode":       string(mode),
	})
	return s, nil
}

// Record appends turns to the session's memory and refreshes activity.
// Appends run under the registry lock; Memory itself is not safe for
// concurrent use.
func (r *Registry) Record(founderID string, p persona.Persona, turns ...Turn) {
	key := Key{FounderID: founderID, Persona: p}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		return
	}
	for _, t := range turns {
		s.Memory.Append(t.Role, t.Text)
	}
	s.lastActivity = time.Now()
}

// History returns a detached copy of the session's memory, taken under the
// registry lock so it never observes a concurrent Record mid-append. Returns
// nil when no session exists for the key.
func (r *Registry) History(founderID string, p persona.Persona) []Turn {
	key := Key{FounderID: founderID, Persona: p}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		return nil
	}
	return s.Memory.Snapshot()
}

// Touch refreshes the activity timestamp for a key, if it is still live.
func (r *Registry) Touch(founderID string, p persona.Persona) {
	key := Key{FounderID: founderID, Persona: p}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		s.lastActivity = time.Now()
	}
}

// OnDocumentsUploaded transitions every Plain session owned by the founder:
// memory is detached into the carryover map and the session is removed, so the
// next GetOrCreate rebuilds the key in Grounded mode with history intact.
// Grounded sessions are untouched; retrieval is filtered live by founder at
// answer time, so re-grounding has nothing to refresh.
func (r *Registry) OnDocumentsUploaded(founderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	upgraded := 0
	for key, s := range r.sessions {
		if key.FounderID != founderID || s.Mode != ModePlain {
			continue
		}
		r.carryover[key] = carryoverEntry{turns: s.Memory.Snapshot(), detachedAt: now}
		delete(r.sessions, key)
		upgraded++
	}

	if upgraded > 0 {
		r.log.Info("SessionRegistry", "Detached sessions for grounded upgrade", map[string]interface{}{
			"founder_id": founderID,
			"count":      upgraded,
		})
	}
}

// Reset removes sessions for a founder. With a persona it wipes that one key;
// without, every key the founder owns. Matching carryover entries are dropped
// too: reset is an explicit wipe, never a transition. Returns the number of
// sessions removed.
func (r *Registry) Reset(founderID string, p *persona.Persona) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key := range r.sessions {
		if key.FounderID != founderID {
			continue
		}
		if p != nil && key.Persona != *p {
			continue
		}
		delete(r.sessions, key)
		removed++
	}
	for key := range r.carryover {
		if key.FounderID != founderID {
			continue
		}
		if p != nil && key.Persona != *p {
			continue
		}
		delete(r.carryover, key)
	}

	r.log.Info("SessionRegistry", "Reset sessions", map[string]interface{}{
		"founder_id": founderID,
		"count":      removed,
	})
	return removed
}

// Sweep removes every session idle for longer than timeout, plus carryover
// entries that have waited longer than timeout without being consumed.
// Expiry is a full reset: no carryover is written. Returns sessions removed.
func (r *Registry) Sweep(now time.Time, timeout time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, s := range r.sessions {
		if now.Sub(s.lastActivity) > timeout {
			delete(r.sessions, key)
			removed++
		}
	}
	for key, entry := range r.carryover {
		if now.Sub(entry.detachedAt) > timeout {
			delete(r.carryover, key)
		}
	}

	if removed > 0 {
		r.log.Info("SessionRegistry", "Swept idle sessions", map[string]interface{}{"count": removed})
	}
	return removed
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
