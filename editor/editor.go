// Package editor holds the session machinery shared by the explore and
// day-plan editors: one canonical entity per session, a small mode machine,
// and submit gating so a double-clicked save never fires twice.
package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode is the editor state. Browsing is the absence of a session; a live
// session is either Editing or Viewing.
type Mode string

const (
	ModeEditing Mode = "editing"
	ModeViewing Mode = "viewing"
)

var (
	ErrNotEditing      = errors.New("session is not in editing mode")
	ErrSubmitInFlight  = errors.New("a save is already in progress")
	ErrNotConfirmed    = errors.New("deletion requires explicit confirmation")
	ErrSessionNotFound = errors.New("editor session not found or expired")
)

// Session owns one canonical entity for the duration of an edit. Nothing
// else holds a reference to the entity, so a single mutex per session is
// all the synchronization needed.
type Session[T any] struct {
	ID       string
	EntityID string // "" while creating
	Started  time.Time

	mu         sync.Mutex
	mode       Mode
	entity     T
	submitting bool
}

func (s *Session[T]) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Entity returns the current canonical entity.
func (s *Session[T]) Entity() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entity
}

// Update applies one edit operation. Edits are rejected while a submit is
// in flight (the UI disables the form, this enforces it) and in viewing
// mode.
func (s *Session[T]) Update(fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeEditing {
		return ErrNotEditing
	}
	if s.submitting {
		return ErrSubmitInFlight
	}
	next, err := fn(s.entity)
	if err != nil {
		return err
	}
	s.entity = next
	return nil
}

// StartEditing flips a viewing session into editing mode.
func (s *Session[T]) StartEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEditing
}

// BeginSubmit marks the single allowed in-flight submit. Callers must pair
// it with EndSubmit.
func (s *Session[T]) BeginSubmit() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.mode != ModeEditing {
		return zero, ErrNotEditing
	}
	if s.submitting {
		return zero, ErrSubmitInFlight
	}
	s.submitting = true
	return s.entity, nil
}

// EndSubmit clears the in-flight flag. On failure the entity is untouched,
// so the admin's in-progress edits survive; the store drops the session on
// success.
func (s *Session[T]) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// Store tracks live sessions. Abandoned sessions are swept after ttl; a
// teardown simply discards pending state, there is nothing to cancel.
type Store[T any] struct {
	mu        sync.Mutex
	sessions  map[string]*Session[T]
	ttl       time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	st := &Store[T]{
		sessions: make(map[string]*Session[T]),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Close stops the background sweeper. Live sessions stay readable; safe to
// call more than once.
func (st *Store[T]) Close() {
	st.closeOnce.Do(func() { close(st.done) })
}

// Start opens a session owning entity. entityID is empty for creates.
func (st *Store[T]) Start(entity T, entityID string, mode Mode) *Session[T] {
	s := &Session[T]{
		ID:       uuid.New().String(),
		EntityID: entityID,
		Started:  time.Now(),
		mode:     mode,
		entity:   entity,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store[T]) Get(id string) (*Session[T], error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Drop ends a session: cancel, successful submit, or sweep. The entity is
// discarded; list views re-fetch fresh server state instead of patching a
// local copy.
func (st *Store[T]) Drop(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store[T]) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-st.ttl)
			st.mu.Lock()
			for id, s := range st.sessions {
				if s.Started.Before(cutoff) {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}

// ConfirmDelete is the gate in front of every destructive call: the
// confirmed flag must be explicitly true, mirroring the confirm dialog the
// shell shows.
func ConfirmDelete(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return nil
}
