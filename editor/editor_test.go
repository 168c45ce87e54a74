package editor

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type doc struct{ Title string }

func TestSessionModes(t *testing.T) {
	st := NewStore[doc](time.Hour)
	s := st.Start(doc{Title: "a"}, "42", ModeViewing)

	err := s.Update(func(d doc) (doc, error) { return d, nil })
	if !errors.Is(err, ErrNotEditing) {
		t.Fatalf("viewing session must reject edits, got %v", err)
	}

	s.StartEditing()
	if s.Mode() != ModeEditing {
		t.Fatalf("mode = %q after StartEditing", s.Mode())
	}
	if err := s.Update(func(d doc) (doc, error) {
		d.Title = "b"
		return d, nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.Entity().Title != "b" {
		t.Errorf("entity = %+v", s.Entity())
	}
}

func TestUpdateErrorLeavesEntity(t *testing.T) {
	st := NewStore[doc](time.Hour)
	s := st.Start(doc{Title: "keep"}, "", ModeEditing)

	err := s.Update(func(d doc) (doc, error) {
		d.Title = "lost"
		return d, fmt.Errorf("validation failed")
	})
	if err == nil {
		t.Fatal("expected the op error back")
	}
	if s.Entity().Title != "keep" {
		t.Errorf("failed op must not commit, entity = %+v", s.Entity())
	}
}

func TestSubmitGating(t *testing.T) {
	st := NewStore[doc](time.Hour)
	s := st.Start(doc{Title: "x"}, "1", ModeEditing)

	snap, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if snap.Title != "x" {
		t.Errorf("snapshot = %+v", snap)
	}

	if _, err := s.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second submit must be rejected, got %v", err)
	}
	if err := s.Update(func(d doc) (doc, error) { return d, nil }); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("edits during submit must be rejected, got %v", err)
	}

	// a failed save releases the gate and keeps the entity
	s.EndSubmit()
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("retry after EndSubmit: %v", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore[doc](time.Hour)
	s := st.Start(doc{}, "", ModeEditing)

	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get: %v %v", got, err)
	}

	st.Drop(s.ID)
	if _, err := st.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("dropped session must be gone, got %v", err)
	}
	if _, err := st.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestStoreClose(t *testing.T) {
	st := NewStore[doc](time.Hour)
	s := st.Start(doc{Title: "x"}, "", ModeEditing)

	st.Close()
	st.Close() // second call is a no-op

	got, err := st.Get(s.ID)
	if err != nil || got.Entity().Title != "x" {
		t.Fatalf("sessions must stay readable after Close: %v %v", got, err)
	}
}

func TestConfirmDelete(t *testing.T) {
	if err := ConfirmDelete(false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("unconfirmed delete must be blocked, got %v", err)
	}
	if err := ConfirmDelete(true); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
}
