package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSessionStore_BeginEnd(t *testing.T) {
	s := newTestStore(t)

	session, err := s.Sessions().Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("session has empty ID")
	}
	if session.EndedAt != nil {
		t.Error("new session already ended")
	}

	if err := s.Sessions().End(session.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	sessions, err := s.Sessions().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].EndedAt == nil {
		t.Error("ended session has no end time")
	}
}

func TestSessionStore_End_Missing(t *testing.T) {
	s := newTestStore(t)

	if err := s.Sessions().End("no-such-session"); err == nil {
		t.Error("expected error ending unknown session")
	}
}

func TestSessionStore_Events(t *testing.T) {
	s := newTestStore(t)

	session, err := s.Sessions().Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	recorded := []Event{
		{SessionID: session.ID, Label: "point", Focus: "saturn", Zoom: 0.2, RotX: 0.3, RotY: -0.1, OffsetMs: 120},
		{SessionID: session.ID, Label: "open", Focus: "saturn", Zoom: 0.215, OffsetMs: 480},
		{SessionID: session.ID, Label: "pinch", Focus: "none", Zoom: 0.2, OffsetMs: 910},
	}
	for i := range recorded {
		if err := s.Sessions().RecordEvent(&recorded[i]); err != nil {
			t.Fatalf("RecordEvent() error = %v", err)
		}
		if recorded[i].ID == 0 {
			t.Error("event ID not assigned")
		}
	}

	events, err := s.Sessions().Events(session.ID)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Label != "point" || events[2].Label != "pinch" {
		t.Errorf("events out of order: %v", events)
	}
	if events[0].Focus != "saturn" || events[0].RotX != 0.3 {
		t.Errorf("event fields not round-tripped: %+v", events[0])
	}
}

func TestSessionStore_RecordEvent_RequiresSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.Sessions().RecordEvent(&Event{
		SessionID: "orphan", Label: "idle", Focus: "none",
	}); err == nil {
		t.Error("expected foreign key violation recording orphan event")
	}
}
