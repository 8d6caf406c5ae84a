package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/nakshatra/internal/scene"
	"github.com/ayusman/nakshatra/internal/state"
	"github.com/ayusman/nakshatra/internal/store"
)

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", response["status"])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST: expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestServer_State(t *testing.T) {
	st := state.New()
	st.SetFocus(state.FocusSaturn)
	st.SetZoom(0.4)

	s := New(Config{
		State:      st,
		Controller: scene.NewController(),
	})
	defer s.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var frame SceneFrame
	if err := json.NewDecoder(rec.Body).Decode(&frame); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if frame.State.Focus != state.FocusSaturn {
		t.Errorf("Focus = %v, want %v", frame.State.Focus, state.FocusSaturn)
	}
	if frame.State.Zoom != 0.4 {
		t.Errorf("Zoom = %f, want 0.4", frame.State.Zoom)
	}
	if frame.Timestamp == 0 {
		t.Error("Timestamp not set")
	}
}

func TestServer_State_NotRegisteredWithoutStore(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSceneHandler_CloseStopsBroadcast(t *testing.T) {
	h := NewSceneHandler(state.New(), scene.NewController())

	h.Close()
	h.Close() // second close must be a no-op

	select {
	case <-h.done:
	default:
		t.Error("broadcast stop channel not closed")
	}
}

func TestServer_Close_Idempotent(t *testing.T) {
	s := New(Config{
		State:      state.New(),
		Controller: scene.NewController(),
	})
	s.Close()
	s.Close()

	// Without a scene handler registered Close is still safe.
	New(Config{}).Close()
}

func TestServer_Sessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	session, err := st.Sessions().Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := st.Sessions().RecordEvent(&store.Event{
		SessionID: session.ID, Label: "two", Focus: "earth", Zoom: 0.2, OffsetMs: 50,
	}); err != nil {
		t.Fatalf("RecordEvent() error = %v", err)
	}

	s := New(Config{Store: st})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var sessions []store.Session
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != session.ID {
		t.Errorf("sessions = %v, want one with ID %s", sessions, session.ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/events", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("events: expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var events []store.Event
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("failed to decode events: %v", err)
	}
	if len(events) != 1 || events[0].Label != "two" {
		t.Errorf("events = %v, want one 'two' transition", events)
	}
}

func TestServer_SessionEvents_EmptyForUnknownSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	s := New(Config{Store: st})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/unknown/events", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var events []store.Event
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("failed to decode events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}
