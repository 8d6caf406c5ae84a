// Package state holds the process-wide interaction state shared between the
// detection pipeline, the trajectory controller and the render feed.
package state

import (
	"sync"

	"github.com/ayusman/nakshatra/internal/gesture"
)

// Focus identifies which rendered body the camera is tracking.
type Focus string

const (
	// FocusNone is the free, zoom-driven overview.
	FocusNone   Focus = "none"
	FocusSaturn Focus = "saturn"
	FocusEarth  Focus = "earth"
	FocusMoon   Focus = "moon"
)

// Zoom contract constants. MinZoom is the maximally dispersed far view,
// MaxZoom the maximally close view.
const (
	MinZoom     = -0.5
	MaxZoom     = 1.0
	DefaultZoom = 0.2

	// ZoomStep is the per-tick zoom change applied while an open palm or a
	// pinch is held.
	ZoomStep = 0.015
)

// Snapshot is a consistent read-only copy of the interaction state,
// taken once per tick by consumers.
type Snapshot struct {
	Zoom    float64       `json:"zoom"`
	Gesture gesture.Label `json:"gesture"`
	Focus   Focus         `json:"focus"`
	RotX    float64       `json:"rot_x"`
	RotY    float64       `json:"rot_y"`
}

// Store is the single source of truth for interaction state. It is created
// once at startup and lives for the whole process; all mutations go through
// its methods and are atomic with respect to Snapshot.
type Store struct {
	mu      sync.RWMutex
	zoom    float64
	gesture gesture.Label
	focus   Focus
	rotX    float64
	rotY    float64
}

// New creates a Store with the default interaction state.
func New() *Store {
	return &Store{
		zoom:    DefaultZoom,
		gesture: gesture.LabelIdle,
		focus:   FocusNone,
	}
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (s *Store) SetZoom(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clampZoom(level)
}

// IncreaseZoom raises the zoom level by delta, relative to the current
// value, clamped to [MinZoom, MaxZoom].
func (s *Store) IncreaseZoom(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clampZoom(s.zoom + delta)
}

// DecreaseZoom lowers the zoom level by delta, relative to the current
// value, clamped to [MinZoom, MaxZoom].
func (s *Store) DecreaseZoom(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clampZoom(s.zoom - delta)
}

// SetGesture records the current gesture label.
func (s *Store) SetGesture(label gesture.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture = label
}

// SetFocus sets the camera focus target.
func (s *Store) SetFocus(focus Focus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = focus
}

// SetRotation sets the manual rotation override for the pointed-at body.
// The values are unconstrained; they are only read while the focus target
// is Saturn and the gesture is a point.
func (s *Store) SetRotation(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotX = x
	s.rotY = y
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Zoom:    s.zoom,
		Gesture: s.gesture,
		Focus:   s.focus,
		RotX:    s.rotX,
		RotY:    s.rotY,
	}
}

// clampZoom keeps exceeding zoom requests at the range boundary rather than
// rejecting them.
func clampZoom(v float64) float64 {
	if v < MinZoom {
		return MinZoom
	}
	if v > MaxZoom {
		return MaxZoom
	}
	return v
}
