package state

import (
	"math"
	"testing"

	"github.com/ayusman/nakshatra/internal/gesture"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	snap := s.Snapshot()

	if snap.Zoom != DefaultZoom {
		t.Errorf("Zoom = %f, want %f", snap.Zoom, DefaultZoom)
	}
	if snap.Gesture != gesture.LabelIdle {
		t.Errorf("Gesture = %v, want %v", snap.Gesture, gesture.LabelIdle)
	}
	if snap.Focus != FocusNone {
		t.Errorf("Focus = %v, want %v", snap.Focus, FocusNone)
	}
	if snap.RotX != 0 || snap.RotY != 0 {
		t.Errorf("rotation = (%f, %f), want (0, 0)", snap.RotX, snap.RotY)
	}
}

func TestStore_SetZoom_Clamped(t *testing.T) {
	s := New()

	s.SetZoom(5.0)
	if z := s.Snapshot().Zoom; z != MaxZoom {
		t.Errorf("Zoom after SetZoom(5.0) = %f, want %f", z, MaxZoom)
	}

	s.SetZoom(-5.0)
	if z := s.Snapshot().Zoom; z != MinZoom {
		t.Errorf("Zoom after SetZoom(-5.0) = %f, want %f", z, MinZoom)
	}

	s.SetZoom(0.3)
	if z := s.Snapshot().Zoom; z != 0.3 {
		t.Errorf("Zoom after SetZoom(0.3) = %f, want 0.3", z)
	}
}

func TestStore_IncreaseZoom_Saturates(t *testing.T) {
	s := New()

	// 60 open-palm ticks from the default: 0.2 + 60*0.015 = 1.1,
	// clamped to the maximum.
	for i := 0; i < 60; i++ {
		s.IncreaseZoom(ZoomStep)
	}
	if z := s.Snapshot().Zoom; z != MaxZoom {
		t.Errorf("Zoom after 60 increments = %f, want %f", z, MaxZoom)
	}

	// Further increments must hold at the boundary without oscillating.
	for i := 0; i < 100; i++ {
		s.IncreaseZoom(ZoomStep)
		if z := s.Snapshot().Zoom; z != MaxZoom {
			t.Fatalf("Zoom left the boundary: %f", z)
		}
	}
}

func TestStore_DecreaseZoom_Saturates(t *testing.T) {
	s := New()

	for i := 0; i < 200; i++ {
		s.DecreaseZoom(ZoomStep)
		if z := s.Snapshot().Zoom; z < MinZoom {
			t.Fatalf("Zoom overshot the minimum: %f", z)
		}
	}
	if z := s.Snapshot().Zoom; z != MinZoom {
		t.Errorf("Zoom after saturation = %f, want %f", z, MinZoom)
	}
}

func TestStore_RelativeZoom_Composes(t *testing.T) {
	s := New()

	// Alternating relative mutations must each apply to the value left by
	// the previous one, not to a stale snapshot.
	s.IncreaseZoom(0.1)
	s.DecreaseZoom(0.05)
	s.IncreaseZoom(0.1)

	want := DefaultZoom + 0.1 - 0.05 + 0.1
	if z := s.Snapshot().Zoom; math.Abs(z-want) > 1e-12 {
		t.Errorf("Zoom = %f, want %f", z, want)
	}
}

func TestStore_SetFocus_Idempotent(t *testing.T) {
	s := New()

	s.SetFocus(FocusEarth)
	s.SetFocus(FocusEarth)
	if f := s.Snapshot().Focus; f != FocusEarth {
		t.Errorf("Focus = %v, want %v", f, FocusEarth)
	}
}

func TestStore_SetRotation(t *testing.T) {
	s := New()

	s.SetRotation(1.4, -2.8)
	snap := s.Snapshot()
	if snap.RotX != 1.4 || snap.RotY != -2.8 {
		t.Errorf("rotation = (%f, %f), want (1.4, -2.8)", snap.RotX, snap.RotY)
	}
}

func TestStore_Snapshot_Consistent(t *testing.T) {
	s := New()

	s.SetGesture(gesture.LabelTwo)
	s.SetFocus(FocusEarth)
	s.SetZoom(0.5)

	snap := s.Snapshot()
	if snap.Gesture != gesture.LabelTwo || snap.Focus != FocusEarth || snap.Zoom != 0.5 {
		t.Errorf("Snapshot = %+v, want two/earth/0.5", snap)
	}

	// Mutating after the snapshot must not change the copy.
	s.SetFocus(FocusMoon)
	if snap.Focus != FocusEarth {
		t.Error("snapshot aliased live state")
	}
}
