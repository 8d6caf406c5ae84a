package detector

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockDetector_Detect(t *testing.T) {
	mock := NewMockDetector()
	mock.SetHands([]HandLandmarks{PointingHand()})

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hands, err := mock.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}
	if hands[0].Handedness != "Right" {
		t.Errorf("Handedness = %q, want %q", hands[0].Handedness, "Right")
	}
}

func TestMockDetector_Error(t *testing.T) {
	mock := NewMockDetector()
	wantErr := errors.New("detector unavailable")
	mock.SetError(wantErr)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if _, err := mock.Detect(&frame); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestDecodeHands_DropsIncompleteHands(t *testing.T) {
	// A hand missing landmarks must be dropped entirely, never padded with
	// zero-valued points that downstream geometry would misread.
	full := PointingHand()

	var b strings.Builder
	b.WriteString(`{"hands":[{"handedness":"Right","score":0.9,"points":[`)
	for i, p := range full.Points {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"x":%g,"y":%g,"z":%g}`, p.X, p.Y, p.Z)
	}
	b.WriteString(`]},{"handedness":"Left","score":0.8,"points":[{"x":0.5,"y":0.9,"z":0}]}]}`)

	hands, err := decodeHands([]byte(b.String()))
	if err != nil {
		t.Fatalf("decodeHands() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 complete hand, got %d", len(hands))
	}
	if hands[0].Handedness != "Right" {
		t.Errorf("Handedness = %q, want %q", hands[0].Handedness, "Right")
	}
	if hands[0].Points[Wrist] != full.Points[Wrist] {
		t.Errorf("Wrist = %+v, want %+v", hands[0].Points[Wrist], full.Points[Wrist])
	}
}

func TestDecodeHands_NoHands(t *testing.T) {
	hands, err := decodeHands([]byte(`{"hands":[]}`))
	if err != nil {
		t.Fatalf("decodeHands() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("expected no hands, got %d", len(hands))
	}
}

func TestSubprocessArgs(t *testing.T) {
	cfg := Config{MaxHands: 2, MinConfidence: 0.6, MinTrackingConf: 0.7}
	args := strings.Join(subprocessArgs("hand_landmarks.py", cfg), " ")

	want := "hand_landmarks.py --max-hands 2 --min-confidence 0.6 --min-tracking 0.7"
	if args != want {
		t.Errorf("subprocessArgs() = %q, want %q", args, want)
	}

	// An unset tracking threshold is left to the script default.
	cfg.MinTrackingConf = 0
	args = strings.Join(subprocessArgs("hand_landmarks.py", cfg), " ")
	if strings.Contains(args, "--min-tracking") {
		t.Errorf("unexpected tracking flag in %q", args)
	}
}

func TestFixtureHands_PinchDistance(t *testing.T) {
	// The pinch fixture must place thumb and index tips within the 0.05
	// pinch threshold; every other fixture must keep them apart.
	pinch := PinchHand()
	d := Distance(pinch.Points[ThumbTip], pinch.Points[IndexTip])
	if d >= 0.05 {
		t.Errorf("PinchHand thumb-index distance = %f, want < 0.05", d)
	}

	for name, hand := range map[string]HandLandmarks{
		"pointing": PointingHand(),
		"two":      TwoFingerHand(),
		"three":    ThreeFingerHand(),
		"open":     OpenHand(),
		"fist":     FistHand(),
	} {
		d := Distance(hand.Points[ThumbTip], hand.Points[IndexTip])
		if d < 0.05 {
			t.Errorf("%s hand thumb-index distance = %f, want >= 0.05", name, d)
		}
	}
}

func TestFixtureHands_FingerSeparation(t *testing.T) {
	// Extended fingertips must sit clearly further from the wrist than
	// their PIP joint; curled tips must not.
	hand := TwoFingerHand()
	wrist := hand.Points[Wrist]

	for _, tc := range []struct {
		name     string
		tip, pip int
		extended bool
	}{
		{"index", IndexTip, IndexPIP, true},
		{"middle", MiddleTip, MiddlePIP, true},
		{"ring", RingTip, RingPIP, false},
		{"pinky", PinkyTip, PinkyPIP, false},
	} {
		tipSq := DistanceSq(wrist, hand.Points[tc.tip])
		pipSq := DistanceSq(wrist, hand.Points[tc.pip])
		if tc.extended && tipSq < pipSq*1.1 {
			t.Errorf("%s: tip distance %f not beyond PIP %f", tc.name, tipSq, pipSq)
		}
		if !tc.extended && tipSq >= pipSq*1.1 {
			t.Errorf("%s: curled tip distance %f beyond PIP %f", tc.name, tipSq, pipSq)
		}
	}
}
