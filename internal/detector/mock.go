package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hands below share one layout: wrist at (0.5, 0.9), knuckle row
// around y=0.68, fingers fanning upward at x = 0.56 (index), 0.50 (middle),
// 0.44 (ring), 0.38 (pinky). Extended fingertips end up roughly twice as far
// from the wrist as their PIP joint; curled fingertips fold back toward the
// palm, well inside the PIP distance.

// fixtureWrist places the wrist and thumb in a neutral, non-pinching
// position: thumb tip at (0.70, 0.62), far from any fingertip.
func fixtureWrist(h *HandLandmarks) {
	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.90}
	h.Points[ThumbCMC] = Point3D{X: 0.57, Y: 0.82}
	h.Points[ThumbMCP] = Point3D{X: 0.63, Y: 0.76}
	h.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.68}
	h.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.62}
}

// extendFinger writes an extended finger: straight up from the knuckle.
func extendFinger(h *HandLandmarks, mcp int, x float64) {
	h.Points[mcp] = Point3D{X: x, Y: 0.68}
	h.Points[mcp+1] = Point3D{X: x, Y: 0.56} // PIP
	h.Points[mcp+2] = Point3D{X: x, Y: 0.46} // DIP
	h.Points[mcp+3] = Point3D{X: x, Y: 0.36} // tip
}

// curlFinger writes a curled finger: the tip folds back toward the palm.
func curlFinger(h *HandLandmarks, mcp int, x float64) {
	h.Points[mcp] = Point3D{X: x, Y: 0.68}
	h.Points[mcp+1] = Point3D{X: x + 0.01, Y: 0.62} // PIP
	h.Points[mcp+2] = Point3D{X: x, Y: 0.68}        // DIP
	h.Points[mcp+3] = Point3D{X: x - 0.01, Y: 0.73} // tip
}

func baseHand() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}
	fixtureWrist(&h)
	return h
}

// PointingHand returns a hand with only the index finger extended.
// The index tip sits at (0.58, 0.36).
func PointingHand() HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, 0.58)
	curlFinger(&h, MiddleMCP, 0.50)
	curlFinger(&h, RingMCP, 0.44)
	curlFinger(&h, PinkyMCP, 0.38)
	return h
}

// TwoFingerHand returns a hand with index and middle fingers extended.
func TwoFingerHand() HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, 0.56)
	extendFinger(&h, MiddleMCP, 0.50)
	curlFinger(&h, RingMCP, 0.44)
	curlFinger(&h, PinkyMCP, 0.38)
	return h
}

// ThreeFingerHand returns a hand with index, middle and ring fingers
// extended and the pinky curled.
func ThreeFingerHand() HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, 0.56)
	extendFinger(&h, MiddleMCP, 0.50)
	extendFinger(&h, RingMCP, 0.44)
	curlFinger(&h, PinkyMCP, 0.38)
	return h
}

// OpenHand returns a hand with all four fingers extended.
func OpenHand() HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, 0.56)
	extendFinger(&h, MiddleMCP, 0.50)
	extendFinger(&h, RingMCP, 0.44)
	extendFinger(&h, PinkyMCP, 0.38)
	return h
}

// PinchHand returns a hand with all fingers curled and the thumb tip
// brought within pinching distance of the index tip.
func PinchHand() HandLandmarks {
	h := baseHand()
	curlFinger(&h, IndexMCP, 0.56)
	curlFinger(&h, MiddleMCP, 0.50)
	curlFinger(&h, RingMCP, 0.44)
	curlFinger(&h, PinkyMCP, 0.38)

	// Thumb folded across the palm so the tip nearly touches the index tip.
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.82}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.78}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.75}
	h.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.72}
	return h
}

// FistHand returns a closed fist: all fingers curled, thumb resting
// against the side of the hand, outside pinching distance.
func FistHand() HandLandmarks {
	h := baseHand()
	curlFinger(&h, IndexMCP, 0.56)
	curlFinger(&h, MiddleMCP, 0.50)
	curlFinger(&h, RingMCP, 0.44)
	curlFinger(&h, PinkyMCP, 0.38)

	h.Points[ThumbCMC] = Point3D{X: 0.57, Y: 0.84}
	h.Points[ThumbMCP] = Point3D{X: 0.61, Y: 0.78}
	h.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.74}
	h.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.70}
	return h
}
