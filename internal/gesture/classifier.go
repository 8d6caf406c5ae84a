// Package gesture classifies a single hand's landmarks into discrete
// interaction intents for the Nakshatra viewer.
package gesture

import (
	"github.com/ayusman/nakshatra/internal/detector"
)

// Label is the discrete gesture vocabulary. Exactly one label is current
// per frame; classification has no cross-frame memory.
type Label string

const (
	// LabelIdle is the fallback when no hand is present or no shape matches.
	LabelIdle Label = "idle"
	// LabelPoint is index finger extended, all others curled.
	LabelPoint Label = "point"
	// LabelPinch is thumb and index tips held together with no shape matched.
	LabelPinch Label = "pinch"
	// LabelTwo is index and middle fingers extended.
	LabelTwo Label = "two"
	// LabelThree is index, middle and ring fingers extended.
	LabelThree Label = "three"
	// LabelOpen is all four fingers extended.
	LabelOpen Label = "open"
)

// Classification thresholds. These are part of the behavioral contract:
// changing them changes user-visible gesture sensitivity.
const (
	// PinchThreshold is the maximum thumb-tip to index-tip distance, in
	// normalized screen coordinates, for a pinch to register.
	PinchThreshold = 0.05

	// PointGain scales the index-tip offset from frame center into the
	// pointing direction.
	PointGain = 4.0

	// extendRatio is the relative margin by which a fingertip's squared
	// distance from the wrist must exceed its PIP joint's to count as
	// extended. Comparing distances from the wrist, rather than vertical
	// position, keeps the test stable under hand rotation.
	extendRatio = 1.10

	// minSpanSq rejects degenerate geometry: hands with all landmarks
	// collapsed onto one point, and thumb/index tips at exactly the same
	// coordinates. Either would otherwise register as a zero-distance
	// pinch; real tracked fingertips never coincide exactly.
	minSpanSq = 1e-9

	frameCenter = 0.5
)

// Direction is a 2-D pointing direction derived from the index fingertip,
// used as the manual rotation target for the pointed-at body.
type Direction struct {
	X float64
	Y float64
}

// Classify maps one hand's landmarks to a gesture label. The returned
// Direction is meaningful only when the label is LabelPoint.
//
// Rules are evaluated in fixed priority order, first match wins: THREE,
// TWO, POINT, OPEN, then PINCH as a catch-all, then IDLE. Shape rules come
// before the pinch-distance rule so that a closed or pointing hand that
// incidentally brings thumb and index together is not misread as a pinch.
//
// Classify is pure and total: it never mutates the hand and never panics;
// a nil or degenerate hand classifies as IDLE.
func Classify(hand *detector.HandLandmarks) (Label, Direction) {
	if hand == nil {
		return LabelIdle, Direction{}
	}

	wrist := hand.Points[detector.Wrist]
	if detector.DistanceSq(wrist, hand.Points[detector.MiddleMCP]) < minSpanSq {
		return LabelIdle, Direction{}
	}

	index := fingerExtended(hand, detector.IndexTip, detector.IndexPIP)
	middle := fingerExtended(hand, detector.MiddleTip, detector.MiddlePIP)
	ring := fingerExtended(hand, detector.RingTip, detector.RingPIP)
	pinky := fingerExtended(hand, detector.PinkyTip, detector.PinkyPIP)

	pinchSq := detector.DistanceSq(
		hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
	pinching := pinchSq >= minSpanSq && pinchSq < PinchThreshold*PinchThreshold

	switch {
	case index && middle && ring && !pinky:
		return LabelThree, Direction{}
	case index && middle && !ring && !pinky:
		return LabelTwo, Direction{}
	case index && !middle && !ring && !pinky:
		tip := hand.Points[detector.IndexTip]
		return LabelPoint, Direction{
			X: (tip.X - frameCenter) * PointGain,
			Y: (tip.Y - frameCenter) * PointGain,
		}
	case index && middle && ring && pinky:
		return LabelOpen, Direction{}
	case pinching:
		return LabelPinch, Direction{}
	default:
		return LabelIdle, Direction{}
	}
}

// fingerExtended reports whether a fingertip is unambiguously further from
// the wrist than the finger's own PIP joint.
func fingerExtended(hand *detector.HandLandmarks, tip, pip int) bool {
	wrist := hand.Points[detector.Wrist]
	tipSq := detector.DistanceSq(wrist, hand.Points[tip])
	pipSq := detector.DistanceSq(wrist, hand.Points[pip])
	return tipSq >= pipSq*extendRatio
}
