package app

import (
	"log"
	"time"

	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/state"
	"github.com/ayusman/nakshatra/internal/store"
)

// runPipeline is the per-tick loop: read a frame, classify the hand, apply
// the gesture's store mutations, then advance the camera trajectory. The
// loop idles at a low tick rate and speeds up while motion is present.
//
// Every tick ends with exactly one controller advance, even when no frame
// or no hand is available; classification failures degrade to IDLE, which
// mutates nothing beyond the gesture label.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()
	lastLabel := gesture.LabelIdle

	idleInterval := time.Second / time.Duration(a.cfg.Pipeline.IdleFPS)
	activeInterval := time.Second / time.Duration(a.cfg.Pipeline.ActiveFPS)

	ticker := time.NewTicker(idleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			label := gesture.LabelIdle
			var dir gesture.Direction

			if a.IsEnabled() {
				frame, err := a.camera.ReadFrame()
				if err == nil {
					motionDetected, _ := a.motion.Detect(frame)

					if motionDetected {
						lastMotionTime = time.Now()
						if !activeMode {
							activeMode = true
							a.camera.SetFPS(a.cfg.Pipeline.ActiveFPS)
							ticker.Reset(activeInterval)
							log.Println("Switched to active mode")
						}
					} else if activeMode && time.Since(lastMotionTime) > a.cfg.Pipeline.IdleTimeout {
						activeMode = false
						a.camera.SetFPS(a.cfg.Pipeline.IdleFPS)
						ticker.Reset(idleInterval)
						log.Println("Switched to idle mode")
					}

					if activeMode {
						hands, err := a.Detector().Detect(frame)
						if err != nil {
							log.Printf("Error detecting hands: %v", err)
						} else if len(hands) > 0 {
							label, dir = gesture.Classify(&hands[0])
						}
					}

					frame.Close()
				}
			}

			a.applyGesture(label, dir)

			snap := a.state.Snapshot()
			a.controller.Advance(time.Since(a.start).Seconds(), snap)

			if label != lastLabel {
				a.recordTransition(label, snap)
				lastLabel = label
			}
		}
	}
}

// applyGesture performs the store mutations each gesture label implies.
// Classification itself stays pure; all side effects live here.
func (a *App) applyGesture(label gesture.Label, dir gesture.Direction) {
	a.state.SetGesture(label)

	switch label {
	case gesture.LabelThree:
		a.state.SetFocus(state.FocusMoon)
	case gesture.LabelTwo:
		a.state.SetFocus(state.FocusEarth)
	case gesture.LabelPoint:
		a.state.SetFocus(state.FocusSaturn)
		a.state.SetRotation(dir.X, dir.Y)
	case gesture.LabelOpen:
		a.state.IncreaseZoom(state.ZoomStep)
	case gesture.LabelPinch:
		a.state.SetFocus(state.FocusNone)
		a.state.DecreaseZoom(state.ZoomStep)
	}
}

// recordTransition appends a gesture change to the telemetry session.
func (a *App) recordTransition(label gesture.Label, snap state.Snapshot) {
	if a.telemetry == nil || a.sessionID == "" {
		return
	}

	err := a.telemetry.Sessions().RecordEvent(&store.Event{
		SessionID: a.sessionID,
		Label:     string(label),
		Focus:     string(snap.Focus),
		Zoom:      snap.Zoom,
		RotX:      snap.RotX,
		RotY:      snap.RotY,
		OffsetMs:  time.Since(a.start).Milliseconds(),
	})
	if err != nil {
		log.Printf("Failed to record gesture event: %v", err)
	}
}
