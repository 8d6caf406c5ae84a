// Package app wires capture, detection, classification and the trajectory
// controller into the per-tick interaction pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/nakshatra/internal/capture"
	"github.com/ayusman/nakshatra/internal/config"
	"github.com/ayusman/nakshatra/internal/detector"
	"github.com/ayusman/nakshatra/internal/scene"
	"github.com/ayusman/nakshatra/internal/state"
	"github.com/ayusman/nakshatra/internal/store"
)

// App owns the detection pipeline and the interaction state it drives.
type App struct {
	cfg        config.Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	state      *state.Store
	controller *scene.Controller
	telemetry  *store.Store
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	start      time.Time
	sessionID  string
}

// New creates a new App instance with the given configuration. The
// telemetry store may be nil to disable session recording.
func New(cfg config.Config, telemetry *store.Store) *App {
	motionThreshold := cfg.Pipeline.MotionThreshold
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	camera := capture.NewCamera(cfg.Camera.Device)
	if cfg.Camera.Width > 0 || cfg.Camera.Height > 0 {
		camera = capture.NewCameraWithSize(cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height)
	}

	a := &App{
		cfg:        cfg,
		camera:     camera,
		motion:     capture.NewMotionDetector(motionThreshold),
		state:      state.New(),
		controller: scene.NewController(),
		telemetry:  telemetry,
		enabled:    true,
	}

	// Try MediaPipe first, fall back to mock detector
	detCfg := detector.DefaultConfig()
	if cfg.Detector.MaxHands > 0 {
		detCfg.MaxHands = cfg.Detector.MaxHands
	}
	if cfg.Detector.MinConfidence > 0 {
		detCfg.MinConfidence = cfg.Detector.MinConfidence
	}
	if cfg.Detector.MinTracking > 0 {
		detCfg.MinTrackingConf = cfg.Detector.MinTracking
	}
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture tracking. While disabled the
// pipeline keeps advancing the camera trajectory from the last state.
// Re-enabling clears the motion baseline so the first frame after a pause
// is not diffed against a stale one.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if enabled && !a.enabled {
		a.motion.Reset()
	}
	a.enabled = enabled
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use. Only valid before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(a.cfg.Pipeline.IdleFPS)

	if a.telemetry != nil {
		if session, err := a.telemetry.Sessions().Begin(); err != nil {
			log.Printf("Failed to begin telemetry session: %v", err)
		} else {
			a.sessionID = session.ID
		}
	}

	a.start = time.Now()
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources. Safe to call
// more than once.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.telemetry != nil && a.sessionID != "" {
		if err := a.telemetry.Sessions().End(a.sessionID); err != nil {
			log.Printf("Error ending telemetry session: %v", err)
		}
		a.sessionID = ""
	}

	log.Println("Detection pipeline stopped")
}

// State returns the interaction store.
func (a *App) State() *state.Store {
	return a.state
}

// Controller returns the trajectory controller.
func (a *App) Controller() *scene.Controller {
	return a.controller
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
