package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/nakshatra/internal/state"
)

// SmoothRate is the exponential smoothing factor applied once per tick:
// actual += (target - actual) * SmoothRate. Position, look-at and object
// rotation are smoothed independently at the same rate. Part of the
// behavioral contract.
const SmoothRate = 0.05

// Pose is the smoothed camera pose and object rotation actually rendered,
// as opposed to the per-tick target it is converging toward.
type Pose struct {
	CameraPosition mgl64.Vec3 `json:"camera_position"`
	LookAt         mgl64.Vec3 `json:"look_at"`
	ObjectPitch    float64    `json:"object_pitch"`
	ObjectRoll     float64    `json:"object_roll"`
}

// Controller owns the only cross-tick memory in the interaction core: the
// last rendered pose. Each tick it computes a target pose from the focus
// target, zoom level and elapsed time, then advances the actual pose toward
// it. Focus changes take effect on the next tick; the visual transition is
// gradual only because smoothing lags the target.
type Controller struct {
	mu       sync.RWMutex
	position mgl64.Vec3
	lookAt   mgl64.Vec3
	objPitch float64
	objRoll  float64
}

// NewController creates a Controller starting at the free camera pose for
// the default zoom level, looking at the origin.
func NewController() *Controller {
	return &Controller{
		position: mgl64.Vec3{0, CameraHeight, FreeCameraDistance(state.DefaultZoom)},
	}
}

// Advance computes the target pose for elapsed time t (seconds) and the
// given interaction snapshot, advances the smoothed pose one step toward
// it, and returns the result. It must be called exactly once per tick.
func (c *Controller) Advance(t float64, snap state.Snapshot) Pose {
	targetPos, targetLook := targetFor(t, snap)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = lerp(c.position, targetPos, SmoothRate)
	c.lookAt = lerp(c.lookAt, targetLook, SmoothRate)

	// The manual rotation override is only read while pointing at Saturn;
	// on other targets the object keeps its last smoothed value.
	if snap.Focus == state.FocusSaturn {
		c.objPitch += (snap.RotX - c.objPitch) * SmoothRate
		c.objRoll += (snap.RotY - c.objRoll) * SmoothRate
	}

	return Pose{
		CameraPosition: c.position,
		LookAt:         c.lookAt,
		ObjectPitch:    c.objPitch,
		ObjectRoll:     c.objRoll,
	}
}

// Pose returns the last smoothed pose. Safe to call from the render feed
// while the pipeline goroutine is advancing.
func (c *Controller) Pose() Pose {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Pose{
		CameraPosition: c.position,
		LookAt:         c.lookAt,
		ObjectPitch:    c.objPitch,
		ObjectRoll:     c.objRoll,
	}
}

// targetFor derives the target camera position and look-at point for one
// tick. With a focus target the camera chases the body plus its offset; with
// none it sits on the zoom-derived overview position looking at the origin.
func targetFor(t float64, snap state.Snapshot) (pos, look mgl64.Vec3) {
	switch snap.Focus {
	case state.FocusSaturn:
		p := SaturnPosition(t)
		return p.Add(saturnCameraOffset), p
	case state.FocusEarth:
		p := EarthPosition(t)
		return p.Add(earthCameraOffset), p
	case state.FocusMoon:
		p := MoonPosition(t)
		return p.Add(moonCameraOffset), p
	default:
		pos = mgl64.Vec3{0, CameraHeight, FreeCameraDistance(snap.Zoom)}
		return pos, mgl64.Vec3{}
	}
}

func lerp(from, to mgl64.Vec3, rate float64) mgl64.Vec3 {
	return from.Add(to.Sub(from).Mul(rate))
}
