// Package scene converts interaction state and elapsed time into smoothed
// camera and object trajectories for the renderer.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/nakshatra/internal/state"
)

// Free-camera distance law. With no focus target the camera sits on the
// +Z axis at a distance derived from the zoom level: negative zoom pushes
// linearly past the base distance, non-negative zoom interpolates from the
// base distance down to the minimum.
const (
	BaseDistance = 26.0
	MinDistance  = 8.0
	CameraHeight = 6.0

	// farRate is the extra distance per unit of negative zoom.
	farRate = 18.0
)

// Orbit parameters per body. Saturn and Earth circle the origin in the XZ
// plane; the Moon circles Earth on a faster, tighter orbit driven by the
// same clock.
const (
	saturnOrbitRadius = 14.0
	saturnOrbitSpeed  = 0.11

	earthOrbitRadius = 20.0
	earthOrbitSpeed  = 0.07

	moonOrbitRadius = 2.6
	moonOrbitSpeed  = 0.9
)

// Per-body camera offsets: the camera target is the body position plus this
// offset, while the look-at target is the body itself.
var (
	saturnCameraOffset = mgl64.Vec3{0, 2.5, 7.0}
	earthCameraOffset  = mgl64.Vec3{0, 1.8, 5.5}
	moonCameraOffset   = mgl64.Vec3{0, 1.0, 3.2}
)

// SaturnPosition returns Saturn's orbital position at elapsed time t,
// in seconds.
func SaturnPosition(t float64) mgl64.Vec3 {
	a := t * saturnOrbitSpeed
	return mgl64.Vec3{math.Cos(a) * saturnOrbitRadius, 0, math.Sin(a) * saturnOrbitRadius}
}

// EarthPosition returns Earth's orbital position at elapsed time t.
func EarthPosition(t float64) mgl64.Vec3 {
	a := t * earthOrbitSpeed
	return mgl64.Vec3{math.Cos(a) * earthOrbitRadius, 0, math.Sin(a) * earthOrbitRadius}
}

// MoonPosition returns the Moon's absolute position at elapsed time t:
// Earth's orbital position plus the Moon's own orbital offset around it.
func MoonPosition(t float64) mgl64.Vec3 {
	a := t * moonOrbitSpeed
	offset := mgl64.Vec3{math.Cos(a) * moonOrbitRadius, 0, math.Sin(a) * moonOrbitRadius}
	return EarthPosition(t).Add(offset)
}

// FreeCameraDistance maps a zoom level to the free camera's distance from
// the origin. At zoom 0 the camera sits exactly at the base distance.
func FreeCameraDistance(zoom float64) float64 {
	if zoom < 0 {
		return BaseDistance - zoom*farRate
	}
	return BaseDistance + (MinDistance-BaseDistance)*(zoom/state.MaxZoom)
}
