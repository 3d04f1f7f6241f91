package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter (0 = pinhole)
	FocusDistance float64   // Distance to the plane in focus (0 = auto-calculate from Center to LookAt)
}

// Validate rejects degenerate cameras
func (c CameraConfig) Validate() error {
	for _, v := range []core.Vec3{c.Center, c.LookAt, c.Up} {
		if !v.IsFinite() {
			return errors.Wrapf(ErrInvalidConfig, "camera vector %v is not finite", v)
		}
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return errors.Wrapf(ErrInvalidConfig, "camera vfov %g must be inside (0, 180)", c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return errors.Wrapf(ErrInvalidConfig, "camera aspect ratio %g must be positive", c.AspectRatio)
	}
	if c.Aperture < 0 || c.FocusDistance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "camera aperture %g and focus distance %g must not be negative",
			c.Aperture, c.FocusDistance)
	}

	view := c.Center.Subtract(c.LookAt)
	if view.NearZero() {
		return errors.Wrap(ErrInvalidConfig, "camera center and look-at point coincide")
	}
	if c.Up.Cross(view.Normalize()).NearZero() {
		return errors.Wrapf(ErrInvalidConfig, "camera up %v is parallel to the view direction", c.Up)
	}
	return nil
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates primary rays through a thin lens
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from a validated configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := mgl64.DegToRad(config.VFov)
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth * focusDistance)
	vertical := v.Multiply(2 * halfHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for viewport coordinates (s, t), where (0,0) is the lower-left corner.
// The sampler is only consulted when the lens has a non-zero radius.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetConfig returns the configuration the camera was built from
func (c *Camera) GetConfig() CameraConfig {
	return c.config
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
