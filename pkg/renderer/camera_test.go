package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/pkg/errors"
)

// vecClose compares components with an absolute tolerance so zero components work
func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	camera, err := NewCamera(testCameraConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, nil)
			if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
				t.Errorf("Pinhole ray should start at the eye, got %v", ray.Origin)
			}
			if !vecClose(ray.Direction, tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_FocusDistanceScalesViewport(t *testing.T) {
	config := testCameraConfig()
	config.FocusDistance = 2.0
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(0, 0, nil)
	expected := core.NewVec3(-4, -2, -2)
	if !vecClose(ray.Direction, expected, 1e-9) {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := testCameraConfig()
	config.LookAt = core.NewVec3(0, 0, -3)
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, nil)
	if !vecClose(ray.Direction, core.NewVec3(0, 0, -3), 1e-9) {
		t.Errorf("Expected the center ray to reach the look-at point, got %v", ray.Direction)
	}
}

func TestCamera_GetCameraForward(t *testing.T) {
	config := testCameraConfig()
	config.Center = core.NewVec3(1, 0, 0)
	config.LookAt = core.NewVec3(1, 0, -5)
	camera, _ := NewCamera(config)

	if forward := camera.GetCameraForward(); !vecClose(forward, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected forward (0,0,-1), got %v", forward)
	}
}

func TestCamera_LensSampling(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(3, 3, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 2.0,
		Aperture:    2.0,
	}
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sampler := core.NewSeededSampler(42)
	view := config.Center.Subtract(config.LookAt).Normalize()

	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		offset := ray.Origin.Subtract(config.Center)

		if offset.Length() > 1.0+1e-9 {
			t.Fatalf("Lens offset %v exceeds lens radius 1", offset)
		}
		if math.Abs(offset.Dot(view)) > 1e-9 {
			t.Fatalf("Lens offset %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}

		// Every center ray converges on the look-at point on the focus plane
		if !vecClose(ray.At(1), config.LookAt, 1e-9) {
			t.Fatalf("Expected center ray to pass through %v, got %v", config.LookAt, ray.At(1))
		}
	}

	if !moved {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero vfov", func(c *CameraConfig) { c.VFov = 0 }},
		{"vfov 180", func(c *CameraConfig) { c.VFov = 180 }},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -1 }},
		{"negative focus", func(c *CameraConfig) { c.FocusDistance = -1 }},
		{"eye equals look-at", func(c *CameraConfig) { c.LookAt = c.Center }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"NaN center", func(c *CameraConfig) { c.Center = core.NewVec3(math.NaN(), 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)

			_, err := NewCamera(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if errors.Cause(err) != ErrInvalidConfig {
				t.Errorf("Expected ErrInvalidConfig cause, got %v", err)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := testCameraConfig()
	override := CameraConfig{
		Center:   core.NewVec3(1, 2, 3),
		VFov:     30,
		Aperture: 0.5,
	}

	merged := MergeCameraConfig(base, override)

	if !merged.Center.Equals(override.Center) {
		t.Errorf("Expected center %v, got %v", override.Center, merged.Center)
	}
	if merged.VFov != 30 || merged.Aperture != 0.5 {
		t.Errorf("Expected overridden vfov and aperture, got %f and %f", merged.VFov, merged.Aperture)
	}
	if !merged.LookAt.Equals(base.LookAt) || !merged.Up.Equals(base.Up) || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Expected unset fields to keep base values, got %+v", merged)
	}
}
