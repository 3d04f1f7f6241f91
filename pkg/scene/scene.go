package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const (
	// BaseWidth is the image width at scale 1
	BaseWidth = 200
	// DefaultScale multiplies BaseWidth for full-size renders
	DefaultScale = 8
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.ShapeList   // Objects in the scene
	RenderConfig renderer.RenderConfig // Recommended render settings
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// SetResolution sets the image width and derives the height from the camera's aspect ratio
func (s *Scene) SetResolution(width int) {
	s.RenderConfig.Width = width
	s.RenderConfig.Height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// SetScale sets the image width to scale times BaseWidth
func (s *Scene) SetScale(scale int) {
	s.SetResolution(BaseWidth * scale)
}

// newScene builds the camera after applying overrides and sizes the image at DefaultScale
func newScene(name string, defaultCameraConfig renderer.CameraConfig, cameraOverrides []renderer.CameraConfig, world *geometry.ShapeList) (*Scene, error) {
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:         name,
		Camera:       camera,
		CameraConfig: cameraConfig,
		World:        world,
		RenderConfig: renderer.DefaultRenderConfig(),
	}
	s.SetScale(DefaultScale)
	return s, nil
}
