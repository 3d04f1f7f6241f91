package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// referenceAspectRatio is the 3:2 frame of the full-size renders
const referenceAspectRatio = 3.0 / 2.0

// refractionShapes returns the diffuse, gold and hollow glass spheres over a large floor sphere
func refractionShapes() *geometry.ShapeList {
	glass := material.NewDielectric(1.5)

	return geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips the normals inward, leaving a thin glass shell
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
	)
}

// NewDefaultScene creates the refraction showcase seen from above and to the left
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: referenceAspectRatio,
	}

	return newScene("default", defaultCameraConfig, cameraOverrides, refractionShapes())
}

// NewMaterialsScene creates a fuzzy metal, a diffuse and a glass sphere seen head-on
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: referenceAspectRatio,
	}

	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1)),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	return newScene("materials", defaultCameraConfig, cameraOverrides, world)
}

// NewDefocusScene shows the refraction spheres through a wide aperture focused on the middle sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   2.0,
		Aperture:      2.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	return newScene("defocus", defaultCameraConfig, cameraOverrides, refractionShapes())
}

// NewDebugScene colors every surface by its normal
func NewDebugScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: referenceAspectRatio,
	}

	debug := material.NewNormalDebug()
	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, debug),
		geometry.NewSphere(core.NewVec3(-1.1, 0, -1.5), 0.4, debug),
		geometry.NewSphere(core.NewVec3(1.1, 0, -1.5), -0.4, debug),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, debug),
	)

	scene, err := newScene("debug", defaultCameraConfig, cameraOverrides, world)
	if err != nil {
		return nil, err
	}
	scene.RenderConfig.SamplesPerPixel = 16
	return scene, nil
}
