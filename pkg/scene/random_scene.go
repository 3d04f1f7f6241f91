package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// RandomSceneSeed fixes the layout of the random scene
const RandomSceneSeed = 0x1234abcd

// NewRandomScene creates a field of small random spheres around three large ones
func NewRandomScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   referenceAspectRatio,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	scene, err := newScene("random", defaultCameraConfig, cameraOverrides, randomShapes(RandomSceneSeed))
	if err != nil {
		return nil, err
	}
	scene.RenderConfig.UseBVH = true
	return scene, nil
}

// randomShapes builds the random sphere field from a seed
func randomShapes(seed int64) *geometry.ShapeList {
	random := rand.New(rand.NewSource(seed))
	randomColor := func() core.Vec3 {
		return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
	}

	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the space around the large metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMaterial < 0.8:
				sphereMaterial = material.NewLambertian(randomColor().MultiplyVec(randomColor()))
			case chooseMaterial < 0.95:
				albedo := randomColor().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
				sphereMaterial = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}

			world.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return world
}
