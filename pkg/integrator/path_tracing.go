package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance for secondary rays
const ShadowAcneEpsilon = 0.001

// DefaultMaxDepth is the bounce limit used when none is configured
const DefaultMaxDepth = 50

// PathTracingIntegrator implements unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	maxDepth    int
	topColor    core.Vec3 // Sky color straight up
	bottomColor core.Vec3 // Sky color straight down
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{
		maxDepth:    maxDepth,
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// MaxDepth returns the bounce limit
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.rayColorRecursive(ray, world, sampler, pt.maxDepth)
}

// rayColorRecursive traces one bounce; depth counts the bounces still allowed.
// Escaping rays see the sky at any depth.
func (pt *PathTracingIntegrator) rayColorRecursive(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.MaxFloat64)
	if !isHit {
		return pt.backgroundGradient(ray)
	}

	// A surface reached with no bounces left gathers no light
	if depth <= 0 || hit.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColorRecursive(scatter.Scattered, world, sampler, depth-1))
}

// backgroundGradient blends from bottomColor to topColor by the ray's vertical direction
func (pt *PathTracingIntegrator) backgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return pt.bottomColor.Multiply(1.0 - t).Add(pt.topColor.Multiply(t))
}
