package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// NormalDebug scatters like a diffuse surface but colors each hit by the direction of its normal.
// Quadrants of (n.x, n.y) map to red (+,+), green (+,-), blue (-,+) and black (-,-),
// scaled by |n.z|. Normals nearly perpendicular to Z show as white.
type NormalDebug struct{}

// NewNormalDebug creates a new normal-visualizing material
func NewNormalDebug() *NormalDebug {
	return &NormalDebug{}
}

// Scatter implements the Material interface
func (nd *NormalDebug) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, diffuseDirection(hit.Normal, sampler)),
		Attenuation: NormalColor(hit.Normal),
	}, true
}

// NormalColor returns the debug color for a normal
func NormalColor(n core.Vec3) core.Vec3 {
	magnitude := math.Abs(n.Z)
	if magnitude < 0.01 {
		return core.NewVec3(1, 1, 1)
	}

	var base core.Vec3
	switch {
	case n.X > 0 && n.Y > 0:
		base = core.NewVec3(1, 0, 0)
	case n.X > 0 && n.Y < 0:
		base = core.NewVec3(0, 1, 0)
	case n.X < 0 && n.Y > 0:
		base = core.NewVec3(0, 0, 1)
	case n.X < 0 && n.Y < 0:
		base = core.NewVec3(0, 0, 0)
	default:
		base = core.NewVec3(1, 1, 1)
	}
	return base.Multiply(magnitude)
}
