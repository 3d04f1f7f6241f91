package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The outgoing direction is the normal offset by a uniform point in the unit sphere; it never absorbs.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, diffuseDirection(hit.Normal, sampler)),
		Attenuation: l.Albedo,
	}, true
}

// diffuseDirection offsets the normal by a random point in the unit sphere
func diffuseDirection(normal core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := normal.Add(core.SamplePointInUnitSphere(sampler.Get3D()))

	// The sample can cancel the normal almost exactly
	if direction.NearZero() {
		return normal
	}
	return direction
}
