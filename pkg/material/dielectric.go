package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract.
// The medium on the other side of the surface is assumed to have index 1.
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()

	// Hit normals are not flipped, so the side is decided here:
	// a ray travelling along the normal is leaving the material.
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	if unitDirection.Dot(hit.Normal) > 0 {
		normal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
	}

	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)

	var direction core.Vec3
	refracted, canRefract := refractVector(unitDirection, normal, refractionRatio)
	if !canRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflectVector(unitDirection, normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractVector refracts the unit vector uv through a surface with normal n facing the incident side.
// It returns false on total internal reflection (non-positive discriminant).
func refractVector(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-cosTheta*cosTheta)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(discriminant))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// An index-matched interface (R0 == 0) reflects nothing.
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	if r0 == 0 {
		return 0
	}
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
