package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value1D float64
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value1D }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value1D, f.value1D) }
func (f fixedSampler) Get3D() core.Vec3 { return f.value3D }

// recordingSampler wraps a sampler and remembers the last 3D sample it handed out
type recordingSampler struct {
	core.Sampler
	last3D core.Vec3
}

func (r *recordingSampler) Get3D() core.Vec3 {
	r.last3D = r.Sampler.Get3D()
	return r.last3D
}
