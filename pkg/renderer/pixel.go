package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// PixelRenderer turns image coordinates into gamma-corrected colors.
// It holds only read-only state and is shared by every worker.
type PixelRenderer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	antialias  bool
}

// NewPixelRenderer creates a pixel renderer for a width x height image
func NewPixelRenderer(camera *Camera, world geometry.Shape, integrator integrator.Integrator, width, height, samples int, antialias bool) *PixelRenderer {
	return &PixelRenderer{
		camera:     camera,
		world:      world,
		integrator: integrator,
		width:      width,
		height:     height,
		samples:    samples,
		antialias:  antialias,
	}
}

// RenderPixel returns the gamma-corrected color of the pixel at (row, col), row 0 being the top
func (pr *PixelRenderer) RenderPixel(row, col int, sampler core.Sampler) core.Vec3 {
	// Viewport t grows upward, image rows grow downward
	j := float64(pr.height - 1 - row)
	i := float64(col)

	if !pr.antialias {
		ray := pr.camera.GetRay((i+0.5)/float64(pr.width), (j+0.5)/float64(pr.height), sampler)
		return pr.integrator.RayColor(ray, pr.world, sampler).GammaCorrect(2.0)
	}

	colorAccum := core.Vec3{}
	for sample := 0; sample < pr.samples; sample++ {
		s := (i + sampler.Get1D()) / float64(pr.width)
		t := (j + sampler.Get1D()) / float64(pr.height)

		ray := pr.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(pr.integrator.RayColor(ray, pr.world, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(pr.samples)).GammaCorrect(2.0)
}

// RenderRow fills dst with one image row
func (pr *PixelRenderer) RenderRow(row int, dst []core.Vec3, sampler core.Sampler) {
	for col := range dst {
		dst[col] = pr.RenderPixel(row, col, sampler)
	}
}

// SamplesPerPixel returns how many rays each pixel traces
func (pr *PixelRenderer) SamplesPerPixel() int {
	if !pr.antialias {
		return 1
	}
	return pr.samples
}

// RowSeed derives the random seed of one image row, so a row renders the same
// no matter which worker picks it up
func RowSeed(seed int64, row int) int64 {
	return int64(uint64(seed) ^ (uint64(row)+1)*0x9E3779B97F4A7C15)
}
