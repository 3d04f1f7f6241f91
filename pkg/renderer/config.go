package renderer

import (
	"runtime"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is the cause of every configuration validation failure
	ErrInvalidConfig = errors.New("invalid render configuration")

	// ErrRenderAborted is reported for row tasks skipped after another task failed
	ErrRenderAborted = errors.New("render aborted")
)

// RenderConfig contains the render parameters
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Jittered rays per pixel when antialiasing
	MaxDepth        int   // Maximum ray bounce depth
	Antialias       bool  // false traces one ray through each pixel center
	Parallel        bool  // false renders every row on the calling goroutine
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed; every row derives its own sequence from it
	UseBVH          bool  // Replace the linear shape scan with a BVH
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Antialias:       true,
		Parallel:        true,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate rejects configurations that cannot produce an image
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "image size %dx%d must be positive", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "samples per pixel %d must be positive", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max depth %d must be positive", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "worker count %d must not be negative", c.NumWorkers)
	}
	return nil
}

// Workers returns the effective worker count
func (c RenderConfig) Workers() int {
	if !c.Parallel {
		return 1
	}
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}
