package renderer

import (
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/pkg/errors"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// RowCompletion describes a finished block of rows
type RowCompletion struct {
	StartRow int
	EndRow   int
	Pixels   [][]core.Vec3 // Gamma-corrected rows, StartRow first
}

// Raytracer schedules a full-frame render across a worker pool
type Raytracer struct {
	scene       Scene
	config      RenderConfig
	integrator  integrator.Integrator
	logger      core.Logger
	rowCallback func(RowCompletion)
}

// NewRaytracer creates a raytracer after validating the scene and configuration
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene == nil || scene.GetCamera() == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "scene has no camera")
	}
	if scene.GetWorld() == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "scene has no world")
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		logger:     logger,
	}, nil
}

// SetRowCallback registers a function called once per finished row range.
// It runs on the goroutine that called Render, in completion order.
func (rt *Raytracer) SetRowCallback(callback func(RowCompletion)) {
	rt.rowCallback = callback
}

// Render produces the whole frame. Any failing task aborts the render and no image is returned.
func (rt *Raytracer) Render() (*FrameBuffer, RenderStats, error) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height

	world := rt.scene.GetWorld()
	if list, ok := world.(*geometry.ShapeList); ok && rt.config.UseBVH {
		bvh := geometry.NewBVH(list.Shapes)
		bvhStats := bvh.Stats()
		rt.logger.Printf("Built BVH over %d shapes: %d nodes, %d leaves, max depth %d\n",
			bvhStats.TotalShapes, bvhStats.TotalNodes, bvhStats.LeafNodes, bvhStats.MaxDepth)
		world = bvh
	}

	pixelRenderer := NewPixelRenderer(rt.scene.GetCamera(), world, rt.integrator,
		width, height, rt.config.SamplesPerPixel, rt.config.Antialias)

	numWorkers := rt.config.Workers()
	tasks := PartitionRows(height, numWorkers*tasksPerWorker)

	stats := RenderStats{
		SamplesPerPixel: pixelRenderer.SamplesPerPixel(),
		Tasks:           len(tasks),
		Workers:         numWorkers,
	}

	rt.logger.Printf("Rendering %dx%d, %d samples, depth %d, %d workers, %d tasks\n",
		width, height, stats.SamplesPerPixel, rt.config.MaxDepth, numWorkers, len(tasks))

	frame := NewFrameBuffer(width, height)
	var renderErr error
	collect := func(result RowResult) bool {
		if result.Error != nil {
			if renderErr == nil || errors.Cause(renderErr) == ErrRenderAborted {
				renderErr = result.Error
			}
			return false
		}
		frame.SetRows(result.StartRow, result.Pixels)
		stats.addRows(result.EndRow-result.StartRow, width)
		rt.logger.Printf("Render done [%d,%d), rows=%d\n", result.StartRow, result.EndRow, result.EndRow-result.StartRow)
		if rt.rowCallback != nil {
			rt.rowCallback(RowCompletion{StartRow: result.StartRow, EndRow: result.EndRow, Pixels: result.Pixels})
		}
		return true
	}

	if rt.config.Parallel {
		stats.Workers = rt.renderParallel(pixelRenderer, tasks, numWorkers, collect)
	} else {
		rt.renderSequential(pixelRenderer, tasks, collect)
	}

	stats.Duration = time.Since(start)
	if renderErr != nil {
		rt.logger.Printf("Render failed after %v: %v\n", stats.Duration, renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return frame, stats, nil
}

// renderParallel feeds every task to a worker pool and stops scheduling new work after the first failure.
// It returns the number of workers the pool ran.
func (rt *Raytracer) renderParallel(pixelRenderer *PixelRenderer, tasks []RowTask, numWorkers int, collect func(RowResult) bool) int {
	pool := NewWorkerPool(pixelRenderer, rt.config.Seed, numWorkers, len(tasks))
	pool.Start()

	for _, task := range tasks {
		pool.SubmitTask(task)
	}

	for range tasks {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if !collect(result) {
			pool.Abort()
		}
	}

	pool.Stop()
	return pool.GetNumWorkers()
}

// renderSequential runs every task on the calling goroutine
func (rt *Raytracer) renderSequential(pixelRenderer *PixelRenderer, tasks []RowTask, collect func(RowResult) bool) {
	worker := newWorker(0, pixelRenderer, rt.config.Seed)
	for _, task := range tasks {
		if !collect(worker.renderTask(task)) {
			return
		}
	}
}
