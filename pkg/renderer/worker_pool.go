package renderer

import (
	"sync"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/pkg/errors"
)

// RowTask is a contiguous range of image rows [StartRow, EndRow)
type RowTask struct {
	TaskID   int // Position of the range in top-to-bottom order
	StartRow int
	EndRow   int
}

// RowResult contains the rendered rows of one task
type RowResult struct {
	TaskID   int
	StartRow int
	EndRow   int
	Pixels   [][]core.Vec3 // Gamma-corrected rows, StartRow first
	Error    error
}

// WorkerPool renders row tasks in parallel
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// Worker renders row tasks with its own random sequence
type Worker struct {
	ID          int
	renderer    *PixelRenderer
	sampler     *core.RandomSampler
	seed        int64
	width       int
	taskQueue   chan RowTask
	resultQueue chan RowResult
	stopChan    chan struct{}
}

// NewWorkerPool creates a pool sized for maxTasks queued tasks
func NewWorkerPool(renderer *PixelRenderer, seed int64, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
		stopChan:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		worker := newWorker(i, renderer, seed)
		worker.taskQueue = wp.taskQueue
		worker.resultQueue = wp.resultQueue
		worker.stopChan = wp.stopChan
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

func newWorker(id int, renderer *PixelRenderer, seed int64) *Worker {
	return &Worker{
		ID:       id,
		renderer: renderer,
		sampler:  core.NewSeededSampler(seed),
		seed:     seed,
		width:    renderer.width,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// Abort makes workers skip every task they have not started yet
func (wp *WorkerPool) Abort() {
	wp.stopOnce.Do(func() { close(wp.stopChan) })
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		select {
		case <-w.stopChan:
			w.resultQueue <- RowResult{
				TaskID:   task.TaskID,
				StartRow: task.StartRow,
				EndRow:   task.EndRow,
				Error:    ErrRenderAborted,
			}
		default:
			w.resultQueue <- w.renderTask(task)
		}
	}
}

// renderTask renders every row of a task, reseeding per row.
// A panic anywhere below is reported as the task's error.
func (w *Worker) renderTask(task RowTask) (result RowResult) {
	result = RowResult{TaskID: task.TaskID, StartRow: task.StartRow, EndRow: task.EndRow}

	defer func() {
		if r := recover(); r != nil {
			result.Pixels = nil
			result.Error = errors.Errorf("worker %d failed rendering rows [%d,%d): %v",
				w.ID, task.StartRow, task.EndRow, r)
		}
	}()

	result.Pixels = make([][]core.Vec3, task.EndRow-task.StartRow)
	for row := task.StartRow; row < task.EndRow; row++ {
		w.sampler.Reseed(RowSeed(w.seed, row))
		pixels := make([]core.Vec3, w.width)
		w.renderer.RenderRow(row, pixels, w.sampler)
		result.Pixels[row-task.StartRow] = pixels
	}

	return result
}
