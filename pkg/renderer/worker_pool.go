package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// PixelSampler produces one radiance sample for a pixel. It must be safe to
// call concurrently as long as each caller passes its own random source.
type PixelSampler interface {
	RenderSample(x, y, maxDepth int, random *rand.Rand) core.Vec3
}

// SampleTask is one disjoint slice of a visitation order
type SampleTask struct {
	Indices  []int // Pixel indices; no index appears in any other task of the same batch
	Width    int
	MaxDepth int
	Sampler  PixelSampler
	Accum    []PixelStats // Shared accumulation buffer, written only at Indices
}

// SampleResult reports how many samples a task added
type SampleResult struct {
	Samples int
}

// WorkerPool manages parallel sample accumulation
type WorkerPool struct {
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

// Worker handles individual sample tasks with its own random source
type Worker struct {
	ID          int
	random      *rand.Rand
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Worker i draws from a random source seeded with seed+i+1.
func NewWorkerPool(numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan SampleTask, numWorkers),
		resultQueue: make(chan SampleResult, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			random:      rand.New(rand.NewSource(seed + int64(i) + 1)),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers. It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
		wp.wg.Wait()
		close(wp.resultQueue)
	})
}

// RunBatch splits indices into one contiguous span per worker, waits for all
// of them and returns the number of samples added
func (wp *WorkerPool) RunBatch(indices []int, width, maxDepth int, sampler PixelSampler, accum []PixelStats) int {
	spans := partition(len(indices), wp.numWorkers)

	// Submit from a separate goroutine so results can drain while tasks queue
	go func() {
		for _, s := range spans {
			wp.taskQueue <- SampleTask{
				Indices:  indices[s.start:s.end],
				Width:    width,
				MaxDepth: maxDepth,
				Sampler:  sampler,
				Accum:    accum,
			}
		}
	}()

	total := 0
	for range spans {
		result := <-wp.resultQueue
		total += result.Samples
	}
	return total
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		for _, idx := range task.Indices {
			x, y := idx%task.Width, idx/task.Width
			color := task.Sampler.RenderSample(x, y, task.MaxDepth, w.random)
			task.Accum[idx].AddSample(color)
		}
		w.resultQueue <- SampleResult{Samples: len(task.Indices)}
	}
}

// span is a half-open range [start, end)
type span struct {
	start, end int
}

// partition splits [0, n) into at most parts contiguous, non-empty,
// non-overlapping spans that together cover the range
func partition(n, parts int) []span {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	spans := make([]span, 0, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < extra {
			end++
		}
		spans = append(spans, span{start, end})
		start = end
	}
	return spans
}
