package renderer

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/log"
)

var logger = log.New("renderer")

var ErrClosed = errors.New("renderer: render state is closed")

// StateConfig contains configuration for progressive accumulation
type StateConfig struct {
	Orders     int   // Number of pre-shuffled visitation orders cycled on restore
	BatchSize  int   // Pixels per batch; the time budget is checked between batches
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Seeds the order shuffles and the worker random sources
}

// DefaultStateConfig returns sensible default values
func DefaultStateConfig() StateConfig {
	return StateConfig{
		Orders:     5,
		BatchSize:  10000,
		NumWorkers: 0,
		Seed:       42,
	}
}

// RenderState owns the accumulation buffer and the pixel visitation orders.
// Each call to Advance adds one sample to successive pixels of the active
// order until the time budget runs out or every pixel has samplesPerPixel
// samples. It is not safe for concurrent use; callers serialize Advance with
// camera and resolution changes.
type RenderState struct {
	width, height int
	config        StateConfig

	accum  []PixelStats
	orders [][]int
	active int // Index of the active order
	cursor int // Next position in the active order

	totalSamples    int
	samplesPerPixel int // Target of the most recent Advance

	shuffle *rand.Rand
	pool    *WorkerPool
	closed  bool
}

// NewRenderState creates an empty state for a width x height image and
// starts its worker pool. Call Close to stop the workers.
func NewRenderState(width, height int, config StateConfig) *RenderState {
	defaults := DefaultStateConfig()
	if config.Orders <= 0 {
		config.Orders = defaults.Orders
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	rs := &RenderState{
		config:          config,
		samplesPerPixel: 1,
		shuffle:         rand.New(rand.NewSource(config.Seed)),
		pool:            NewWorkerPool(config.NumWorkers, config.Seed),
	}
	rs.pool.Start()
	rs.Resize(width, height)
	return rs
}

// Width returns the image width in pixels
func (rs *RenderState) Width() int {
	return rs.width
}

// Height returns the image height in pixels
func (rs *RenderState) Height() int {
	return rs.height
}

// Advance accumulates samples until the budget is spent or the image has
// samplesPerPixel samples everywhere. At least one batch runs per call unless
// the image is already finished; a batch in flight always completes. It
// returns the number of samples added.
func (rs *RenderState) Advance(sampler PixelSampler, budget time.Duration, samplesPerPixel, maxDepth int) (int, error) {
	if rs.closed {
		return 0, ErrClosed
	}
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	rs.samplesPerPixel = samplesPerPixel

	start := time.Now()
	added := 0
	for !rs.IsFinished() {
		added += rs.runBatch(sampler, maxDepth)
		if time.Since(start) >= budget {
			break
		}
	}

	if added > 0 && rs.IsFinished() {
		logger.Infof("Render finished: %dx%d at %d spp", rs.width, rs.height, samplesPerPixel)
	}
	return added, nil
}

// runBatch samples the next slice of the active order
func (rs *RenderState) runBatch(sampler PixelSampler, maxDepth int) int {
	order := rs.orders[rs.active]
	if rs.cursor >= len(order) {
		// Replay the same order for the next sample of every pixel
		rs.cursor = 0
	}

	size := min(rs.config.BatchSize, len(order)-rs.cursor, rs.target()-rs.totalSamples)
	batch := order[rs.cursor : rs.cursor+size]
	rs.cursor += size

	added := rs.pool.RunBatch(batch, rs.width, maxDepth, sampler, rs.accum)
	rs.totalSamples += added
	return added
}

// target is the total number of samples for a finished image
func (rs *RenderState) target() int {
	return rs.width * rs.height * rs.samplesPerPixel
}

// IsFinished reports whether every pixel has the target sample count
func (rs *RenderState) IsFinished() bool {
	return rs.totalSamples >= rs.target()
}

// Progress returns the accumulated fraction of the target in [0,1]. It is
// exactly 1 only when IsFinished is true.
func (rs *RenderState) Progress() float64 {
	target := rs.target()
	if target == 0 || rs.totalSamples >= target {
		return 1
	}
	return float64(rs.totalSamples) / float64(target)
}

// SetSamplesPerPixel changes the target without sampling
func (rs *RenderState) SetSamplesPerPixel(samplesPerPixel int) {
	rs.samplesPerPixel = max(1, samplesPerPixel)
}

// Bytes returns the image as tightly packed RGBA8, row-major from the top
// left. Each channel is the average sample times 255, clamped. Pixels without
// samples are opaque black.
func (rs *RenderState) Bytes() []byte {
	out := make([]byte, len(rs.accum)*4)
	for i := range rs.accum {
		cell := &rs.accum[i]
		out[4*i+3] = 255
		if cell.SampleCount == 0 {
			continue
		}
		c := cell.GetColor()
		out[4*i] = toByte(c.X)
		out[4*i+1] = toByte(c.Y)
		out[4*i+2] = toByte(c.Z)
	}
	return out
}

func toByte(v float64) byte {
	return byte(math.Max(0, math.Min(255, v*255)))
}

// Restore clears the accumulation and switches to the next visitation order
func (rs *RenderState) Restore() {
	clear(rs.accum)
	rs.cursor = 0
	rs.totalSamples = 0
	rs.active = (rs.active + 1) % len(rs.orders)
	logger.Debugf("Canvas restored, using order %d", rs.active)
}

// Resize regenerates every visitation order for the new pixel count and
// clears the accumulation. Dimensions below 1 are raised to 1.
func (rs *RenderState) Resize(width, height int) {
	rs.width, rs.height = max(1, width), max(1, height)
	n := rs.width * rs.height

	rs.orders = make([][]int, rs.config.Orders)
	for i := range rs.orders {
		rs.orders[i] = rs.shuffle.Perm(n)
	}
	rs.accum = make([]PixelStats, n)
	rs.active = 0
	rs.cursor = 0
	rs.totalSamples = 0
	logger.Debugf("Resized to %dx%d", rs.width, rs.height)
}

// Stats summarizes the current accumulation
func (rs *RenderState) Stats() RenderStats {
	stats := RenderStats{
		Width:        rs.width,
		Height:       rs.height,
		TotalPixels:  len(rs.accum),
		TotalSamples: rs.totalSamples,
		MinSamples:   math.MaxInt,
		Progress:     rs.Progress(),
	}
	for i := range rs.accum {
		count := rs.accum[i].SampleCount
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}
	return stats
}

// Close stops the worker pool. Advance fails afterwards.
func (rs *RenderState) Close() {
	if rs.closed {
		return
	}
	rs.closed = true
	rs.pool.Stop()
}
