package renderer

import (
	"bytes"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/log"
)

func init() {
	log.Discard()
}

// constSampler returns the same color for every pixel
type constSampler struct {
	color core.Vec3
}

func (s constSampler) RenderSample(x, y, maxDepth int, random *rand.Rand) core.Vec3 {
	return s.color
}

// countingSampler counts samples per pixel; the color encodes the pixel position
type countingSampler struct {
	width  int
	counts []int32
}

func newCountingSampler(width, height int) *countingSampler {
	return &countingSampler{width: width, counts: make([]int32, width*height)}
}

func (s *countingSampler) RenderSample(x, y, maxDepth int, random *rand.Rand) core.Vec3 {
	atomic.AddInt32(&s.counts[y*s.width+x], 1)
	return core.NewVec3((float64(x)+0.5)/255, (float64(y)+0.5)/255, 0)
}

func testConfig() StateConfig {
	return StateConfig{Orders: 3, BatchSize: 7, NumWorkers: 4, Seed: 1}
}

// finish advances until the state reports completion
func finish(t *testing.T, rs *RenderState, sampler PixelSampler, spp int) {
	t.Helper()
	for i := 0; !rs.IsFinished(); i++ {
		if i > 10000 {
			t.Fatal("Render did not finish")
		}
		if _, err := rs.Advance(sampler, 0, spp, 3); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}
}

func TestRenderState_EverySampleLandsOnce(t *testing.T) {
	const width, height, spp = 9, 5, 3
	rs := NewRenderState(width, height, testConfig())
	defer rs.Close()

	sampler := newCountingSampler(width, height)
	finish(t, rs, sampler, spp)

	for i, c := range sampler.counts {
		if c != spp {
			t.Errorf("Pixel %d sampled %d times, expected %d", i, c, spp)
		}
		if rs.accum[i].SampleCount != spp {
			t.Errorf("Pixel %d accumulated %d samples, expected %d", i, rs.accum[i].SampleCount, spp)
		}
	}
	if rs.Stats().TotalSamples != width*height*spp {
		t.Errorf("Expected %d total samples, got %d", width*height*spp, rs.Stats().TotalSamples)
	}

	// The color written to each pixel came from that pixel
	out := rs.Bytes()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 4 * (y*width + x)
			if out[i] != byte(x) || out[i+1] != byte(y) || out[i+3] != 255 {
				t.Fatalf("Pixel (%d,%d) has bytes %v", x, y, out[i:i+4])
			}
		}
	}
}

func TestRenderState_ProgressMonotonic(t *testing.T) {
	rs := NewRenderState(10, 10, testConfig())
	defer rs.Close()

	sampler := constSampler{core.NewVec3(0.5, 0.5, 0.5)}
	last := rs.Progress()
	if last != 0 {
		t.Fatalf("Expected initial progress 0, got %f", last)
	}

	for i := 0; i < 1000 && !rs.IsFinished(); i++ {
		if _, err := rs.Advance(sampler, 0, 4, 3); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
		p := rs.Progress()
		if p < last {
			t.Fatalf("Progress decreased from %f to %f", last, p)
		}
		if (p == 1) != rs.IsFinished() {
			t.Fatalf("Progress %f inconsistent with IsFinished=%v", p, rs.IsFinished())
		}
		last = p
	}

	if !rs.IsFinished() || rs.Progress() != 1 {
		t.Errorf("Expected finished with progress 1, got %v %f", rs.IsFinished(), rs.Progress())
	}

	// Nothing more happens once finished
	added, _ := rs.Advance(sampler, time.Second, 4, 3)
	if added != 0 {
		t.Errorf("Expected no samples after finishing, got %d", added)
	}
}

func TestRenderState_BytesIdempotent(t *testing.T) {
	rs := NewRenderState(8, 8, testConfig())
	defer rs.Close()

	if _, err := rs.Advance(constSampler{core.NewVec3(0.2, 0.4, 0.6)}, 0, 2, 3); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	first := rs.Bytes()
	second := rs.Bytes()
	if !bytes.Equal(first, second) {
		t.Error("Bytes changed without an intervening Advance")
	}
	if len(first) != 8*8*4 {
		t.Errorf("Expected %d bytes, got %d", 8*8*4, len(first))
	}
}

func TestRenderState_BytesClampAndEmpty(t *testing.T) {
	rs := NewRenderState(2, 2, StateConfig{Orders: 1, BatchSize: 2, NumWorkers: 1, Seed: 3})
	defer rs.Close()

	// Empty cells are opaque black
	for i, b := range rs.Bytes() {
		expected := byte(0)
		if i%4 == 3 {
			expected = 255
		}
		if b != expected {
			t.Fatalf("Byte %d: expected %d, got %d", i, expected, b)
		}
	}

	finish(t, rs, constSampler{core.NewVec3(2, -1, 0.5)}, 1)
	out := rs.Bytes()
	for i := 0; i < 4; i++ {
		px := out[4*i : 4*i+4]
		if px[0] != 255 || px[1] != 0 || px[2] != 127 || px[3] != 255 {
			t.Errorf("Pixel %d: expected [255 0 127 255], got %v", i, px)
		}
	}
}

func TestRenderState_ResizeClearsAccumulation(t *testing.T) {
	rs := NewRenderState(6, 4, testConfig())
	defer rs.Close()

	sampler := constSampler{core.NewVec3(1, 1, 1)}
	finish(t, rs, sampler, 2)

	rs.Resize(3, 2)
	rs.Resize(6, 4)

	if rs.Progress() != 0 {
		t.Errorf("Expected progress 0 after resize, got %f", rs.Progress())
	}
	for i, cell := range rs.accum {
		if cell != (PixelStats{}) {
			t.Fatalf("Cell %d not cleared: %+v", i, cell)
		}
	}
	for i, b := range rs.Bytes() {
		if i%4 != 3 && b != 0 {
			t.Fatalf("Byte %d not zero after resize", i)
		}
	}
	for i, order := range rs.orders {
		if len(order) != 24 {
			t.Errorf("Order %d has %d entries, expected 24", i, len(order))
		}
	}
}

func TestRenderState_RestoreCyclesOrders(t *testing.T) {
	rs := NewRenderState(5, 5, testConfig())
	defer rs.Close()

	if _, err := rs.Advance(constSampler{core.NewVec3(1, 0, 0)}, 0, 1, 3); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	for i := 1; i <= 2*len(rs.orders); i++ {
		rs.Restore()
		if rs.active != i%len(rs.orders) {
			t.Fatalf("Expected order %d after %d restores, got %d", i%len(rs.orders), i, rs.active)
		}
		if rs.Progress() != 0 || rs.cursor != 0 {
			t.Fatalf("Expected cleared state after restore, got progress %f cursor %d", rs.Progress(), rs.cursor)
		}
	}
}

func TestRenderState_OrdersArePermutations(t *testing.T) {
	rs := NewRenderState(7, 3, testConfig())
	defer rs.Close()

	for i, order := range rs.orders {
		seen := make([]bool, len(order))
		for _, idx := range order {
			if idx < 0 || idx >= len(order) || seen[idx] {
				t.Fatalf("Order %d is not a permutation", i)
			}
			seen[idx] = true
		}
	}
}

func TestRenderState_MinimumSize(t *testing.T) {
	rs := NewRenderState(0, -3, testConfig())
	defer rs.Close()

	if rs.Width() != 1 || rs.Height() != 1 {
		t.Errorf("Expected 1x1, got %dx%d", rs.Width(), rs.Height())
	}
	finish(t, rs, constSampler{}, 0) // spp below 1 is treated as 1
	if rs.Stats().TotalSamples != 1 {
		t.Errorf("Expected 1 sample, got %d", rs.Stats().TotalSamples)
	}
}

func TestRenderState_Closed(t *testing.T) {
	rs := NewRenderState(2, 2, testConfig())
	rs.Close()
	rs.Close()

	if _, err := rs.Advance(constSampler{}, 0, 1, 1); err != ErrClosed {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		n, parts int
		expected int // number of spans
	}{
		{10, 3, 3},
		{10000, 8, 8},
		{3, 8, 3},
		{1, 1, 1},
		{0, 4, 0},
		{5, 0, 1},
	}

	for _, tt := range tests {
		spans := partition(tt.n, tt.parts)
		if len(spans) != tt.expected {
			t.Errorf("partition(%d, %d): expected %d spans, got %d", tt.n, tt.parts, tt.expected, len(spans))
			continue
		}
		next := 0
		for _, s := range spans {
			if s.start != next || s.end <= s.start {
				t.Errorf("partition(%d, %d): bad span %+v after %d", tt.n, tt.parts, s, next)
			}
			next = s.end
		}
		if tt.n > 0 && next != tt.n {
			t.Errorf("partition(%d, %d): spans end at %d", tt.n, tt.parts, next)
		}
	}
}

func TestPartition_SubBatchesAreDisjoint(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	order := random.Perm(1000)
	batch := order[100:377]

	seen := make(map[int]int)
	for worker, s := range partition(len(batch), 6) {
		for _, idx := range batch[s.start:s.end] {
			if other, ok := seen[idx]; ok {
				t.Fatalf("Pixel %d assigned to workers %d and %d", idx, other, worker)
			}
			seen[idx] = worker
		}
	}
	if len(seen) != len(batch) {
		t.Errorf("Expected %d pixels covered, got %d", len(batch), len(seen))
	}
}
