package tracer

import (
	"fmt"
	"sort"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 8

// bvhNode is a node of the bounding volume hierarchy. Leaves hold primitives;
// internal nodes hold two children.
type bvhNode struct {
	box         core.AABB
	left, right *bvhNode
	primitives  []indexedPrimitive
}

// bvhTracer walks a BVH built once at construction
type bvhTracer struct {
	root *bvhNode
}

func newBVHTracer(primitives []indexedPrimitive) (*bvhTracer, error) {
	for _, p := range primitives {
		if box := p.BoundingBox(); !box.IsFinite() {
			return nil, fmt.Errorf("%w: geometry %d has bounds %v", ErrNonFiniteBounds, p.index, box)
		}
	}

	if len(primitives) == 0 {
		return &bvhTracer{}, nil
	}

	// Sorting reorders the slice; keep the caller's order intact
	owned := make([]indexedPrimitive, len(primitives))
	copy(owned, primitives)

	t := &bvhTracer{root: buildBVH(owned)}
	stats := t.stats()
	logger.Debugf("bvh built: %d primitives, %d nodes, %d leaves, max depth %d",
		stats.primitives, stats.nodes, stats.leaves, stats.maxDepth)
	return t, nil
}

// buildBVH splits at the median along the longest axis of the node bounds
func buildBVH(primitives []indexedPrimitive) *bvhNode {
	box := primitives[0].BoundingBox()
	for _, p := range primitives[1:] {
		box = box.Union(p.BoundingBox())
	}

	if len(primitives) <= leafThreshold {
		return &bvhNode{box: box, primitives: primitives}
	}

	axis := box.LongestAxis()
	sort.Slice(primitives, func(i, j int) bool {
		return primitives[i].BoundingBox().Center().Axis(axis) < primitives[j].BoundingBox().Center().Axis(axis)
	})

	mid := len(primitives) / 2
	return &bvhNode{
		box:   box,
		left:  buildBVH(primitives[:mid]),
		right: buildBVH(primitives[mid:]),
	}
}

// Trace implements Tracer
func (t *bvhTracer) Trace(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	if t.root == nil {
		return core.TraceResult{}, false
	}
	return t.hitNode(t.root, ray, interval)
}

func (t *bvhTracer) hitNode(node *bvhNode, ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	if !node.box.Hit(ray, interval) {
		return core.TraceResult{}, false
	}

	var closest core.TraceResult
	hitAnything := false

	if node.left == nil {
		for _, p := range node.primitives {
			if hit, ok := p.intersect(ray, interval); ok {
				hitAnything = true
				closest = hit
				interval = interval.WithMax(hit.Distance)
			}
		}
		return closest, hitAnything
	}

	if hit, ok := t.hitNode(node.left, ray, interval); ok {
		hitAnything = true
		closest = hit
		interval = interval.WithMax(hit.Distance)
	}
	if hit, ok := t.hitNode(node.right, ray, interval); ok {
		hitAnything = true
		closest = hit
	}
	return closest, hitAnything
}

type bvhStats struct {
	nodes      int
	leaves     int
	maxDepth   int
	primitives int
}

func (t *bvhTracer) stats() bvhStats {
	var stats bvhStats
	if t.root != nil {
		collectStats(t.root, 0, &stats)
	}
	return stats
}

func collectStats(node *bvhNode, depth int, stats *bvhStats) {
	stats.nodes++
	stats.maxDepth = max(stats.maxDepth, depth)
	if node.left == nil {
		stats.leaves++
		stats.primitives += len(node.primitives)
		return
	}
	collectStats(node.left, depth+1, stats)
	collectStats(node.right, depth+1, stats)
}
