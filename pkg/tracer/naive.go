package tracer

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// naiveTracer tests every primitive and keeps the closest hit
type naiveTracer struct {
	primitives []indexedPrimitive
}

func newNaiveTracer(primitives []indexedPrimitive) *naiveTracer {
	logger.Debugf("naive tracer over %d primitives", len(primitives))
	return &naiveTracer{primitives: primitives}
}

// Trace implements Tracer
func (n *naiveTracer) Trace(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	var closest core.TraceResult
	hitAnything := false
	closestSoFar := interval

	for _, p := range n.primitives {
		if hit, ok := p.intersect(ray, closestSoFar); ok {
			hitAnything = true
			closest = hit
			closestSoFar = closestSoFar.WithMax(hit.Distance)
		}
	}

	return closest, hitAnything
}
