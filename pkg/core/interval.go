package core

import "math"

// Interval is an open range of ray distances (Min, Max).
type Interval struct {
	Min, Max float64
}

// NewInterval creates a new Interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// RayInterval is the query range used for camera and bounce rays. The lower
// bound keeps a ray leaving a surface from hitting that surface again.
func RayInterval() Interval {
	return Interval{Min: 1e-4, Max: math.Inf(1)}
}

// Surrounds reports whether t lies strictly inside the interval
func (i Interval) Surrounds(t float64) bool {
	return i.Min < t && t < i.Max
}

// WithMax returns a copy with the upper bound replaced
func (i Interval) WithMax(max float64) Interval {
	return Interval{Min: i.Min, Max: max}
}
