package core

import "math/rand"

// RandomUnitVector returns a uniformly distributed unit vector. Candidates are
// drawn from the [-1,1) cube and kept when their squared length lies in
// (0.1, 1], which rejects points too close to the origin to normalize well.
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 2*random.Float64()-1)
		lenSq := p.LengthSquared()
		if lenSq > 0.1 && lenSq <= 1.0 {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk returns a uniformly distributed point with |p| < 1 in the XY plane
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
