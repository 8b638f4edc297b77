// Package floatx holds floating-point helpers.
package floatx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// AlmostEqual reports whether a and b differ by at most rel relative to the
// larger magnitude of the two: |a-b| / max(|a|, |b|) <= rel.
//
// Identical values are always equal, including zeros and infinities of the
// same sign. NaN is never equal to anything.
func AlmostEqual[F constraints.Float](a, b, rel F) bool {
	if a == b {
		return true
	}
	x, y, tol := float64(a), float64(b), float64(rel)
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	scale := math.Max(math.Abs(x), math.Abs(y))
	return math.Abs(x-y)/scale <= tol
}
