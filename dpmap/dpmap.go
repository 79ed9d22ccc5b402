// Package dpmap defines the affine log-space update map the forward
// engine stages once per site and composes lazily per row: an UpdateMap
// takes a log-probability x to logsum(Const, Coeff + x).
package dpmap

import (
	"math"

	"github.com/katalvlaran/sublinearls/logmath"
)

// UpdateMap is the pair (Const, Coeff) interpreted as
// x -> logsum(Const, Coeff + x).
type UpdateMap struct {
	Const float64
	Coeff float64
}

// Identity returns the UpdateMap that leaves every value unchanged:
// (-Inf, 0), since logsum(-Inf, 0+x) == x.
func Identity() UpdateMap {
	return UpdateMap{Const: math.Inf(-1), Coeff: 0}
}

// Apply evaluates the map at x.
func (m UpdateMap) Apply(x float64) float64 {
	return logmath.Sum(m.Const, m.Coeff+x)
}

// Compose returns the map equivalent to applying inner first and then
// outer: Compose(outer, inner).Apply(x) == outer.Apply(inner.Apply(x)).
//
// In terms of the pair representation, for outer=(c2,k2) and
// inner=(c1,k1): Compose(outer, inner) == (logsum(c2, k2+c1), k2+k1).
func Compose(outer, inner UpdateMap) UpdateMap {
	return UpdateMap{
		Const: logmath.Sum(outer.Const, outer.Coeff+inner.Const),
		Coeff: outer.Coeff + inner.Coeff,
	}
}
