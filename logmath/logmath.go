// Package logmath provides numerically stable log-space arithmetic
// primitives for the forward-probability engine: pairwise log-sum,
// log-difference, and stable reductions over slices of log-values.
//
// Every probability in this module's call graph is carried in natural-log
// space; logmath.Sum plays the role of "+" and ordinary float addition
// plays the role of "*". Callers should never call math.Exp/math.Log
// directly on engine-owned values outside this package.
package logmath

import (
	"errors"
	"math"
)

// ErrEmptySum is returned by BigSum and WeightedBigSum when given no
// summands; this is a caller-contract violation, not a recoverable
// condition.
var ErrEmptySum = errors.New("logmath: log_big_sum called on empty input")

// ErrNumericDomain is returned by Diff when a < b, and by callers in the
// forward engine when a corrective subtraction produces a non-finite
// result (a symptom of malformed cohort counts upstream).
var ErrNumericDomain = errors.New("logmath: numeric domain violation")

// Sum returns log(exp(a) + exp(b)) computed via the max-shift trick.
// Sum(NegInf, x) == x for any x, including NegInf itself.
func Sum(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) {
		// a >= b and a is -Inf implies both are -Inf.
		return a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// Diff returns log(exp(a) - exp(b)) for a >= b. Callers must ensure a >= b;
// Diff reports ErrNumericDomain rather than silently returning NaN when
// that precondition is violated.
func Diff(a, b float64) (float64, error) {
	if a < b {
		return 0, ErrNumericDomain
	}
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		// 0 - 0 = 0 in probability space, which is -Inf in log space.
		return math.Inf(-1), nil
	}
	return a + math.Log1p(-math.Exp(b-a)), nil
}

// BigSum computes log(sum(exp(xs[i]))) stably via a single max-shift pass.
// BigSum returns ErrEmptySum for an empty slice; this is documented as
// indicating a caller bug, never a legitimate zero-sum.
func BigSum(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return math.NaN(), ErrEmptySum
	}
	if len(xs) == 1 {
		return xs[0], nil
	}

	maxVal := xs[0]
	maxIdx := 0
	for i, x := range xs {
		if x > maxVal {
			maxVal = x
			maxIdx = i
		}
	}
	if math.IsInf(maxVal, -1) {
		// every summand is -Inf: the sum of zero probabilities is zero.
		return math.Inf(-1), nil
	}

	var sum float64
	for i, x := range xs {
		if i == maxIdx {
			continue
		}
		sum += math.Exp(x - maxVal)
	}
	return maxVal + math.Log1p(sum), nil
}

// WeightedBigSum computes log(sum(counts[i] * exp(xs[i]))) for positive
// integer counts, equivalent to BigSum(xs[i] + log(counts[i])).
func WeightedBigSum(xs []float64, counts []int) (float64, error) {
	weighted := make([]float64, len(xs))
	for i, x := range xs {
		weighted[i] = x + math.Log(float64(counts[i]))
	}
	return BigSum(weighted)
}
