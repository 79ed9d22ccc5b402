package logmath_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sublinearls/logmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_Commutative(t *testing.T) {
	assert.InDelta(t, logmath.Sum(1.5, -2.3), logmath.Sum(-2.3, 1.5), 1e-12)
}

func TestSum_NegInfIdentity(t *testing.T) {
	negInf := math.Inf(-1)
	for _, x := range []float64{-5.0, 0.0, 3.2, negInf} {
		assert.InDelta(t, x, logmath.Sum(negInf, x), 1e-12)
		assert.InDelta(t, x, logmath.Sum(x, negInf), 1e-12)
	}
}

func TestDiff_RoundTrip(t *testing.T) {
	a, b := 2.0, -1.0
	sum := logmath.Sum(a, b)
	back, err := logmath.Diff(sum, b)
	require.NoError(t, err)
	assert.InDelta(t, a, back, 1e-9)
}

func TestDiff_DomainError(t *testing.T) {
	_, err := logmath.Diff(-1.0, 2.0)
	assert.ErrorIs(t, err, logmath.ErrNumericDomain)
}

func TestBigSum_Empty(t *testing.T) {
	_, err := logmath.BigSum(nil)
	assert.ErrorIs(t, err, logmath.ErrEmptySum)
}

func TestBigSum_SingleAndMatchesPairwise(t *testing.T) {
	single, err := logmath.BigSum([]float64{3.14})
	require.NoError(t, err)
	assert.Equal(t, 3.14, single)

	multi, err := logmath.BigSum([]float64{1.0, 2.0, 3.0})
	require.NoError(t, err)
	expected := logmath.Sum(logmath.Sum(1.0, 2.0), 3.0)
	assert.InDelta(t, expected, multi, 1e-9)
}

func TestBigSum_AllNegInf(t *testing.T) {
	sum, err := logmath.BigSum([]float64{math.Inf(-1), math.Inf(-1)})
	require.NoError(t, err)
	assert.True(t, math.IsInf(sum, -1))
}

func TestWeightedBigSum_MatchesManualExpansion(t *testing.T) {
	xs := []float64{0.0, -1.0}
	counts := []int{3, 2}
	got, err := logmath.WeightedBigSum(xs, counts)
	require.NoError(t, err)

	expected, err := logmath.BigSum([]float64{
		xs[0] + math.Log(3),
		xs[1] + math.Log(2),
	})
	require.NoError(t, err)
	assert.InDelta(t, expected, got, 1e-9)
}
