package cohort_test

import (
	"testing"

	"github.com/katalvlaran/sublinearls/allele"
	"github.com/katalvlaran/sublinearls/cohort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense_RejectsRaggedMatrix(t *testing.T) {
	_, err := cohort.NewDense([][]allele.Value{
		{allele.A, allele.C},
		{allele.A},
	})
	assert.ErrorIs(t, err, cohort.ErrRaggedCohort)
}

func TestDense_MatchesAndNonMatches(t *testing.T) {
	d, err := cohort.NewDense([][]allele.Value{
		{allele.A, allele.C, allele.A, allele.C},
	})
	require.NoError(t, err)

	matches, err := d.Matches(0, allele.A)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, matches)

	nonMatches, err := d.NonMatches(0, allele.A)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, nonMatches)
}

func TestDense_IsRareTieBreaksToMatches(t *testing.T) {
	d, err := cohort.NewDense([][]allele.Value{
		{allele.A, allele.C},
	})
	require.NoError(t, err)

	rare, err := d.IsRare(0, allele.A)
	require.NoError(t, err)
	assert.True(t, rare)
}

func TestDense_CountMatchingAndAlleleAt(t *testing.T) {
	d, err := cohort.NewDense([][]allele.Value{
		{allele.A, allele.A, allele.C},
	})
	require.NoError(t, err)

	count, err := d.CountMatching(0, allele.A)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	a, err := d.AlleleAt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, allele.C, a)
}

func TestDense_OutOfRange(t *testing.T) {
	d, err := cohort.NewDense([][]allele.Value{{allele.A}})
	require.NoError(t, err)

	_, err = d.AlleleAt(5, 0)
	assert.ErrorIs(t, err, cohort.ErrOutOfRange)

	_, err = d.Matches(0, allele.A)
	require.NoError(t, err)
	_, err = d.Matches(-1, allele.A)
	assert.ErrorIs(t, err, cohort.ErrOutOfRange)
}
