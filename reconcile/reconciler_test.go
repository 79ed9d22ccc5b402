package reconcile_test

import (
	"testing"

	"github.com/katalvlaran/sublinearls/allele"
	"github.com/katalvlaran/sublinearls/reconcile"
	"github.com/katalvlaran/sublinearls/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRef(t *testing.T) *reference.Structure {
	t.Helper()
	s, err := reference.New([]uint64{100, 120, 140})
	require.NoError(t, err)
	return s
}

func TestReconciler_ClassifiesSharedAndReadOnlySites(t *testing.T) {
	ref := newRef(t)
	refSeq := reference.NewSequenceFromString(100, "ACGTACGTAC")

	r, err := reconcile.New(ref, refSeq, nil, 50, 100, []uint64{0, 20, 35})
	require.NoError(t, err)

	assert.True(t, r.IsReadSiteShared(0))  // ref pos 100 is a site
	assert.True(t, r.IsReadSiteShared(1))  // ref pos 120 is a site
	assert.False(t, r.IsReadSiteShared(2)) // ref pos 135 is not a site

	assert.Equal(t, []int{0, 1}, sharedIndices(r))
	assert.True(t, r.ContainsSharedSites())
	assert.True(t, r.ContainsReadOnlySites())
	assert.True(t, r.ContainsRefSites())

	idx, ok := r.IndexAmongReadOnlySites(2)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func sharedIndices(r *reconcile.Reconciler) []int {
	out := []int{}
	for j := 0; j < r.SharedSites(); j++ {
		out = append(out, r.SharedSiteReadIndex(j))
	}
	return out
}

func TestReconciler_NoSitesInSpan(t *testing.T) {
	ref := newRef(t)
	refSeq := reference.NewSequenceFromString(100, "ACGTACGTAC")

	// Read entirely between sites 100 and 120, with no internal sites.
	r, err := reconcile.New(ref, refSeq, nil, 15, 102, nil)
	require.NoError(t, err)

	assert.False(t, r.ContainsRefSites())
	assert.False(t, r.ContainsSharedSites())
}

func TestReconciler_ReadLengthZero(t *testing.T) {
	ref := newRef(t)
	refSeq := reference.NewSequenceFromString(100, "ACGTACGTAC")

	r, err := reconcile.New(ref, refSeq, nil, 0, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.ReadSites())
}

func TestReconciler_RejectsSitePositionOutsideRead(t *testing.T) {
	ref := newRef(t)
	refSeq := reference.NewSequenceFromString(100, "ACGTACGTAC")

	_, err := reconcile.New(ref, refSeq, nil, 10, 100, []uint64{20})
	assert.ErrorIs(t, err, reconcile.ErrReadOutOfReference)
}

func TestReconciler_InvariantPenaltiesCountDisagreements(t *testing.T) {
	ref := newRef(t)
	// Canonical reference bases 100..109: all A.
	refSeq := reference.NewSequence(100, []allele.Value{
		allele.A, allele.A, allele.A, allele.A, allele.A,
		allele.A, allele.A, allele.A, allele.A, allele.A,
	})
	// The read's own belief about the reference disagrees at offsets 2 and 3.
	readRef := reference.NewSequence(100, []allele.Value{
		allele.A, allele.A, allele.C, allele.C, allele.A,
		allele.A, allele.A, allele.A, allele.A, allele.A,
	})

	r, err := reconcile.New(ref, refSeq, readRef, 10, 100, []uint64{5})
	require.NoError(t, err)

	// Up to read site 0 (offset 5 / ref pos 105), positions 100..104 are
	// examined; 102 and 103 disagree.
	assert.Equal(t, 2, r.InvariantPenaltyAt(0))
	// Terminal span (106..109) has no disagreements.
	assert.Equal(t, 0, r.InvariantPenaltyAt(1))
}

func TestReconciler_ReadPositionRoundTrip(t *testing.T) {
	ref := newRef(t)
	refSeq := reference.NewSequenceFromString(100, "ACGTACGTAC")
	r, err := reconcile.New(ref, refSeq, nil, 10, 100, nil)
	require.NoError(t, err)

	p, err := r.ReadPosition(105)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), p)

	_, err = r.ReadPosition(200)
	assert.ErrorIs(t, err, reconcile.ErrReadOutOfReference)
}
