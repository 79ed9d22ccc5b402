package reconcile

import (
	"github.com/katalvlaran/sublinearls/allele"
	"github.com/katalvlaran/sublinearls/reference"
)

// AlleleAtSite pairs a reference site index with the allele the read's own
// reference slice carries there.
type AlleleAtSite struct {
	SiteIndex int
	Allele    allele.Value
}

// Reconciler projects a read's internal site list onto a reference site
// grid. Construction does all the bookkeeping up front; the result is
// immutable and safe for concurrent read-only use.
type Reconciler struct {
	ref           *reference.Structure
	startPosition uint64
	endPosition   uint64 // inclusive; meaningless if readLength == 0
	readLength    uint64

	readSitePositions []uint64 // within-read offsets, ascending

	readSiteIsShared      []bool
	sharedSiteReadIndices []int
	refSiteBelowReadSite  []int
	subsequenceIndices    []int

	hasRefSites              bool
	refSitesInInitialSpan    []AlleleAtSite
	refSitesAfterSharedSites [][]AlleleAtSite

	invariantPenaltiesByReadSite []int
}

// New builds a Reconciler for a read of readLength bases starting at
// startPosition, with site calls at the given within-read positions.
//
// refSeq is the reference structure's own canonical base sequence.
// readReference, if non-nil, is the read's own belief about the reference
// over its span (e.g. from an aligner); it drives invariant-penalty
// counting and the alleles recorded for reference-only sites. A nil
// readReference means the read agrees with refSeq everywhere except at
// its explicit sites, matching the read_reference == nullptr case: every
// invariant-penalty count is 0, and no reference-only sites are recorded
// (RefSitesInInitialSpan returns nil and RefSitesAfterSharedSite has no
// entries).
func New(
	ref *reference.Structure,
	refSeq *reference.Sequence,
	readReference *reference.Sequence,
	readLength uint64,
	startPosition uint64,
	readSitePositions []uint64,
) (*Reconciler, error) {
	r := &Reconciler{
		ref:               ref,
		startPosition:     startPosition,
		readLength:        readLength,
		readSitePositions: append([]uint64(nil), readSitePositions...),
	}
	if readLength == 0 {
		return r, nil
	}
	r.endPosition = startPosition + readLength - 1
	for _, p := range r.readSitePositions {
		if p >= readLength {
			return nil, ErrReadOutOfReference
		}
	}

	r.findRefSitesBelowReadSites()
	r.findSharedSites()
	r.checkForRefSites()
	r.buildSubsequenceIndices()
	r.countInvariantPenalties(refSeq, readReference)
	r.findRefOnlySitesAndAlleles(readReference)
	return r, nil
}

// ReadSites returns the number of sites the read carries internally.
func (r *Reconciler) ReadSites() int {
	return len(r.readSitePositions)
}

// SharedSites returns the number of read sites that align to a reference
// site.
func (r *Reconciler) SharedSites() int {
	return len(r.sharedSiteReadIndices)
}

// ContainsSharedSites reports whether any read site aligns to a reference
// site.
func (r *Reconciler) ContainsSharedSites() bool {
	return len(r.sharedSiteReadIndices) != 0
}

// ContainsReadOnlySites reports whether any read site fails to align to a
// reference site.
func (r *Reconciler) ContainsReadOnlySites() bool {
	return len(r.sharedSiteReadIndices) != len(r.readSitePositions)
}

// ContainsRefSites reports whether the read's span covers any reference
// site at all (shared or not).
func (r *Reconciler) ContainsRefSites() bool {
	return r.hasRefSites
}

// RefPosition maps a within-read offset to its physical reference
// position.
func (r *Reconciler) RefPosition(readPos uint64) uint64 {
	return r.startPosition + readPos
}

// ReadPosition maps a physical reference position back to a within-read
// offset. It returns ErrReadOutOfReference if pos falls outside
// [start, end] of the read's span.
func (r *Reconciler) ReadPosition(pos uint64) (uint64, error) {
	if r.readLength == 0 || pos < r.startPosition || pos > r.endPosition {
		return 0, ErrReadOutOfReference
	}
	return pos - r.startPosition, nil
}

// IsReadSiteShared reports whether read site i aligns to a reference
// site.
func (r *Reconciler) IsReadSiteShared(i int) bool {
	return r.readSiteIsShared[i]
}

// RefSiteBelowReadSite returns the largest reference-site index whose
// position is <= the physical position of read site i.
func (r *Reconciler) RefSiteBelowReadSite(i int) int {
	return r.refSiteBelowReadSite[i]
}

// SharedSiteReadIndex returns the read-site index of the j-th shared
// site.
func (r *Reconciler) SharedSiteReadIndex(j int) int {
	return r.sharedSiteReadIndices[j]
}

// SharedSiteRefIndex returns the reference-site index the j-th shared
// site aligns to.
func (r *Reconciler) SharedSiteRefIndex(j int) int {
	return r.refSiteBelowReadSite[r.sharedSiteReadIndices[j]]
}

// IndexAmongSharedSites returns read site i's position within the
// subsequence of shared sites, and false if i is not shared.
func (r *Reconciler) IndexAmongSharedSites(i int) (int, bool) {
	if !r.readSiteIsShared[i] {
		return 0, false
	}
	return r.subsequenceIndices[i], true
}

// IndexAmongReadOnlySites returns read site i's position within the
// subsequence of read-only sites, and false if i is shared.
func (r *Reconciler) IndexAmongReadOnlySites(i int) (int, bool) {
	if r.readSiteIsShared[i] {
		return 0, false
	}
	return r.subsequenceIndices[i], true
}

// RefSitesInInitialSpan returns the reference-only sites (with their read
// alleles) between the read's start and its first shared site.
func (r *Reconciler) RefSitesInInitialSpan() []AlleleAtSite {
	return r.refSitesInInitialSpan
}

// RefSitesAfterSharedSite returns the reference-only sites between shared
// site k and shared site k+1 (or the read's end, for the last one).
func (r *Reconciler) RefSitesAfterSharedSite(k int) []AlleleAtSite {
	return r.refSitesAfterSharedSites[k]
}

// InvariantPenaltyAt returns the count of invariant (non-site) positions
// between read site i-1 (or the left boundary) and read site i (or the
// right boundary) where the read's reference disagrees with the global
// reference.
func (r *Reconciler) InvariantPenaltyAt(i int) int {
	return r.invariantPenaltiesByReadSite[i]
}

func (r *Reconciler) findRefSitesBelowReadSites() {
	r.refSiteBelowReadSite = make([]int, len(r.readSitePositions))
	for i, p := range r.readSitePositions {
		r.refSiteBelowReadSite[i] = r.ref.FindSiteBelow(r.RefPosition(p))
	}
}

func (r *Reconciler) findSharedSites() {
	r.readSiteIsShared = make([]bool, len(r.readSitePositions))
	for i, p := range r.readSitePositions {
		shared := r.ref.IsSite(r.RefPosition(p))
		r.readSiteIsShared[i] = shared
		if shared {
			r.sharedSiteReadIndices = append(r.sharedSiteReadIndices, i)
		}
	}
}

// checkForRefSites reports whether [start, end] contains any reference
// site. find_site_above(pos) names the smallest site index whose position
// is >= pos, so a site lies in [start, end] iff the smallest site >=
// start is also < end+1, i.e. its find_site_above index differs from
// find_site_above(end+1).
func (r *Reconciler) checkForRefSites() {
	r.hasRefSites = r.ref.FindSiteAbove(r.startPosition) != r.ref.FindSiteAbove(r.endPosition+1)
}

func (r *Reconciler) buildSubsequenceIndices() {
	r.subsequenceIndices = make([]int, len(r.readSitePositions))
	nextReadOnly, nextShared := 0, 0
	for i, shared := range r.readSiteIsShared {
		if shared {
			r.subsequenceIndices[i] = nextShared
			nextShared++
		} else {
			r.subsequenceIndices[i] = nextReadOnly
			nextReadOnly++
		}
	}
}

func (r *Reconciler) countInvariantPenalties(refSeq, readReference *reference.Sequence) {
	// One count per read site for the span before it, plus a final entry at
	// index ReadSites() for the span after the last read site.
	r.invariantPenaltiesByReadSite = make([]int, len(r.readSitePositions)+1)
	if readReference == nil {
		return
	}

	disagrees := func(pos uint64) bool {
		want, ok := readReference.AlleleAt(pos)
		if !ok {
			return false
		}
		return !refSeq.Matches(pos, want)
	}

	from := r.startPosition
	for i, p := range r.readSitePositions {
		until := r.RefPosition(p)
		count := 0
		for pos := from; pos < until; pos++ {
			if disagrees(pos) {
				count++
			}
		}
		r.invariantPenaltiesByReadSite[i] = count
		from = until + 1
	}
	count := 0
	for pos := from; pos <= r.endPosition; pos++ {
		if disagrees(pos) {
			count++
		}
	}
	r.invariantPenaltiesByReadSite[len(r.readSitePositions)] = count
}

func (r *Reconciler) findRefOnlySitesAndAlleles(readReference *reference.Sequence) {
	if !r.hasRefSites || readReference == nil {
		return
	}

	alleleAt := func(refSiteIndex int) allele.Value {
		pos, err := r.ref.PositionOf(refSiteIndex)
		if err != nil {
			return allele.Unknown
		}
		v, ok := readReference.AlleleAt(pos)
		if !ok {
			return allele.Unknown
		}
		return v
	}
	collect := func(lower, upper int) []AlleleAtSite {
		out := make([]AlleleAtSite, 0, upper-lower)
		for i := lower; i < upper; i++ {
			out = append(out, AlleleAtSite{SiteIndex: i, Allele: alleleAt(i)})
		}
		return out
	}

	lower := r.ref.FindSiteAbove(r.startPosition)
	if r.SharedSites() > 0 {
		upper := r.SharedSiteRefIndex(0)
		r.refSitesInInitialSpan = collect(lower, upper)

		for i := 0; i < r.SharedSites()-1; i++ {
			r.refSitesAfterSharedSites = append(
				r.refSitesAfterSharedSites,
				collect(r.SharedSiteRefIndex(i)+1, r.SharedSiteRefIndex(i+1)),
			)
		}
		r.refSitesAfterSharedSites = append(
			r.refSitesAfterSharedSites,
			collect(r.SharedSiteRefIndex(r.SharedSites()-1)+1, r.ref.FindSiteAbove(r.endPosition+1)),
		)
	} else {
		r.refSitesInInitialSpan = collect(lower, r.ref.FindSiteAbove(r.endPosition+1))
	}
}
